package ble

import (
	"github.com/robgonnella/zlink/internal/exception"
	"github.com/robgonnella/zlink/internal/logger"
	"tinygo.org/x/bluetooth"
)

// State of a connection negotiation
type State int

// Negotiation states. Ready and Failed are terminal for one attempt.
const (
	StateIdle State = iota
	StateConnecting
	StateServicesDiscovering
	StateCharacteristicsDiscovering
	StateReady
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateConnecting:
		return "connecting"
	case StateServicesDiscovering:
		return "services-discovering"
	case StateCharacteristicsDiscovering:
		return "characteristics-discovering"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Negotiator drives connect, service discovery and characteristic
// discovery for a single peripheral. It is not safe for concurrent use,
// callers serialize Begin, Handle and Reset.
type Negotiator struct {
	central    Central
	log        logger.Logger
	state      State
	peripheral *Peripheral
	write      *Characteristic
	read       *Characteristic
	info       []Characteristic
	remaining  int
	attempts   uint64
}

// NewNegotiator returns an idle negotiator for central
func NewNegotiator(central Central) *Negotiator {
	return &Negotiator{
		central: central,
		log:     logger.NewComponent("ble-negotiator"),
		state:   StateIdle,
	}
}

// State returns the current negotiation state
func (n *Negotiator) State() State {
	return n.state
}

// Peripheral returns the peripheral being negotiated or in use
func (n *Negotiator) Peripheral() (Peripheral, bool) {
	if n.peripheral == nil {
		return Peripheral{}, false
	}

	return *n.peripheral, true
}

// WriteCharacteristic returns the captured ZPL write characteristic
func (n *Negotiator) WriteCharacteristic() (Characteristic, bool) {
	if n.write == nil {
		return Characteristic{}, false
	}

	return *n.write, true
}

// ReadCharacteristic returns the captured ZPL read characteristic
func (n *Negotiator) ReadCharacteristic() (Characteristic, bool) {
	if n.read == nil {
		return Characteristic{}, false
	}

	return *n.read, true
}

// InfoCharacteristics returns captured device information characteristics
func (n *Negotiator) InfoCharacteristics() []Characteristic {
	info := make([]Characteristic, len(n.info))
	copy(info, n.info)
	return info
}

// Begin starts negotiating with p. Any previous state is discarded without
// touching the platform, callers release old links first.
func (n *Negotiator) Begin(p Peripheral) error {
	n.Reset()
	n.attempts++
	p.Attempt = n.attempts
	n.peripheral = &p
	n.state = StateConnecting

	n.log.Debug().
		Str("peripheral", p.ID).
		Str("name", p.Name).
		Uint64("attempt", p.Attempt).
		Msg("connecting")

	if err := n.central.Connect(p); err != nil {
		_, err = n.fail(err)
		return err
	}

	return nil
}

// Handle advances the negotiation with evt. done is true once the attempt
// reaches Ready (err == nil) or Failed (err != nil). Events for other
// peripherals, earlier attempts or out of phase are ignored.
func (n *Negotiator) Handle(evt Event) (done bool, err error) {
	if !n.Owns(evt.Peripheral) {
		return false, nil
	}

	switch evt.Type {
	case EventConnected:
		if n.state != StateConnecting {
			return false, nil
		}
		return n.onConnected()
	case EventConnectFailed:
		if n.state != StateConnecting {
			return false, nil
		}
		return n.fail(evt.Err)
	case EventServicesDiscovered:
		if n.state != StateServicesDiscovering {
			return false, nil
		}
		return n.onServices(evt)
	case EventCharacteristicsDiscovered:
		switch n.state {
		case StateCharacteristicsDiscovering:
			return n.onCharacteristics(evt)
		case StateReady:
			// late info service results are still worth keeping
			if evt.Err == nil {
				n.capture(evt.Characteristics)
			}
		}
		return false, nil
	default:
		return false, nil
	}
}

// Owns reports whether p refers to the current connection attempt
func (n *Negotiator) Owns(p Peripheral) bool {
	return n.peripheral != nil &&
		n.peripheral.ID == p.ID &&
		n.peripheral.Attempt == p.Attempt
}

// Reset forgets the peripheral and every captured characteristic
func (n *Negotiator) Reset() {
	n.state = StateIdle
	n.peripheral = nil
	n.write = nil
	n.read = nil
	n.info = nil
	n.remaining = 0
}

// Release cancels the platform connection, if any, and resets
func (n *Negotiator) Release() {
	if n.peripheral != nil {
		if err := n.central.CancelConnection(*n.peripheral); err != nil {
			n.log.Debug().Err(err).Msg("failed to cancel connection")
		}
	}

	n.Reset()
}

func (n *Negotiator) onConnected() (bool, error) {
	n.state = StateServicesDiscovering

	if err := n.central.DiscoverServices(*n.peripheral, ServiceUUIDs()); err != nil {
		return n.fail(err)
	}

	return false, nil
}

func (n *Negotiator) onServices(evt Event) (bool, error) {
	if evt.Err != nil {
		return n.fail(evt.Err)
	}

	n.state = StateCharacteristicsDiscovering

	for _, svc := range evt.Services {
		var uuids []bluetooth.UUID

		switch svc.UUID {
		case ActionServiceUUID:
			uuids = ActionCharacteristicUUIDs()
		case InfoServiceUUID:
			uuids = InfoCharacteristicUUIDs()
		default:
			continue
		}

		if err := n.central.DiscoverCharacteristics(*n.peripheral, svc, uuids); err != nil {
			return n.fail(err)
		}

		n.remaining++
	}

	if n.remaining == 0 {
		return n.fail(exception.ErrConnectionIncomplete)
	}

	return false, nil
}

func (n *Negotiator) onCharacteristics(evt Event) (bool, error) {
	if evt.Err != nil {
		return n.fail(evt.Err)
	}

	n.remaining--
	n.capture(evt.Characteristics)

	if n.write != nil {
		n.state = StateReady
		n.log.Debug().Str("peripheral", n.peripheral.ID).Msg("ready")
		return true, nil
	}

	if n.remaining <= 0 {
		return n.fail(exception.ErrConnectionIncomplete)
	}

	return false, nil
}

func (n *Negotiator) capture(chars []Characteristic) {
	for i := range chars {
		c := chars[i]

		switch c.UUID {
		case WriteCharacteristicUUID:
			n.write = &c
		case ReadCharacteristicUUID:
			n.read = &c
		default:
			if _, ok := InfoFieldName(c.UUID); ok {
				n.info = append(n.info, c)
			}
		}
	}
}

func (n *Negotiator) fail(cause error) (bool, error) {
	err := exception.Wrap(cause)

	if err == nil {
		err = exception.ErrInternalError
	}

	n.log.Debug().Err(err).Str("state", n.state.String()).Msg("negotiation failed")

	n.Release()
	n.state = StateFailed

	return true, err
}

// Package bletest provides a scripted in-memory ble.Central for tests
package bletest

import (
	"errors"
	"sync"

	"github.com/robgonnella/zlink/internal/ble"
	"tinygo.org/x/bluetooth"
)

// ErrRadio is a generic platform failure used by tests
var ErrRadio = errors.New("radio failure")

// Central is an in-memory ble.Central. By default it behaves like a
// healthy Zebra printer: connects succeed, both services and every
// characteristic are discovered and writes complete. The exported fields
// change that behavior and must be set before the central is used.
type Central struct {
	// Nearby is advertised every time Scan is called
	Nearby []ble.Peripheral
	// ConnectErr fails the connection attempt asynchronously
	ConnectErr error
	// Silent swallows connect requests so they never complete
	Silent bool
	// ServicesErr fails service discovery
	ServicesErr error
	// NoActionService hides the Zebra action service
	NoActionService bool
	// NoWriteCharacteristic hides the write characteristic
	NoWriteCharacteristic bool
	// WriteErr fails writes asynchronously
	WriteErr error
	// HoldWrites keeps writes pending until ReleaseWrite is called
	HoldWrites bool
	// WriteResponse is attached to successful write completions
	WriteResponse []byte
	// Info holds values returned by Read keyed by characteristic uuid
	Info map[bluetooth.UUID]string

	mux      sync.Mutex
	events   chan ble.Event
	calls    []string
	written  [][]byte
	scanning bool
	held     []ble.Peripheral
	links    map[string]ble.Peripheral
}

// NewCentral returns a fake central with a buffered event channel
func NewCentral() *Central {
	return &Central{
		events: make(chan ble.Event, 256),
		Info:   map[bluetooth.UUID]string{},
		links:  map[string]ble.Peripheral{},
	}
}

// Printer returns an advertisement for a nearby printer
func Printer(name string, rssi int) ble.Peripheral {
	return ble.Peripheral{ID: "id-" + name, Name: name, RSSI: rssi}
}

// Events implements ble.Central
func (c *Central) Events() <-chan ble.Event {
	return c.events
}

// Calls returns the names of every request made so far
func (c *Central) Calls() []string {
	c.mux.Lock()
	defer c.mux.Unlock()

	calls := make([]string, len(c.calls))
	copy(calls, c.calls)
	return calls
}

// Written returns every payload passed to Write
func (c *Central) Written() [][]byte {
	c.mux.Lock()
	defer c.mux.Unlock()

	written := make([][]byte, len(c.written))
	copy(written, c.written)
	return written
}

// Scanning reports whether a scan is in progress
func (c *Central) Scanning() bool {
	c.mux.Lock()
	defer c.mux.Unlock()
	return c.scanning
}

// Emit delivers an arbitrary event, e.g. a late advertisement
func (c *Central) Emit(evt ble.Event) {
	c.events <- evt
}

// DropLink simulates the platform reporting a lost connection. The event
// carries the latest attempt connected to p.ID, or p itself when none is.
func (c *Central) DropLink(p ble.Peripheral) {
	c.mux.Lock()
	if current, ok := c.links[p.ID]; ok {
		p = current
		delete(c.links, p.ID)
	}
	c.mux.Unlock()

	c.Emit(ble.Event{Type: ble.EventDisconnected, Peripheral: p})
}

// ReleaseWrite completes the oldest held write
func (c *Central) ReleaseWrite() {
	c.mux.Lock()
	if len(c.held) == 0 {
		c.mux.Unlock()
		return
	}
	p := c.held[0]
	c.held = c.held[1:]
	c.mux.Unlock()

	c.Emit(ble.Event{Type: ble.EventWriteComplete, Peripheral: p, Value: c.WriteResponse})
}

// Scan implements ble.Central
func (c *Central) Scan(bool) error {
	c.record("scan")

	c.mux.Lock()
	c.scanning = true
	c.mux.Unlock()

	for _, p := range c.Nearby {
		c.Emit(ble.Event{Type: ble.EventAdvertisement, Peripheral: p})
	}

	return nil
}

// StopScan implements ble.Central
func (c *Central) StopScan() error {
	c.record("stop-scan")

	c.mux.Lock()
	c.scanning = false
	c.mux.Unlock()

	return nil
}

// Connect implements ble.Central
func (c *Central) Connect(p ble.Peripheral) error {
	c.record("connect")

	switch {
	case c.Silent:
	case c.ConnectErr != nil:
		c.Emit(ble.Event{Type: ble.EventConnectFailed, Peripheral: p, Err: c.ConnectErr})
	default:
		c.mux.Lock()
		c.links[p.ID] = p
		c.mux.Unlock()

		c.Emit(ble.Event{Type: ble.EventConnected, Peripheral: p})
	}

	return nil
}

// CancelConnection implements ble.Central. Like CoreBluetooth it reports
// the disconnect of a cancelled link as an ordinary link loss.
func (c *Central) CancelConnection(p ble.Peripheral) error {
	c.record("cancel")

	c.mux.Lock()
	current, ok := c.links[p.ID]
	dropped := ok && current.Attempt == p.Attempt
	if dropped {
		delete(c.links, p.ID)
	}
	c.mux.Unlock()

	if dropped {
		c.Emit(ble.Event{Type: ble.EventDisconnected, Peripheral: p})
	}

	return nil
}

// DiscoverServices implements ble.Central
func (c *Central) DiscoverServices(p ble.Peripheral, _ []bluetooth.UUID) error {
	c.record("discover-services")

	if c.ServicesErr != nil {
		c.Emit(ble.Event{Type: ble.EventServicesDiscovered, Peripheral: p, Err: c.ServicesErr})
		return nil
	}

	services := []ble.Service{}

	if !c.NoActionService {
		services = append(services, ble.Service{UUID: ble.ActionServiceUUID})
	}

	services = append(services, ble.Service{UUID: ble.InfoServiceUUID})

	c.Emit(ble.Event{Type: ble.EventServicesDiscovered, Peripheral: p, Services: services})

	return nil
}

// DiscoverCharacteristics implements ble.Central
func (c *Central) DiscoverCharacteristics(p ble.Peripheral, s ble.Service, uuids []bluetooth.UUID) error {
	c.record("discover-characteristics")

	chars := []ble.Characteristic{}

	for _, uuid := range uuids {
		if uuid == ble.WriteCharacteristicUUID && c.NoWriteCharacteristic {
			continue
		}
		chars = append(chars, ble.Characteristic{UUID: uuid, Service: s.UUID})
	}

	c.Emit(ble.Event{
		Type:            ble.EventCharacteristicsDiscovered,
		Peripheral:      p,
		Service:         s,
		Characteristics: chars,
	})

	return nil
}

// Write implements ble.Central
func (c *Central) Write(p ble.Peripheral, _ ble.Characteristic, data []byte) error {
	c.record("write")

	c.mux.Lock()
	c.written = append(c.written, append([]byte{}, data...))
	if c.HoldWrites {
		c.held = append(c.held, p)
		c.mux.Unlock()
		return nil
	}
	c.mux.Unlock()

	if c.WriteErr != nil {
		c.Emit(ble.Event{Type: ble.EventWriteComplete, Peripheral: p, Err: c.WriteErr})
		return nil
	}

	c.Emit(ble.Event{Type: ble.EventWriteComplete, Peripheral: p, Value: c.WriteResponse})

	return nil
}

// Read implements ble.Central
func (c *Central) Read(_ ble.Peripheral, ch ble.Characteristic) ([]byte, error) {
	c.record("read")

	value, ok := c.Info[ch.UUID]

	if !ok {
		return nil, ErrRadio
	}

	return []byte(value), nil
}

func (c *Central) record(call string) {
	c.mux.Lock()
	defer c.mux.Unlock()
	c.calls = append(c.calls, call)
}

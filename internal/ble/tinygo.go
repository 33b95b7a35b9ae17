package ble

import (
	"errors"
	"fmt"
	"sync"

	"github.com/robgonnella/zlink/internal/logger"
	"tinygo.org/x/bluetooth"
)

const (
	eventBufferSize = 256
	// largest value BlueZ accepts in a single attribute write
	maxWriteChunk = 512
	readBufSize   = 512
)

// ErrUnknownPeripheral is returned when a request names a peripheral that is
// not connected through this central
var ErrUnknownPeripheral = errors.New("peripheral not connected")

// link is an established connection and the attempt it belongs to
type link struct {
	device     bluetooth.Device
	peripheral Peripheral
}

// TinyGoCentral implements Central on tinygo.org/x/bluetooth. Every
// blocking adapter call runs on its own goroutine and reports back as an
// Event.
type TinyGoCentral struct {
	adapter  *bluetooth.Adapter
	events   chan Event
	mux      sync.Mutex
	links    map[string]link
	canceled map[string]bool
	// disconnects still expected for links this central dropped itself
	dropping map[string]int
	scanning bool
	log      logger.Logger
}

// NewTinyGoCentral enables adapter and returns a central wrapping it
func NewTinyGoCentral(adapter *bluetooth.Adapter) (*TinyGoCentral, error) {
	if err := adapter.Enable(); err != nil {
		return nil, fmt.Errorf("failed to enable bluetooth adapter: %w", err)
	}

	c := &TinyGoCentral{
		adapter:  adapter,
		events:   make(chan Event, eventBufferSize),
		links:    map[string]link{},
		canceled: map[string]bool{},
		dropping: map[string]int{},
		log:      logger.NewComponent("ble-central"),
	}

	adapter.SetConnectHandler(func(device bluetooth.Device, connected bool) {
		if !connected {
			c.linkDown(device.Address.String())
		}
	})

	if err := watchLinks(c.linkDown); err != nil {
		c.log.Warn().Err(err).Msg("link loss will only surface on failed writes")
	}

	return c, nil
}

// Events implements Central
func (c *TinyGoCentral) Events() <-chan Event {
	return c.events
}

// Scan implements Central. The adapter reports every advertisement it
// receives so allowDuplicates is always honored.
func (c *TinyGoCentral) Scan(allowDuplicates bool) error {
	c.mux.Lock()
	if c.scanning {
		c.mux.Unlock()
		return nil
	}
	c.scanning = true
	c.mux.Unlock()

	go func() {
		err := c.adapter.Scan(func(_ *bluetooth.Adapter, result bluetooth.ScanResult) {
			c.emit(Event{
				Type: EventAdvertisement,
				Peripheral: Peripheral{
					ID:   result.Address.String(),
					Name: result.LocalName(),
					RSSI: int(result.RSSI),
					Ref:  result.Address,
				},
			})
		})

		c.mux.Lock()
		c.scanning = false
		c.mux.Unlock()

		if err != nil {
			c.log.Error().Err(err).Msg("bluetooth scan failed")
		}
	}()

	return nil
}

// StopScan implements Central
func (c *TinyGoCentral) StopScan() error {
	c.mux.Lock()
	scanning := c.scanning
	c.mux.Unlock()

	if !scanning {
		return nil
	}

	return c.adapter.StopScan()
}

// Connect implements Central
func (c *TinyGoCentral) Connect(p Peripheral) error {
	addr, ok := p.Ref.(bluetooth.Address)

	if !ok {
		return fmt.Errorf("invalid peripheral reference for %s", p.ID)
	}

	c.mux.Lock()
	delete(c.canceled, p.ID)
	c.mux.Unlock()

	go func() {
		device, err := c.adapter.Connect(addr, bluetooth.ConnectionParams{})

		if err != nil {
			c.emit(Event{Type: EventConnectFailed, Peripheral: p, Err: err})
			return
		}

		c.mux.Lock()
		canceled := c.canceled[p.ID]
		delete(c.canceled, p.ID)
		if canceled {
			c.dropping[p.ID]++
		} else {
			c.links[p.ID] = link{device: device, peripheral: p}
		}
		c.mux.Unlock()

		if canceled {
			if err := device.Disconnect(); err != nil {
				c.log.Debug().Err(err).Str("peripheral", p.ID).Msg("failed to drop canceled connection")
				c.mux.Lock()
				c.settle(p.ID)
				c.mux.Unlock()
			}
			return
		}

		c.emit(Event{Type: EventConnected, Peripheral: p})
	}()

	return nil
}

// CancelConnection implements Central. A connection still being
// established is dropped as soon as it completes. The platform disconnect
// that follows is not reported, the caller already knows.
func (c *TinyGoCentral) CancelConnection(p Peripheral) error {
	c.mux.Lock()
	l, ok := c.links[p.ID]
	if ok {
		delete(c.links, p.ID)
		c.dropping[p.ID]++
	} else {
		c.canceled[p.ID] = true
	}
	c.mux.Unlock()

	if !ok {
		return nil
	}

	go func() {
		if err := l.device.Disconnect(); err != nil {
			c.log.Debug().Err(err).Str("peripheral", p.ID).Msg("failed to disconnect")
			c.mux.Lock()
			c.settle(p.ID)
			c.mux.Unlock()
		}
	}()

	return nil
}

// DiscoverServices implements Central
func (c *TinyGoCentral) DiscoverServices(p Peripheral, uuids []bluetooth.UUID) error {
	device, err := c.device(p)

	if err != nil {
		return err
	}

	go func() {
		// an explicit filter makes some stacks fail when one service is
		// missing, so ask for everything and filter here
		found, err := device.DiscoverServices(nil)

		if err != nil {
			c.emit(Event{Type: EventServicesDiscovered, Peripheral: p, Err: err})
			return
		}

		services := []Service{}

		for _, svc := range found {
			if contains(uuids, svc.UUID()) {
				services = append(services, Service{UUID: svc.UUID(), Ref: svc})
			}
		}

		c.emit(Event{Type: EventServicesDiscovered, Peripheral: p, Services: services})
	}()

	return nil
}

// DiscoverCharacteristics implements Central
func (c *TinyGoCentral) DiscoverCharacteristics(p Peripheral, s Service, uuids []bluetooth.UUID) error {
	svc, ok := s.Ref.(bluetooth.DeviceService)

	if !ok {
		return fmt.Errorf("invalid service reference for %s", s.UUID.String())
	}

	go func() {
		found, err := svc.DiscoverCharacteristics(nil)

		if err != nil {
			c.emit(Event{Type: EventCharacteristicsDiscovered, Peripheral: p, Service: s, Err: err})
			return
		}

		chars := []Characteristic{}

		for _, char := range found {
			if contains(uuids, char.UUID()) {
				chars = append(chars, Characteristic{
					UUID:    char.UUID(),
					Service: s.UUID,
					Ref:     char,
				})
			}
		}

		c.emit(Event{
			Type:            EventCharacteristicsDiscovered,
			Peripheral:      p,
			Service:         s,
			Characteristics: chars,
		})
	}()

	return nil
}

// Write implements Central. Payloads larger than one attribute write are
// sent in order as consecutive writes and reported as a single completion.
// Where the platform only offers write without response the completion
// follows the last queued chunk.
func (c *TinyGoCentral) Write(p Peripheral, ch Characteristic, data []byte) error {
	char, ok := ch.Ref.(bluetooth.DeviceCharacteristic)

	if !ok {
		return fmt.Errorf("invalid characteristic reference for %s", ch.UUID.String())
	}

	payload := make([]byte, len(data))
	copy(payload, data)

	go func() {
		err := writeChunks(payload, maxWriteChunk, writeFunc(char))

		if err == nil && !acknowledgedWrites {
			c.log.Debug().Str("peripheral", p.ID).Msg("write queued without response")
		}

		c.emit(Event{Type: EventWriteComplete, Peripheral: p, Err: err})
	}()

	return nil
}

// Read implements Central
func (c *TinyGoCentral) Read(p Peripheral, ch Characteristic) ([]byte, error) {
	char, ok := ch.Ref.(bluetooth.DeviceCharacteristic)

	if !ok {
		return nil, fmt.Errorf("invalid characteristic reference for %s", ch.UUID.String())
	}

	buf := make([]byte, readBufSize)

	n, err := char.Read(buf)

	if err != nil {
		return nil, err
	}

	return buf[:n], nil
}

func (c *TinyGoCentral) device(p Peripheral) (bluetooth.Device, error) {
	c.mux.Lock()
	defer c.mux.Unlock()

	l, ok := c.links[p.ID]

	if !ok {
		return bluetooth.Device{}, ErrUnknownPeripheral
	}

	return l.device, nil
}

// linkDown reports a platform disconnect for id unless this central caused
// it or never connected id
func (c *TinyGoCentral) linkDown(id string) {
	c.mux.Lock()

	if c.settle(id) {
		c.mux.Unlock()
		return
	}

	l, ok := c.links[id]
	delete(c.links, id)
	c.mux.Unlock()

	if !ok {
		return
	}

	c.emit(Event{Type: EventDisconnected, Peripheral: l.peripheral})
}

func (c *TinyGoCentral) emit(evt Event) {
	c.events <- evt
}

// settle consumes one expected self-inflicted disconnect for id. Callers
// hold mux.
func (c *TinyGoCentral) settle(id string) bool {
	if c.dropping[id] == 0 {
		return false
	}

	c.dropping[id]--

	if c.dropping[id] == 0 {
		delete(c.dropping, id)
	}

	return true
}

// writeChunks passes data to write in order, size bytes at a time, and
// stops at the first failure
func writeChunks(data []byte, size int, write func([]byte) (int, error)) error {
	for _, chunk := range chunks(data, size) {
		if _, err := write(chunk); err != nil {
			return err
		}
	}

	return nil
}

func chunks(data []byte, size int) [][]byte {
	if len(data) <= size {
		return [][]byte{data}
	}

	result := [][]byte{}

	for len(data) > size {
		result = append(result, data[:size])
		data = data[size:]
	}

	return append(result, data)
}

func contains(uuids []bluetooth.UUID, uuid bluetooth.UUID) bool {
	for _, u := range uuids {
		if u == uuid {
			return true
		}
	}
	return false
}

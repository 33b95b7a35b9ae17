package ble

import "tinygo.org/x/bluetooth"

// UnavailableCentral stands in when the host has no usable adapter. Every
// request fails with the error that prevented enabling the adapter.
type UnavailableCentral struct {
	err    error
	events chan Event
}

// NewUnavailableCentral returns a central that always fails with err
func NewUnavailableCentral(err error) *UnavailableCentral {
	return &UnavailableCentral{err: err, events: make(chan Event)}
}

// Events implements Central, nothing is ever delivered
func (c *UnavailableCentral) Events() <-chan Event { return c.events }

// Scan implements Central
func (c *UnavailableCentral) Scan(bool) error { return c.err }

// StopScan implements Central
func (c *UnavailableCentral) StopScan() error { return nil }

// Connect implements Central
func (c *UnavailableCentral) Connect(Peripheral) error { return c.err }

// CancelConnection implements Central
func (c *UnavailableCentral) CancelConnection(Peripheral) error { return nil }

// DiscoverServices implements Central
func (c *UnavailableCentral) DiscoverServices(Peripheral, []bluetooth.UUID) error {
	return c.err
}

// DiscoverCharacteristics implements Central
func (c *UnavailableCentral) DiscoverCharacteristics(Peripheral, Service, []bluetooth.UUID) error {
	return c.err
}

// Write implements Central
func (c *UnavailableCentral) Write(Peripheral, Characteristic, []byte) error { return c.err }

// Read implements Central
func (c *UnavailableCentral) Read(Peripheral, Characteristic) ([]byte, error) { return nil, c.err }

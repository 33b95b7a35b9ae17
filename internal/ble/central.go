package ble

import (
	"tinygo.org/x/bluetooth"
)

// EventType identifies an asynchronous platform callback
type EventType int

// Enum values for every platform callback the session reacts to
const (
	EventAdvertisement EventType = iota
	EventConnected
	EventConnectFailed
	EventDisconnected
	EventServicesDiscovered
	EventCharacteristicsDiscovered
	EventWriteComplete
)

func (t EventType) String() string {
	switch t {
	case EventAdvertisement:
		return "advertisement"
	case EventConnected:
		return "connected"
	case EventConnectFailed:
		return "connect-failed"
	case EventDisconnected:
		return "disconnected"
	case EventServicesDiscovered:
		return "services-discovered"
	case EventCharacteristicsDiscovered:
		return "characteristics-discovered"
	case EventWriteComplete:
		return "write-complete"
	default:
		return "unknown"
	}
}

// Peripheral is a remote BLE device. Ref holds the platform object and is
// only meaningful to the Central that produced it. Attempt is stamped by
// Negotiator.Begin and echoed on every event about that connection, so
// events from an earlier link to the same device can be told apart.
type Peripheral struct {
	ID      string
	Name    string
	RSSI    int
	Attempt uint64
	Ref     any
}

// Service is a discovered GATT service
type Service struct {
	UUID bluetooth.UUID
	Ref  any
}

// Characteristic is a discovered GATT characteristic
type Characteristic struct {
	UUID    bluetooth.UUID
	Service bluetooth.UUID
	Ref     any
}

// Event is a platform callback delivered on Central.Events. Which fields
// are set depends on Type.
type Event struct {
	Type            EventType
	Peripheral      Peripheral
	Service         Service
	Services        []Service
	Characteristics []Characteristic
	Value           []byte
	Err             error
}

// Central is the BLE platform boundary. Every request except Read returns
// as soon as it is issued, results arrive later on Events from goroutines
// chosen by the platform.
type Central interface {
	Scan(allowDuplicates bool) error
	StopScan() error
	Connect(p Peripheral) error
	CancelConnection(p Peripheral) error
	DiscoverServices(p Peripheral, uuids []bluetooth.UUID) error
	DiscoverCharacteristics(p Peripheral, s Service, uuids []bluetooth.UUID) error
	Write(p Peripheral, c Characteristic, data []byte) error
	Read(p Peripheral, c Characteristic) ([]byte, error)
	Events() <-chan Event
}

package printer

import (
	"time"

	"gorm.io/datatypes"
)

//go:generate mockgen -destination=../mock/printer/mock_printer.go -package=mock_printer . Repo,Service

// Transport names the link a printer was seen on
type Transport string

// Enum values for supported transports
const (
	TransportWifi      Transport = "wifi"
	TransportBluetooth Transport = "bluetooth"
)

// Printer is a previously discovered printer. Handle is an IP address for
// wifi printers and an advertised name for bluetooth printers.
type Printer struct {
	ID        string `gorm:"primaryKey"`
	Transport Transport
	Handle    string
	FirstSeen time.Time
	LastSeen  time.Time
	Info      datatypes.JSON
}

// Repo interface representing access to stored printers
type Repo interface {
	GetAllPrinters() ([]*Printer, error)
	GetPrinterByID(id string) (*Printer, error)
	AddPrinter(printer *Printer) (*Printer, error)
	UpdatePrinter(printer *Printer) (*Printer, error)
	RemovePrinter(id string) error
}

// Service interface for recording and listing discovered printers
type Service interface {
	GetAll() ([]*Printer, error)
	RecordDiscovery(transport Transport, handles []string) error
	SetInfo(transport Transport, handle string, info map[string]string) error
	Remove(id string) error
}

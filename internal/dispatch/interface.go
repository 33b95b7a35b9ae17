package dispatch

import (
	"context"

	"github.com/robgonnella/zlink/internal/printer"
)

//go:generate mockgen -destination=../mock/dispatch/mock_dispatch.go -package=mock_dispatch . WifiSession,BluetoothSession,PrinterLister

// WifiSession is the wifi printer session driven by Adapter
type WifiSession interface {
	Discover(ctx context.Context, seconds float64) []string
	IsConnected(ctx context.Context) bool
	Connect(ctx context.Context, address string, port *int) error
	Disconnect(ctx context.Context) error
	Send(ctx context.Context, command string) error
	Print(ctx context.Context, command string) error
	Read(ctx context.Context) (string, error)
}

// BluetoothSession is the bluetooth printer session driven by Adapter
type BluetoothSession interface {
	Discover(ctx context.Context, seconds float64) []string
	IsConnected() bool
	Connect(ctx context.Context, name string) error
	Disconnect()
	Send(ctx context.Context, command string) (string, error)
	Info(ctx context.Context) (map[string]string, error)
}

// PrinterLister lists printers recorded by discovery
type PrinterLister interface {
	GetAll() ([]*printer.Printer, error)
}

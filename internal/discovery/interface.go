package discovery

import (
	"context"
	"time"
)

//go:generate mockgen -destination=../mock/discovery/mock_discovery.go -package=mock_discovery . Scanner

// Method names a wifi discovery strategy
type Method string

// Supported wifi discovery strategies
const (
	MethodBroadcast Method = "broadcast"
	MethodNmap      Method = "nmap"
	MethodSweep     Method = "sweep"
)

// Default printer ports probed by the sweeping scanners
const (
	DefaultPrinterPort = 6101
	RawPrintPort       = 9100
)

// Scanner interface for finding printers on the local network. Scan blocks
// for at most timeout and returns every responding address once.
type Scanner interface {
	Scan(ctx context.Context, timeout time.Duration) ([]string, error)
}

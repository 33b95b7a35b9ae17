package ble

// FilterMode selects how RSSIFilter combines its bounds
type FilterMode string

// Supported filter modes
const (
	// FilterEither accepts rssi > Floor OR rssi < Ceiling. This is the
	// observed behavior of deployed clients and lets nearly every signal in.
	FilterEither FilterMode = "either"
	// FilterBetween accepts Floor < rssi < Ceiling
	FilterBetween FilterMode = "between"
)

// Default signal bounds in dBm
const (
	DefaultRSSIFloor   = -70
	DefaultRSSICeiling = -15
)

// RSSIFilter decides which advertisements are recorded during a scan
type RSSIFilter struct {
	Floor   int
	Ceiling int
	Mode    FilterMode
}

// DefaultRSSIFilter returns the permissive filter used by default
func DefaultRSSIFilter() RSSIFilter {
	return RSSIFilter{
		Floor:   DefaultRSSIFloor,
		Ceiling: DefaultRSSICeiling,
		Mode:    FilterEither,
	}
}

// Accept reports whether an advertisement with rssi passes the filter
func (f RSSIFilter) Accept(rssi int) bool {
	if f.Mode == FilterBetween {
		return f.Floor < rssi && rssi < f.Ceiling
	}

	return f.Floor < rssi || rssi < f.Ceiling
}

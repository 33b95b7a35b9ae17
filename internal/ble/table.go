package ble

import "strings"

// DiscoveryTable maps trimmed device names seen during one scan window to
// their peripherals. It is not safe for concurrent use.
type DiscoveryTable struct {
	names       []string
	peripherals map[string]Peripheral
}

// NewDiscoveryTable returns an empty table
func NewDiscoveryTable() *DiscoveryTable {
	return &DiscoveryTable{
		names:       []string{},
		peripherals: map[string]Peripheral{},
	}
}

// Reset forgets every entry
func (t *DiscoveryTable) Reset() {
	t.names = []string{}
	t.peripherals = map[string]Peripheral{}
}

// Add records p under its trimmed name. Unnamed peripherals are ignored and
// the first peripheral seen for a name wins.
func (t *DiscoveryTable) Add(p Peripheral) bool {
	name := strings.TrimSpace(p.Name)

	if name == "" {
		return false
	}

	if _, ok := t.peripherals[name]; ok {
		return false
	}

	p.Name = name
	t.peripherals[name] = p
	t.names = append(t.names, name)

	return true
}

// Lookup returns the peripheral recorded for name
func (t *DiscoveryTable) Lookup(name string) (Peripheral, bool) {
	p, ok := t.peripherals[name]
	return p, ok
}

// Names returns recorded names in first-seen order
func (t *DiscoveryTable) Names() []string {
	names := make([]string, len(t.names))
	copy(names, t.names)
	return names
}

// Len returns the number of recorded peripherals
func (t *DiscoveryTable) Len() int {
	return len(t.names)
}

//go:build linux && !baremetal

package ble

import (
	"testing"

	"github.com/godbus/dbus/v5"
	"github.com/stretchr/testify/assert"
)

func TestLinuxWrites(t *testing.T) {
	t.Run("uses write without response", func(st *testing.T) {
		assert.False(st, acknowledgedWrites)
	})
}

func TestDisconnectedDevice(t *testing.T) {
	changed := func(props map[string]dbus.Variant) *dbus.Signal {
		return &dbus.Signal{
			Path: "/org/bluez/hci0/dev_aa_bb_cc_dd_ee_0f",
			Name: dbusProperties + ".PropertiesChanged",
			Body: []interface{}{bluezDevice, props, []string{}},
		}
	}

	t.Run("maps a lost link to the device address", func(st *testing.T) {
		id, ok := disconnectedDevice(changed(map[string]dbus.Variant{
			"Connected": dbus.MakeVariant(false),
		}))

		assert.True(st, ok)
		assert.Equal(st, "AA:BB:CC:DD:EE:0F", id)
	})

	t.Run("ignores new connections", func(st *testing.T) {
		_, ok := disconnectedDevice(changed(map[string]dbus.Variant{
			"Connected": dbus.MakeVariant(true),
		}))

		assert.False(st, ok)
	})

	t.Run("ignores other properties", func(st *testing.T) {
		_, ok := disconnectedDevice(changed(map[string]dbus.Variant{
			"RSSI": dbus.MakeVariant(int16(-40)),
		}))

		assert.False(st, ok)
	})

	t.Run("ignores other interfaces", func(st *testing.T) {
		sig := changed(map[string]dbus.Variant{"Connected": dbus.MakeVariant(false)})
		sig.Body[0] = "org.bluez.GattCharacteristic1"

		_, ok := disconnectedDevice(sig)

		assert.False(st, ok)
	})

	t.Run("ignores paths below a device", func(st *testing.T) {
		sig := changed(map[string]dbus.Variant{"Connected": dbus.MakeVariant(false)})
		sig.Path = "/org/bluez/hci0/dev_AA_BB_CC_DD_EE_0F/service000a"

		_, ok := disconnectedDevice(sig)

		assert.False(st, ok)
	})
}

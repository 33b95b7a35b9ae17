//go:build linux && !baremetal

package ble

import (
	"fmt"
	"strings"

	"github.com/godbus/dbus/v5"
)

const (
	bluezDevice    = "org.bluez.Device1"
	dbusProperties = "org.freedesktop.DBus.Properties"
	devicePrefix   = "/dev_"
)

// watchLinks calls lost with the address of every BlueZ device whose
// Connected property turns false. tinygo never invokes the adapter connect
// handler on linux so this is the only link loss signal there.
func watchLinks(lost func(id string)) error {
	conn, err := dbus.ConnectSystemBus()

	if err != nil {
		return fmt.Errorf("failed to connect to system bus: %w", err)
	}

	err = conn.AddMatchSignal(
		dbus.WithMatchInterface(dbusProperties),
		dbus.WithMatchMember("PropertiesChanged"),
		dbus.WithMatchArg(0, bluezDevice),
	)

	if err != nil {
		conn.Close()
		return fmt.Errorf("failed to watch bluez devices: %w", err)
	}

	signals := make(chan *dbus.Signal, 64)
	conn.Signal(signals)

	go func() {
		for sig := range signals {
			if id, ok := disconnectedDevice(sig); ok {
				lost(id)
			}
		}
	}()

	return nil
}

// disconnectedDevice returns the address of the device sig reports as no
// longer connected
func disconnectedDevice(sig *dbus.Signal) (string, bool) {
	if sig == nil || sig.Name != dbusProperties+".PropertiesChanged" || len(sig.Body) < 2 {
		return "", false
	}

	if iface, ok := sig.Body[0].(string); !ok || iface != bluezDevice {
		return "", false
	}

	changed, ok := sig.Body[1].(map[string]dbus.Variant)

	if !ok {
		return "", false
	}

	value, ok := changed["Connected"]

	if !ok {
		return "", false
	}

	if connected, ok := value.Value().(bool); !ok || connected {
		return "", false
	}

	return deviceAddress(sig.Path)
}

// deviceAddress turns /org/bluez/hci0/dev_AA_BB_CC_DD_EE_FF into
// AA:BB:CC:DD:EE:FF
func deviceAddress(path dbus.ObjectPath) (string, bool) {
	p := string(path)
	idx := strings.LastIndex(p, devicePrefix)

	if idx < 0 {
		return "", false
	}

	mac := p[idx+len(devicePrefix):]

	if len(mac) != 17 || strings.Contains(mac, "/") {
		return "", false
	}

	return strings.ToUpper(strings.ReplaceAll(mac, "_", ":")), true
}

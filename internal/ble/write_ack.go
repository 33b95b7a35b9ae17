//go:build darwin || windows

package ble

import "tinygo.org/x/bluetooth"

// CoreBluetooth and WinRT confirm each attribute write, so a completion
// means the printer accepted every chunk
const acknowledgedWrites = true

func writeFunc(c bluetooth.DeviceCharacteristic) func([]byte) (int, error) {
	return c.Write
}

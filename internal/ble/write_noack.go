//go:build !darwin && !windows

package ble

import "tinygo.org/x/bluetooth"

// BlueZ and the embedded stacks only offer write without response. A
// completion means every chunk was handed to the controller, not that the
// printer acknowledged it.
const acknowledgedWrites = false

func writeFunc(c bluetooth.DeviceCharacteristic) func([]byte) (int, error) {
	return c.WriteWithoutResponse
}

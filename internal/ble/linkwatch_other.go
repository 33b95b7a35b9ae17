//go:build !linux || baremetal

package ble

// watchLinks has nothing to add here. darwin and the nrf stacks report link
// loss through the adapter connect handler, windows surfaces it as a failed
// write.
func watchLinks(func(id string)) error {
	return nil
}

package ble

import (
	"strings"

	"tinygo.org/x/bluetooth"
)

// Zebra "action" service used to exchange ZPL with the printer
var (
	ActionServiceUUID       = must(bluetooth.ParseUUID(strings.ToLower("38EB4A80-C570-11E3-9507-0002A5D5C51B")))
	WriteCharacteristicUUID = must(bluetooth.ParseUUID(strings.ToLower("38EB4A82-C570-11E3-9507-0002A5D5C51B")))
	ReadCharacteristicUUID  = must(bluetooth.ParseUUID(strings.ToLower("38EB4A81-C570-11E3-9507-0002A5D5C51B")))
)

// Standard Bluetooth SIG device information service
var (
	InfoServiceUUID  = bluetooth.New16BitUUID(0x180A)
	ModelNameUUID    = bluetooth.New16BitUUID(0x2A24)
	SerialNumberUUID = bluetooth.New16BitUUID(0x2A25)
	FirmwareUUID     = bluetooth.New16BitUUID(0x2A26)
	HardwareUUID     = bluetooth.New16BitUUID(0x2A27)
	SoftwareUUID     = bluetooth.New16BitUUID(0x2A28)
	ManufacturerUUID = bluetooth.New16BitUUID(0x2A29)
)

// ServiceUUIDs lists the services requested after connecting
func ServiceUUIDs() []bluetooth.UUID {
	return []bluetooth.UUID{ActionServiceUUID, InfoServiceUUID}
}

// ActionCharacteristicUUIDs lists the characteristics of the action service
func ActionCharacteristicUUIDs() []bluetooth.UUID {
	return []bluetooth.UUID{WriteCharacteristicUUID, ReadCharacteristicUUID}
}

// InfoCharacteristicUUIDs lists the device information characteristics
func InfoCharacteristicUUIDs() []bluetooth.UUID {
	return []bluetooth.UUID{
		ModelNameUUID,
		SerialNumberUUID,
		FirmwareUUID,
		HardwareUUID,
		SoftwareUUID,
		ManufacturerUUID,
	}
}

// InfoFieldName maps a device information characteristic to a field name
func InfoFieldName(uuid bluetooth.UUID) (string, bool) {
	switch uuid {
	case ModelNameUUID:
		return "model", true
	case SerialNumberUUID:
		return "serial", true
	case FirmwareUUID:
		return "firmware", true
	case HardwareUUID:
		return "hardware", true
	case SoftwareUUID:
		return "software", true
	case ManufacturerUUID:
		return "manufacturer", true
	default:
		return "", false
	}
}

func must[T any](value T, err error) T {
	if err != nil {
		panic(err)
	}
	return value
}

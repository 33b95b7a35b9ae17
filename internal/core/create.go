package core

import (
	"fmt"

	"github.com/robgonnella/zlink/internal/ble"
	"github.com/robgonnella/zlink/internal/bluetooth"
	"github.com/robgonnella/zlink/internal/config"
	"github.com/robgonnella/zlink/internal/discovery"
	"github.com/robgonnella/zlink/internal/event"
	"github.com/robgonnella/zlink/internal/logger"
	"github.com/robgonnella/zlink/internal/printer"
	"github.com/robgonnella/zlink/internal/transport"
	"github.com/robgonnella/zlink/internal/wifi"
	tinygo "tinygo.org/x/bluetooth"
)

// NewScanner returns the wifi discovery strategy named in conf
func NewScanner(conf config.WifiConfig) (discovery.Scanner, error) {
	switch discovery.Method(conf.Discovery) {
	case discovery.MethodBroadcast, "":
		return discovery.NewBroadcastScanner(conf.BroadcastPort), nil
	case discovery.MethodNmap:
		return discovery.NewNmapScanner(conf.Targets, conf.Port), nil
	case discovery.MethodSweep:
		scanner, err := discovery.NewNetScanner(conf.Targets, conf.Port)
		if err != nil {
			return nil, err
		}
		return scanner, nil
	default:
		return nil, fmt.Errorf("unsupported wifi discovery method: %s", conf.Discovery)
	}
}

// NewDialer returns a tcp dialer using the timings in conf
func NewDialer(conf config.WifiConfig) transport.Dialer {
	return transport.NewTCPDialer(
		transport.WithDialTimeout(conf.DialTimeout),
		transport.WithReadTimeout(conf.ReadTimeout),
		transport.WithWaitForMoreData(conf.WaitForMoreData),
	)
}

// BluetoothConfig converts conf into a bluetooth session config
func BluetoothConfig(conf config.BluetoothConfig) bluetooth.Config {
	bt := bluetooth.DefaultConfig()

	bt.Filter = ble.RSSIFilter{
		Floor:   conf.RSSIFloor,
		Ceiling: conf.RSSICeiling,
		Mode:    ble.FilterMode(conf.RSSIMode),
	}

	if conf.ConnectTimeout > 0 {
		bt.ConnectTimeout = conf.ConnectTimeout
	}

	if conf.SendTimeout > 0 {
		bt.SendTimeout = conf.SendTimeout
	}

	return bt
}

// newCentral enables the default adapter. Hosts without a usable radio get
// a central whose every request fails so wifi keeps working.
func newCentral() ble.Central {
	central, err := ble.NewTinyGoCentral(tinygo.DefaultAdapter)

	if err != nil {
		log := logger.New()
		log.Warn().Err(err).Msg("bluetooth unavailable")
		return ble.NewUnavailableCentral(err)
	}

	return central
}

// CreateNewAppCore creates and returns a new instance of *core.Core
func CreateNewAppCore(conf config.Config) (*Core, error) {
	db, err := printer.NewSqliteDatabase()

	if err != nil {
		return nil, err
	}

	printerService := printer.NewService(printer.NewSqliteRepo(db))

	scanner, err := NewScanner(conf.Wifi)

	if err != nil {
		return nil, err
	}

	events := event.NewEventManager()

	wifiSession := wifi.New(
		scanner,
		NewDialer(conf.Wifi),
		wifi.NewZPLStack,
		conf.Wifi.Port,
		events,
	)

	bluetoothSession := bluetooth.New(
		newCentral(),
		BluetoothConfig(conf.Bluetooth),
		events,
	)

	return New(
		conf,
		wifiSession,
		bluetoothSession,
		printerService,
		events,
		wifiSession.Close,
		bluetoothSession.Close,
	), nil
}

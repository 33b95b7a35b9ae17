package ble_test

import (
	"testing"

	"github.com/robgonnella/zlink/internal/ble"
	"github.com/robgonnella/zlink/internal/ble/bletest"
	"github.com/robgonnella/zlink/internal/exception"
	"github.com/stretchr/testify/assert"
)

// drive feeds every queued event to the negotiator until it finishes or
// the queue runs dry
func drive(n *ble.Negotiator, central *bletest.Central) (bool, error) {
	for {
		select {
		case evt := <-central.Events():
			if done, err := n.Handle(evt); done {
				return true, err
			}
		default:
			return false, nil
		}
	}
}

func TestNegotiator(t *testing.T) {
	printer := bletest.Printer("ZQ520", -40)

	t.Run("reaches ready once the write characteristic is found", func(st *testing.T) {
		central := bletest.NewCentral()
		n := ble.NewNegotiator(central)

		err := n.Begin(printer)

		assert.NoError(st, err)
		assert.Equal(st, ble.StateConnecting, n.State())

		done, err := drive(n, central)

		assert.True(st, done)
		assert.NoError(st, err)
		assert.Equal(st, ble.StateReady, n.State())

		_, ok := n.WriteCharacteristic()
		assert.True(st, ok)

		_, ok = n.ReadCharacteristic()
		assert.True(st, ok)

		p, ok := n.Peripheral()
		assert.True(st, ok)
		assert.Equal(st, printer.ID, p.ID)

		// info service results arrive after ready
		done, _ = drive(n, central)
		assert.False(st, done)
		assert.Len(st, n.InfoCharacteristics(), len(ble.InfoCharacteristicUUIDs()))
	})

	t.Run("fails with platform error when connect fails", func(st *testing.T) {
		central := bletest.NewCentral()
		central.ConnectErr = bletest.ErrRadio
		n := ble.NewNegotiator(central)

		assert.NoError(st, n.Begin(printer))

		done, err := drive(n, central)

		assert.True(st, done)
		assert.ErrorIs(st, err, bletest.ErrRadio)
		assert.Equal(st, exception.KindWrapped, exception.KindOf(err))
		assert.Equal(st, ble.StateFailed, n.State())

		_, ok := n.Peripheral()
		assert.False(st, ok)
		assert.Contains(st, central.Calls(), "cancel")
	})

	t.Run("fails when service discovery fails", func(st *testing.T) {
		central := bletest.NewCentral()
		central.ServicesErr = bletest.ErrRadio
		n := ble.NewNegotiator(central)

		assert.NoError(st, n.Begin(printer))

		done, err := drive(n, central)

		assert.True(st, done)
		assert.ErrorIs(st, err, bletest.ErrRadio)
	})

	t.Run("fails incomplete without a write characteristic", func(st *testing.T) {
		central := bletest.NewCentral()
		central.NoWriteCharacteristic = true
		n := ble.NewNegotiator(central)

		assert.NoError(st, n.Begin(printer))

		done, err := drive(n, central)

		assert.True(st, done)
		assert.ErrorIs(st, err, exception.ErrConnectionIncomplete)
		assert.Equal(st, ble.StateFailed, n.State())
	})

	t.Run("fails incomplete without the action service", func(st *testing.T) {
		central := bletest.NewCentral()
		central.NoActionService = true
		n := ble.NewNegotiator(central)

		assert.NoError(st, n.Begin(printer))

		done, err := drive(n, central)

		assert.True(st, done)
		assert.ErrorIs(st, err, exception.ErrConnectionIncomplete)
	})

	t.Run("ignores events for other peripherals", func(st *testing.T) {
		central := bletest.NewCentral()
		central.Silent = true
		n := ble.NewNegotiator(central)

		assert.NoError(st, n.Begin(printer))

		done, err := n.Handle(ble.Event{
			Type:       ble.EventConnected,
			Peripheral: bletest.Printer("other", -40),
		})

		assert.False(st, done)
		assert.NoError(st, err)
		assert.Equal(st, ble.StateConnecting, n.State())
	})

	t.Run("ignores events from an earlier attempt", func(st *testing.T) {
		central := bletest.NewCentral()
		central.Silent = true
		n := ble.NewNegotiator(central)

		assert.NoError(st, n.Begin(printer))

		first, _ := n.Peripheral()

		n.Release()

		assert.NoError(st, n.Begin(printer))

		second, _ := n.Peripheral()

		assert.NotEqual(st, first.Attempt, second.Attempt)
		assert.False(st, n.Owns(first))
		assert.True(st, n.Owns(second))

		done, err := n.Handle(ble.Event{Type: ble.EventConnectFailed, Peripheral: first, Err: bletest.ErrRadio})

		assert.False(st, done)
		assert.NoError(st, err)
		assert.Equal(st, ble.StateConnecting, n.State())
	})

	t.Run("release cancels and resets", func(st *testing.T) {
		central := bletest.NewCentral()
		central.Silent = true
		n := ble.NewNegotiator(central)

		assert.NoError(st, n.Begin(printer))

		n.Release()

		assert.Equal(st, ble.StateIdle, n.State())
		assert.Equal(st, []string{"connect", "cancel"}, central.Calls())
	})
}

package exception_test

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/robgonnella/zlink/internal/exception"
	"github.com/stretchr/testify/assert"
)

type codedError struct{}

func (codedError) Error() string { return "coded failure" }
func (codedError) Code() int     { return 42 }

func TestPrinterError(t *testing.T) {
	t.Run("matches sentinels by kind", func(st *testing.T) {
		err := fmt.Errorf("connect: %w", &exception.PrinterError{
			Kind: exception.KindDisconnected,
		})

		assert.ErrorIs(st, err, exception.ErrDisconnected)
		assert.NotErrorIs(st, err, exception.ErrPrinterNotFound)
		assert.Equal(st, exception.KindDisconnected, exception.KindOf(err))
	})

	t.Run("wraps platform errors", func(st *testing.T) {
		platformErr := errors.New("radio off")

		err := exception.Wrap(platformErr)

		assert.Equal(st, exception.KindWrapped, exception.KindOf(err))
		assert.ErrorIs(st, err, platformErr)
		assert.Equal(st, "Zebra SDK Error (-1): radio off", err.Error())
	})

	t.Run("uses error codes when available", func(st *testing.T) {
		assert.Equal(
			st,
			"Zebra SDK Error (42): coded failure",
			exception.Wrap(codedError{}).Error(),
		)

		err := exception.Wrap(fmt.Errorf("dial: %w", syscall.ECONNREFUSED))

		assert.Contains(
			st,
			err.Error(),
			fmt.Sprintf("(%d)", int(syscall.ECONNREFUSED)),
		)
	})

	t.Run("does not double wrap", func(st *testing.T) {
		err := exception.Wrap(exception.ErrBusy)

		assert.Equal(st, exception.ErrBusy, err)
		assert.Nil(st, exception.Wrap(nil))
	})

	t.Run("describes unknown wrapped errors", func(st *testing.T) {
		err := &exception.PrinterError{Kind: exception.KindWrapped}

		assert.Equal(st, "Zebra SDK Error (0): unknown error", err.Error())
	})

	t.Run("defaults unknown errors to internal error", func(st *testing.T) {
		assert.Equal(
			st,
			exception.KindInternalError,
			exception.KindOf(errors.New("boom")),
		)
		assert.Equal(st, "Internal error", exception.ErrInternalError.Error())
	})
}

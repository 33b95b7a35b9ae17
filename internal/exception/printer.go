package exception

import (
	"errors"
	"fmt"
	"syscall"
)

// Kind identifies a class of printer failure independent of transport
type Kind string

// Enum values for all printer failure kinds
const (
	KindAddressRequired      Kind = "address-required"
	KindPrinterNotFound      Kind = "printer-not-found"
	KindDisconnected         Kind = "disconnected"
	KindNotReadyToPrint      Kind = "not-ready-to-print"
	KindInitializationFailed Kind = "initialization-failed"
	KindConnectionIncomplete Kind = "connection-incomplete"
	KindFailedToReadZPL      Kind = "failed-to-read-zpl"
	KindInternalError        Kind = "internal-error"
	KindTimeout              Kind = "timeout"
	KindBusy                 Kind = "busy"
	KindWrapped              Kind = "wrapped"
)

// Sentinels usable with errors.Is
var (
	ErrAddressRequired      = &PrinterError{Kind: KindAddressRequired}
	ErrPrinterNotFound      = &PrinterError{Kind: KindPrinterNotFound}
	ErrDisconnected         = &PrinterError{Kind: KindDisconnected}
	ErrNotReadyToPrint      = &PrinterError{Kind: KindNotReadyToPrint}
	ErrInitializationFailed = &PrinterError{Kind: KindInitializationFailed}
	ErrConnectionIncomplete = &PrinterError{Kind: KindConnectionIncomplete}
	ErrFailedToReadZPL      = &PrinterError{Kind: KindFailedToReadZPL}
	ErrInternalError        = &PrinterError{Kind: KindInternalError}
	ErrTimeout              = &PrinterError{Kind: KindTimeout}
	ErrBusy                 = &PrinterError{Kind: KindBusy}
)

// PrinterError is the only error type that crosses a session boundary.
// Err is set for KindWrapped and carries the underlying platform error.
type PrinterError struct {
	Kind Kind
	Code int
	Err  error
}

// Error returns the one line, user facing description of the failure
func (e *PrinterError) Error() string {
	switch e.Kind {
	case KindAddressRequired:
		return "Address is required"
	case KindPrinterNotFound:
		return "Printer not found"
	case KindDisconnected:
		return "Printer not connected"
	case KindNotReadyToPrint:
		return "Not ready to print"
	case KindInitializationFailed:
		return "Printer failed to initialize"
	case KindConnectionIncomplete:
		return "Connection Incomplete. Please try again."
	case KindFailedToReadZPL:
		return "Could not read ZPL command"
	case KindTimeout:
		return "Printer did not respond in time"
	case KindBusy:
		return "Printer is busy with another request"
	case KindWrapped:
		message := "unknown error"

		if e.Err != nil && e.Err.Error() != "" {
			message = e.Err.Error()
		}

		return fmt.Sprintf("Zebra SDK Error (%d): %s", e.Code, message)
	default:
		return "Internal error"
	}
}

// Unwrap exposes the underlying platform error if any
func (e *PrinterError) Unwrap() error {
	return e.Err
}

// Is matches on kind so callers can compare against the sentinels
func (e *PrinterError) Is(target error) bool {
	t, ok := target.(*PrinterError)

	if !ok {
		return false
	}

	return t.Kind == e.Kind
}

// Wrap resolves any error into a PrinterError. Errors that already are
// printer errors are returned as is, nil stays nil.
func Wrap(err error) error {
	if err == nil {
		return nil
	}

	var printerErr *PrinterError

	if errors.As(err, &printerErr) {
		return printerErr
	}

	return &PrinterError{
		Kind: KindWrapped,
		Code: codeOf(err),
		Err:  err,
	}
}

// KindOf returns the printer error kind of err or KindInternalError when
// err is not a printer error
func KindOf(err error) Kind {
	var printerErr *PrinterError

	if errors.As(err, &printerErr) {
		return printerErr.Kind
	}

	return KindInternalError
}

type coder interface {
	Code() int
}

func codeOf(err error) int {
	var c coder

	if errors.As(err, &c) {
		return c.Code()
	}

	var errno syscall.Errno

	if errors.As(err, &errno) {
		return int(errno)
	}

	return -1
}

package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/robgonnella/zlink/internal/exception"
	"github.com/robgonnella/zlink/internal/logger"
)

// Result is the envelope returned for every call
type Result struct {
	Success bool           `json:"success"`
	Value   any            `json:"value,omitempty"`
	Error   string         `json:"error,omitempty"`
	Kind    exception.Kind `json:"kind,omitempty"`
}

// PrinterView is the registry entry returned by the printers action
type PrinterView struct {
	ID        string            `json:"id"`
	Transport string            `json:"transport"`
	Handle    string            `json:"handle"`
	FirstSeen time.Time         `json:"firstSeen"`
	LastSeen  time.Time         `json:"lastSeen"`
	Info      map[string]string `json:"info,omitempty"`
}

type handler func(ctx context.Context, args []any) (any, error)

// Adapter maps named calls onto session operations
type Adapter struct {
	wifi      WifiSession
	bluetooth BluetoothSession
	printers  PrinterLister
	log       logger.Logger
	handlers  map[string]handler
}

// New returns an Adapter for the given sessions. printers may be nil, in
// which case the printers action reports an internal error.
func New(wifi WifiSession, bluetooth BluetoothSession, printers PrinterLister) *Adapter {
	a := &Adapter{
		wifi:      wifi,
		bluetooth: bluetooth,
		printers:  printers,
		log:       logger.NewComponent("dispatch"),
	}

	a.handlers = map[string]handler{
		"wifiDiscover":         a.wifiDiscover,
		"wifiIsConnected":      a.wifiIsConnected,
		"wifiConnect":          a.wifiConnect,
		"wifiDisconnect":       a.wifiDisconnect,
		"wifiSend":             a.wifiSend,
		"wifiPrint":            a.wifiPrint,
		"wifiRead":             a.wifiRead,
		"bluetoothDiscover":    a.bluetoothDiscover,
		"bluetoothIsConnected": a.bluetoothIsConnected,
		"bluetoothConnect":     a.bluetoothConnect,
		"bluetoothDisconnect":  a.bluetoothDisconnect,
		"bluetoothSend":        a.bluetoothSend,
		"bluetoothInfo":        a.bluetoothInfo,
		"printers":             a.listPrinters,
	}

	return a
}

// Actions returns every supported action name in sorted order
func (a *Adapter) Actions() []string {
	actions := make([]string, 0, len(a.handlers))

	for name := range a.handlers {
		actions = append(actions, name)
	}

	sort.Strings(actions)

	return actions
}

// Call runs action with args and reports the outcome as a Result
func (a *Adapter) Call(ctx context.Context, action string, args []any) Result {
	h, ok := a.handlers[action]

	if !ok {
		return Result{
			Error: fmt.Sprintf("Unknown action: %s", action),
			Kind:  exception.KindInternalError,
		}
	}

	value, err := h(ctx, args)

	if err != nil {
		wrapped := exception.Wrap(err)

		a.log.Debug().Err(wrapped).Str("action", action).Msg("call failed")

		return Result{
			Error: wrapped.Error(),
			Kind:  exception.KindOf(wrapped),
		}
	}

	return Result{Success: true, Value: value}
}

func (a *Adapter) wifiDiscover(ctx context.Context, args []any) (any, error) {
	return a.wifi.Discover(ctx, numberArg(args, 0, DefaultTimeout)), nil
}

func (a *Adapter) wifiIsConnected(ctx context.Context, _ []any) (any, error) {
	return a.wifi.IsConnected(ctx), nil
}

func (a *Adapter) wifiConnect(ctx context.Context, args []any) (any, error) {
	address := stringArg(args, 0)

	if address == "" {
		return nil, exception.ErrAddressRequired
	}

	return nil, a.wifi.Connect(ctx, address, intArg(args, 1))
}

func (a *Adapter) wifiDisconnect(ctx context.Context, _ []any) (any, error) {
	return nil, a.wifi.Disconnect(ctx)
}

func (a *Adapter) wifiSend(ctx context.Context, args []any) (any, error) {
	return nil, a.wifi.Send(ctx, stringArg(args, 0))
}

func (a *Adapter) wifiPrint(ctx context.Context, args []any) (any, error) {
	return nil, a.wifi.Print(ctx, stringArg(args, 0))
}

func (a *Adapter) wifiRead(ctx context.Context, _ []any) (any, error) {
	data, err := a.wifi.Read(ctx)

	if err != nil {
		return nil, err
	}

	return data, nil
}

func (a *Adapter) bluetoothDiscover(ctx context.Context, args []any) (any, error) {
	return a.bluetooth.Discover(ctx, numberArg(args, 0, DefaultTimeout)), nil
}

func (a *Adapter) bluetoothIsConnected(context.Context, []any) (any, error) {
	return a.bluetooth.IsConnected(), nil
}

func (a *Adapter) bluetoothConnect(ctx context.Context, args []any) (any, error) {
	device := stringArg(args, 0)

	if device == "" {
		return nil, exception.ErrAddressRequired
	}

	return nil, a.bluetooth.Connect(ctx, device)
}

func (a *Adapter) bluetoothDisconnect(context.Context, []any) (any, error) {
	a.bluetooth.Disconnect()
	return nil, nil
}

func (a *Adapter) bluetoothSend(ctx context.Context, args []any) (any, error) {
	response, err := a.bluetooth.Send(ctx, stringArg(args, 0))

	if err != nil {
		return nil, err
	}

	return response, nil
}

func (a *Adapter) bluetoothInfo(ctx context.Context, _ []any) (any, error) {
	info, err := a.bluetooth.Info(ctx)

	if err != nil {
		return nil, err
	}

	return info, nil
}

func (a *Adapter) listPrinters(context.Context, []any) (any, error) {
	if a.printers == nil {
		return nil, exception.ErrInternalError
	}

	printers, err := a.printers.GetAll()

	if err != nil {
		return nil, err
	}

	views := []PrinterView{}

	for _, p := range printers {
		view := PrinterView{
			ID:        p.ID,
			Transport: string(p.Transport),
			Handle:    p.Handle,
			FirstSeen: p.FirstSeen,
			LastSeen:  p.LastSeen,
		}

		if len(p.Info) > 0 {
			if err := json.Unmarshal(p.Info, &view.Info); err != nil {
				a.log.Warn().Err(err).Str("printer", p.ID).Msg("ignoring unreadable device info")
			}
		}

		views = append(views, view)
	}

	return views, nil
}

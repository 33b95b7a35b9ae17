package core

import (
	"context"
	"sync"

	"github.com/robgonnella/zlink/internal/config"
	"github.com/robgonnella/zlink/internal/dispatch"
	"github.com/robgonnella/zlink/internal/event"
	"github.com/robgonnella/zlink/internal/logger"
	"github.com/robgonnella/zlink/internal/printer"
)

// Core represents our core data structure
type Core struct {
	ctx         context.Context
	cancel      context.CancelFunc
	conf        config.Config
	printers    printer.Service
	events      event.Manager
	dispatcher  *dispatch.Adapter
	closers     []func()
	listenerIDs []int
	logger      logger.Logger
	mux         sync.Mutex
	monitors    sync.WaitGroup
	stopOnce    sync.Once
}

// New returns new core module wiring the given sessions to the printer
// registry. closers run once on Stop, in order.
func New(
	conf config.Config,
	wifi dispatch.WifiSession,
	bluetooth dispatch.BluetoothSession,
	printers printer.Service,
	events event.Manager,
	closers ...func(),
) *Core {
	ctx, cancel := context.WithCancel(context.Background())

	return &Core{
		ctx:         ctx,
		cancel:      cancel,
		conf:        conf,
		printers:    printers,
		events:      events,
		dispatcher:  dispatch.New(wifi, bluetooth, printers),
		closers:     closers,
		listenerIDs: []int{},
		logger:      logger.NewComponent("core"),
	}
}

// Conf returns the configuration core was created with
func (c *Core) Conf() config.Config {
	return c.conf
}

// Events returns the event manager sessions publish to
func (c *Core) Events() event.Manager {
	return c.events
}

// Actions returns every action accepted by Call
func (c *Core) Actions() []string {
	return c.dispatcher.Actions()
}

// Call runs a named session action
func (c *Core) Call(ctx context.Context, action string, args []any) dispatch.Result {
	return c.dispatcher.Call(ctx, action, args)
}

// GetPrinters returns every printer recorded by discovery
func (c *Core) GetPrinters() ([]*printer.Printer, error) {
	return c.printers.GetAll()
}

// RemovePrinter forgets a recorded printer
func (c *Core) RemovePrinter(id string) error {
	return c.printers.Remove(id)
}

// StartDaemon subscribes to session events and records them in the
// printer registry until Stop is called
func (c *Core) StartDaemon() {
	discoveries, infos := c.subscribe()

	c.monitors.Add(1)

	go func() {
		defer c.monitors.Done()
		c.monitor(discoveries, infos)
	}()
}

// Stop records events already queued, unsubscribes and closes both
// sessions
func (c *Core) Stop() error {
	c.stopOnce.Do(func() {
		c.cancel()
		c.monitors.Wait()

		c.mux.Lock()
		for _, id := range c.listenerIDs {
			c.events.RemoveListener(id)
		}
		c.listenerIDs = []int{}
		c.mux.Unlock()

		for _, closer := range c.closers {
			closer()
		}
	})

	return c.ctx.Err()
}

package core

import (
	"github.com/robgonnella/zlink/internal/event"
	"github.com/robgonnella/zlink/internal/printer"
)

func (c *Core) subscribe() (chan event.Event, chan event.Event) {
	discoveries := make(chan event.Event, 100)
	infos := make(chan event.Event, 100)

	c.mux.Lock()
	defer c.mux.Unlock()

	c.listenerIDs = append(
		c.listenerIDs,
		c.events.RegisterListener(event.DiscoveryEventType, discoveries),
		c.events.RegisterListener(event.InfoEventType, infos),
	)

	return discoveries, infos
}

func (c *Core) monitor(discoveries, infos chan event.Event) {
	for {
		select {
		case <-c.ctx.Done():
			c.drain(discoveries, infos)
			return
		case evt := <-discoveries:
			c.handleDiscovery(evt)
		case evt := <-infos:
			c.handleInfo(evt)
		}
	}
}

// drain handles events queued before Stop
func (c *Core) drain(discoveries, infos chan event.Event) {
	for {
		select {
		case evt := <-discoveries:
			c.handleDiscovery(evt)
		case evt := <-infos:
			c.handleInfo(evt)
		default:
			return
		}
	}
}

func (c *Core) handleDiscovery(evt event.Event) {
	payload, ok := evt.Payload.(event.DiscoveryPayload)

	if !ok {
		return
	}

	c.logger.Debug().
		Str("transport", payload.Transport).
		Strs("handles", payload.Handles).
		Msg("Event Received")

	err := c.printers.RecordDiscovery(
		printer.Transport(payload.Transport),
		payload.Handles,
	)

	if err != nil {
		c.events.ReportError(err)
	}
}

func (c *Core) handleInfo(evt event.Event) {
	payload, ok := evt.Payload.(event.InfoPayload)

	if !ok {
		return
	}

	c.logger.Debug().
		Str("transport", payload.Transport).
		Str("handle", payload.Handle).
		Msg("Event Received")

	err := c.printers.SetInfo(
		printer.Transport(payload.Transport),
		payload.Handle,
		payload.Info,
	)

	if err != nil {
		c.events.ReportError(err)
	}
}

package event

import (
	"sync"

	"github.com/robgonnella/zlink/internal/logger"
)

type registration struct {
	eventType EventType
	channel   chan Event
}

// EventManager implements the Manager interface
type EventManager struct {
	mux       sync.RWMutex
	nextID    int
	listeners map[int]registration
	log       logger.Logger
}

// NewEventManager returns a new instance of EventManager
func NewEventManager() *EventManager {
	return &EventManager{
		listeners: map[int]registration{},
		log:       logger.NewComponent("event"),
	}
}

// RegisterListener registers listener for events of eventType and returns
// an id that can be used to remove it
func (m *EventManager) RegisterListener(eventType EventType, listener chan Event) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	m.nextID++
	m.listeners[m.nextID] = registration{eventType: eventType, channel: listener}

	return m.nextID
}

// RemoveListener removes the listener registered under id
func (m *EventManager) RemoveListener(id int) int {
	m.mux.Lock()
	defer m.mux.Unlock()

	delete(m.listeners, id)

	return id
}

// Send delivers event to every matching listener without blocking the
// sender. Listeners with buffer space receive it before Send returns.
func (m *EventManager) Send(event Event) {
	m.mux.RLock()
	defer m.mux.RUnlock()

	for _, l := range m.listeners {
		if l.eventType != event.Type {
			continue
		}

		select {
		case l.channel <- event:
		default:
			go func(ch chan Event) {
				ch <- event
			}(l.channel)
		}
	}
}

// ReportFatalError sends a FatalErrorEventType event
func (m *EventManager) ReportFatalError(err error) {
	m.log.Error().Err(err).Msg("fatal error")
	m.Send(Event{Type: FatalErrorEventType, Payload: err})
}

// ReportError sends an ErrorEventType event
func (m *EventManager) ReportError(err error) {
	m.log.Error().Err(err).Msg("error")
	m.Send(Event{Type: ErrorEventType, Payload: err})
}

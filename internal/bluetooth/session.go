package bluetooth

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/robgonnella/zlink/internal/ble"
	"github.com/robgonnella/zlink/internal/event"
	"github.com/robgonnella/zlink/internal/exception"
	"github.com/robgonnella/zlink/internal/logger"
	"github.com/robgonnella/zlink/internal/worker"
)

// TransportName identifies this session in events and the registry
const TransportName = "bluetooth"

// Default completion timeouts
const (
	DefaultConnectTimeout = 15 * time.Second
	DefaultSendTimeout    = 10 * time.Second
)

// Config tunes a Session
type Config struct {
	Filter         ble.RSSIFilter
	ConnectTimeout time.Duration
	SendTimeout    time.Duration
}

// DefaultConfig returns the permissive filter and default timeouts
func DefaultConfig() Config {
	return Config{
		Filter:         ble.DefaultRSSIFilter(),
		ConnectTimeout: DefaultConnectTimeout,
		SendTimeout:    DefaultSendTimeout,
	}
}

type result struct {
	value []byte
	err   error
}

// pending is one in-flight asynchronous request
type pending struct {
	id   string
	done chan result
}

func newPending() *pending {
	return &pending{id: uuid.New().String(), done: make(chan result, 1)}
}

// Session manages at most one BLE printer. Requests run one at a time on
// the session worker. Platform callbacks are applied by an event pump
// under the same lock the worker jobs take.
type Session struct {
	central    ble.Central
	conf       Config
	events     event.Manager
	worker     *worker.Worker
	log        logger.Logger
	mux        sync.Mutex
	table      *ble.DiscoveryTable
	scanning   bool
	negotiator *ble.Negotiator
	connecting *pending
	sending    *pending
	stop       chan struct{}
	stopped    chan struct{}
	once       sync.Once
}

// New returns a session driving central and starts its worker and event
// pump. events may be nil.
func New(central ble.Central, conf Config, events event.Manager) *Session {
	s := &Session{
		central:    central,
		conf:       conf,
		events:     events,
		worker:     worker.New("bluetooth", 32),
		log:        logger.NewComponent("bluetooth"),
		table:      ble.NewDiscoveryTable(),
		negotiator: ble.NewNegotiator(central),
		stop:       make(chan struct{}),
		stopped:    make(chan struct{}),
	}

	go s.pump()

	return s
}

// Close drops any link and stops the worker and event pump
func (s *Session) Close() {
	s.once.Do(func() {
		s.Disconnect()
		s.worker.Stop()
		close(s.stop)
		<-s.stopped
	})
}

// Discover scans for the given number of seconds and returns the names
// advertised during that window. It never fails, problems yield an empty
// list.
func (s *Session) Discover(ctx context.Context, seconds float64) []string {
	duration := time.Duration(seconds * float64(time.Second))
	out := make(chan []string, 1)

	err := s.worker.Do(ctx, func() error {
		s.mux.Lock()
		s.table.Reset()
		s.scanning = true
		err := s.central.Scan(true)
		if err != nil {
			s.scanning = false
		}
		s.mux.Unlock()

		if err != nil {
			return err
		}

		timer := time.NewTimer(duration)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
		}

		s.mux.Lock()
		defer s.mux.Unlock()

		if s.scanning {
			s.stopScan()
		}

		out <- s.table.Names()

		return nil
	})

	if err != nil {
		s.log.Error().Err(err).Msg("bluetooth discovery failed")
		return []string{}
	}

	names := <-out

	s.log.Info().Strs("printers", names).Msg("bluetooth discovery complete")

	s.publish(event.Event{
		Type:    event.DiscoveryEventType,
		Payload: event.DiscoveryPayload{Transport: TransportName, Handles: names},
	})

	return names
}

// IsConnected reports whether a printer is negotiated and writable
func (s *Session) IsConnected() bool {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.isConnected()
}

// Connect tears down any current link and negotiates with the printer
// advertised under name during the last scan. It returns once the printer
// is ready, negotiation fails or the connect timeout elapses.
func (s *Session) Connect(ctx context.Context, name string) error {
	if name == "" {
		return exception.ErrAddressRequired
	}

	start := make(chan *pending, 1)

	err := s.worker.Do(ctx, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.mux.Lock()
		defer s.mux.Unlock()

		if s.scanning {
			s.stopScan()
		}

		if s.connecting != nil {
			return exception.ErrBusy
		}

		s.teardown(exception.ErrDisconnected)

		p, ok := s.table.Lookup(name)

		if !ok {
			return exception.ErrPrinterNotFound
		}

		req := newPending()
		s.connecting = req

		s.log.Debug().Str("request", req.id).Str("name", name).Msg("connect requested")

		if err := s.negotiator.Begin(p); err != nil {
			s.connecting = nil
			return err
		}

		start <- req

		return nil
	})

	if err != nil {
		return s.translate(err)
	}

	req := <-start

	_, err = s.await(ctx, req, s.conf.ConnectTimeout, &s.connecting, func() {
		s.negotiator.Release()
	})

	if err != nil {
		return err
	}

	p, _ := s.peripheral()

	s.publish(event.Event{
		Type:    event.ConnectedEventType,
		Payload: event.LinkPayload{Transport: TransportName, Handle: p.Name, Requested: true},
	})

	return nil
}

// Disconnect stops scanning and cancels the current link. It completes
// immediately and never fails.
func (s *Session) Disconnect() {
	s.mux.Lock()

	if s.scanning {
		s.stopScan()
	}

	p, had := s.negotiator.Peripheral()

	s.teardown(exception.ErrDisconnected)

	s.mux.Unlock()

	if had {
		s.publish(event.Event{
			Type:    event.DisconnectedEventType,
			Payload: event.LinkPayload{Transport: TransportName, Handle: p.Name, Requested: true},
		})
	}
}

// Send writes zpl to the printer and returns the UTF-8 response carried by
// the write completion, if any
func (s *Session) Send(ctx context.Context, zpl string) (string, error) {
	start := make(chan *pending, 1)

	err := s.worker.Do(ctx, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		s.mux.Lock()
		defer s.mux.Unlock()

		p, ok := s.negotiator.Peripheral()

		if !ok {
			return exception.ErrPrinterNotFound
		}

		if !s.isConnected() {
			return exception.ErrDisconnected
		}

		if !utf8.ValidString(zpl) {
			return exception.ErrFailedToReadZPL
		}

		char, ok := s.negotiator.WriteCharacteristic()

		if !ok {
			return exception.ErrInternalError
		}

		if s.sending != nil {
			return exception.ErrBusy
		}

		req := newPending()
		s.sending = req

		s.log.Debug().Str("request", req.id).Int("bytes", len(zpl)).Msg("write requested")

		if err := s.central.Write(p, char, []byte(zpl)); err != nil {
			s.sending = nil
			return err
		}

		start <- req

		return nil
	})

	if err != nil {
		return "", s.translate(err)
	}

	req := <-start

	value, err := s.await(ctx, req, s.conf.SendTimeout, &s.sending, nil)

	if err != nil {
		return "", err
	}

	if !utf8.Valid(value) {
		return "", nil
	}

	return string(value), nil
}

// Info reads the standard device information characteristics of the
// connected printer. Unreadable fields are left out.
func (s *Session) Info(ctx context.Context) (map[string]string, error) {
	out := make(chan map[string]string, 1)

	err := s.worker.Do(ctx, func() error {
		s.mux.Lock()
		p, ok := s.negotiator.Peripheral()
		connected := s.isConnected()
		chars := s.negotiator.InfoCharacteristics()
		s.mux.Unlock()

		if !ok {
			return exception.ErrPrinterNotFound
		}

		if !connected {
			return exception.ErrDisconnected
		}

		info := map[string]string{}

		for _, c := range chars {
			name, _ := ble.InfoFieldName(c.UUID)

			value, err := s.central.Read(p, c)

			if err != nil {
				s.log.Debug().Err(err).Str("field", name).Msg("failed to read device info")
				continue
			}

			if utf8.Valid(value) {
				info[name] = string(value)
			}
		}

		out <- info

		return nil
	})

	if err != nil {
		return nil, s.translate(err)
	}

	info := <-out

	p, _ := s.peripheral()

	s.publish(event.Event{
		Type:    event.InfoEventType,
		Payload: event.InfoPayload{Transport: TransportName, Handle: p.Name, Info: info},
	})

	return info, nil
}

func (s *Session) pump() {
	defer close(s.stopped)

	for {
		select {
		case <-s.stop:
			return
		case evt, ok := <-s.central.Events():
			if !ok {
				return
			}
			s.handle(evt)
		}
	}
}

func (s *Session) handle(evt ble.Event) {
	s.mux.Lock()
	defer s.mux.Unlock()

	switch evt.Type {
	case ble.EventAdvertisement:
		if s.scanning && s.conf.Filter.Accept(evt.Peripheral.RSSI) {
			s.table.Add(evt.Peripheral)
		}
	case ble.EventDisconnected:
		s.linkLost(evt.Peripheral)
	case ble.EventWriteComplete:
		s.writeComplete(evt)
	default:
		done, err := s.negotiator.Handle(evt)

		if done {
			s.resolve(&s.connecting, result{err: err})
		}
	}
}

func (s *Session) linkLost(p ble.Peripheral) {
	if !s.negotiator.Owns(p) {
		s.log.Debug().
			Str("peripheral", p.ID).
			Uint64("attempt", p.Attempt).
			Msg("ignoring disconnect from earlier link")
		return
	}

	current, _ := s.negotiator.Peripheral()

	s.log.Warn().Str("peripheral", current.ID).Msg("printer link lost")

	s.negotiator.Reset()
	s.fail(exception.ErrDisconnected)

	s.publish(event.Event{
		Type:    event.DisconnectedEventType,
		Payload: event.LinkPayload{Transport: TransportName, Handle: current.Name},
	})
}

func (s *Session) writeComplete(evt ble.Event) {
	if !s.negotiator.Owns(evt.Peripheral) {
		return
	}

	if evt.Err != nil {
		s.resolve(&s.sending, result{err: exception.Wrap(evt.Err)})
		return
	}

	s.resolve(&s.sending, result{value: evt.Value})
}

// await blocks until req resolves, timeout elapses or ctx ends. On timeout
// the slot is cleared and abandon runs, both under the session lock.
func (s *Session) await(
	ctx context.Context,
	req *pending,
	timeout time.Duration,
	slot **pending,
	abandon func(),
) ([]byte, error) {
	var expired <-chan time.Time

	if timeout > 0 {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case r := <-req.done:
		return r.value, r.err
	case <-expired:
	case <-ctx.Done():
	}

	s.mux.Lock()
	defer s.mux.Unlock()

	if *slot != req {
		// resolved while we were giving up
		r := <-req.done
		return r.value, r.err
	}

	*slot = nil

	if abandon != nil {
		abandon()
	}

	s.log.Warn().Str("request", req.id).Msg("request timed out")

	return nil, exception.ErrTimeout
}

func (s *Session) resolve(slot **pending, r result) {
	req := *slot

	if req == nil {
		return
	}

	*slot = nil
	req.done <- r
}

func (s *Session) fail(err error) {
	s.resolve(&s.connecting, result{err: err})
	s.resolve(&s.sending, result{err: err})
}

// teardown releases the current link and fails in-flight requests with
// err. Caller holds the lock.
func (s *Session) teardown(err error) {
	s.negotiator.Release()
	s.fail(err)
}

func (s *Session) stopScan() {
	s.scanning = false

	if err := s.central.StopScan(); err != nil {
		s.log.Debug().Err(err).Msg("failed to stop scan")
	}
}

func (s *Session) isConnected() bool {
	_, ok := s.negotiator.WriteCharacteristic()
	_, has := s.negotiator.Peripheral()
	return ok && has
}

func (s *Session) peripheral() (ble.Peripheral, bool) {
	s.mux.Lock()
	defer s.mux.Unlock()
	return s.negotiator.Peripheral()
}

func (s *Session) translate(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return exception.ErrTimeout
	}

	return exception.Wrap(err)
}

func (s *Session) publish(evt event.Event) {
	if s.events == nil {
		return
	}

	s.events.Send(evt)
}

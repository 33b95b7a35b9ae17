package wifi

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/robgonnella/zlink/internal/discovery"
	"github.com/robgonnella/zlink/internal/event"
	"github.com/robgonnella/zlink/internal/exception"
	"github.com/robgonnella/zlink/internal/logger"
	"github.com/robgonnella/zlink/internal/transport"
	"github.com/robgonnella/zlink/internal/worker"
	"github.com/robgonnella/zlink/internal/zpl"
)

// TransportName identifies this session in events and the registry
const TransportName = "wifi"

//go:generate mockgen -destination=../mock/wifi/mock_wifi.go -package=mock_wifi . Stack

// Stack is the printer protocol bound to one open connection
type Stack interface {
	CurrentStatus() (zpl.Status, error)
	SendCommand(cmd string) error
}

// StackFactory builds a Stack on an open connection. It fails when the
// printer cannot be identified.
type StackFactory func(conn transport.Connection) (Stack, error)

// NewZPLStack is the StackFactory backed by the zpl package
func NewZPLStack(conn transport.Connection) (Stack, error) {
	printer, err := zpl.NewPrinter(conn)

	if err != nil {
		return nil, err
	}

	return printer, nil
}

// Session manages at most one TCP printer connection. Every operation
// runs on the session worker so connection state is only ever touched by
// one goroutine.
type Session struct {
	scanner  discovery.Scanner
	dial     transport.Dialer
	newStack StackFactory
	port     int
	events   event.Manager
	worker   *worker.Worker
	log      logger.Logger
	conn     transport.Connection
	stack    Stack
	handle   string
}

// New returns a session using scanner for discovery and dial to open
// connections on port unless a call overrides it. events may be nil.
func New(
	scanner discovery.Scanner,
	dial transport.Dialer,
	newStack StackFactory,
	port int,
	events event.Manager,
) *Session {
	if port <= 0 {
		port = discovery.DefaultPrinterPort
	}

	return &Session{
		scanner:  scanner,
		dial:     dial,
		newStack: newStack,
		port:     port,
		events:   events,
		worker:   worker.New("wifi", 32),
		log:      logger.NewComponent("wifi"),
	}
}

// Close drops any connection and stops the worker
func (s *Session) Close() {
	_ = s.Disconnect(context.Background())
	s.worker.Stop()
}

// Discover searches the network for the given number of seconds and
// returns responding addresses. It never fails, problems yield an empty
// list.
func (s *Session) Discover(ctx context.Context, seconds float64) []string {
	timeout := time.Duration(seconds * float64(time.Second))
	out := make(chan []string, 1)

	err := s.run(ctx, func() error {
		addresses, err := s.scanner.Scan(ctx, timeout)

		if err != nil {
			return err
		}

		if addresses == nil {
			addresses = []string{}
		}

		out <- addresses

		return nil
	})

	if err != nil {
		s.log.Error().Err(err).Msg("wifi discovery failed")
		return []string{}
	}

	addresses := <-out

	s.log.Info().Strs("printers", addresses).Msg("wifi discovery complete")

	s.publish(event.Event{
		Type:    event.DiscoveryEventType,
		Payload: event.DiscoveryPayload{Transport: TransportName, Handles: addresses},
	})

	return addresses
}

// IsConnected reports whether the current connection is open
func (s *Session) IsConnected(ctx context.Context) bool {
	out := make(chan bool, 1)

	err := s.run(ctx, func() error {
		out <- s.connected()
		return nil
	})

	return err == nil && <-out
}

// Connect tears down any current connection, opens a new one to address
// and initializes the printer stack on it. port overrides the session
// default when non-nil and positive.
func (s *Session) Connect(ctx context.Context, address string, port *int) error {
	if address == "" {
		return exception.ErrAddressRequired
	}

	err := s.run(ctx, func() error {
		s.teardown()

		p := s.port

		if port != nil && *port > 0 {
			p = *port
		}

		conn := s.dial(address, p)
		s.conn = conn
		s.handle = address

		if err := conn.Open(); err != nil {
			s.log.Debug().Err(err).Str("address", address).Int("port", p).Msg("failed to open connection")
		}

		// the caller stopped waiting while the socket opened
		if err := ctx.Err(); err != nil {
			s.teardown()
			return err
		}

		if !conn.IsConnected() {
			return exception.ErrDisconnected
		}

		stack, err := s.newStack(conn)

		if err != nil {
			s.log.Error().Err(err).Str("address", address).Msg("printer failed to initialize")
			return exception.ErrInitializationFailed
		}

		if err := ctx.Err(); err != nil {
			s.teardown()
			return err
		}

		s.stack = stack

		return nil
	})

	if err != nil {
		return err
	}

	s.publish(event.Event{
		Type:    event.ConnectedEventType,
		Payload: event.LinkPayload{Transport: TransportName, Handle: address, Requested: true},
	})

	return nil
}

// Disconnect closes the current connection. It never fails.
func (s *Session) Disconnect(ctx context.Context) error {
	handle := ""

	err := s.run(ctx, func() error {
		if s.conn != nil {
			handle = s.handle
		}
		s.teardown()
		return nil
	})

	if err != nil {
		s.log.Debug().Err(err).Msg("disconnect did not run")
		return nil
	}

	if handle != "" {
		s.publish(event.Event{
			Type:    event.DisconnectedEventType,
			Payload: event.LinkPayload{Transport: TransportName, Handle: handle, Requested: true},
		})
	}

	return nil
}

// Send checks the printer status and sends command only when it is ready
func (s *Session) Send(ctx context.Context, command string) error {
	return s.run(ctx, func() error {
		if !s.connected() {
			return exception.ErrDisconnected
		}

		if s.stack == nil {
			return exception.ErrInternalError
		}

		status, err := s.stack.CurrentStatus()

		if err != nil {
			return err
		}

		if !status.IsReadyToPrint() {
			s.log.Warn().Interface("status", status).Msg("printer not ready")
			return exception.ErrNotReadyToPrint
		}

		return s.stack.SendCommand(command)
	})
}

// Print writes command to the connection without any status check
func (s *Session) Print(ctx context.Context, command string) error {
	return s.run(ctx, func() error {
		if !s.connected() {
			return exception.ErrDisconnected
		}

		return s.conn.Write([]byte(command))
	})
}

// Read performs one read and returns the data as UTF-8. Data that is not
// valid UTF-8 is returned as an empty string.
func (s *Session) Read(ctx context.Context) (string, error) {
	out := make(chan string, 1)

	err := s.run(ctx, func() error {
		if !s.connected() {
			return exception.ErrDisconnected
		}

		data, err := s.conn.Read()

		if err != nil {
			return err
		}

		if !utf8.Valid(data) {
			out <- ""
			return nil
		}

		out <- string(data)

		return nil
	})

	if err != nil {
		return "", err
	}

	return <-out, nil
}

// run executes job on the worker and maps every failure to a PrinterError.
// A job that reaches the worker after ctx ended is skipped.
func (s *Session) run(ctx context.Context, job func() error) error {
	err := s.worker.Do(ctx, func() error {
		if err := ctx.Err(); err != nil {
			return err
		}

		return job()
	})

	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return exception.ErrTimeout
	}

	return exception.Wrap(err)
}

func (s *Session) teardown() {
	s.stack = nil

	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			s.log.Debug().Err(err).Msg("failed to close connection")
		}
	}

	s.conn = nil
	s.handle = ""
}

func (s *Session) connected() bool {
	return s.conn != nil && s.conn.IsConnected()
}

func (s *Session) publish(evt event.Event) {
	if s.events == nil {
		return
	}

	s.events.Send(evt)
}

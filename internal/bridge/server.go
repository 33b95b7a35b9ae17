package bridge

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/robgonnella/zlink/internal/dispatch"
	"github.com/robgonnella/zlink/internal/event"
	"github.com/robgonnella/zlink/internal/logger"
)

const (
	writeTimeout    = 5 * time.Second
	pingInterval    = 20 * time.Second
	pongWait        = 60 * time.Second
	shutdownTimeout = 5 * time.Second
)

// event types forwarded to every connected client
var streamed = []event.EventType{
	event.DiscoveryEventType,
	event.ConnectedEventType,
	event.DisconnectedEventType,
	event.InfoEventType,
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(_ *http.Request) bool { return true },
}

// Dispatcher runs a named call
type Dispatcher interface {
	Call(ctx context.Context, action string, args []any) dispatch.Result
}

// Request is one call sent by a client
type Request struct {
	ID     string `json:"id"`
	Action string `json:"action"`
	Args   []any  `json:"args"`
}

// Response answers the Request with the same ID
type Response struct {
	ID string `json:"id"`
	dispatch.Result
}

// Notification carries a session event to clients
type Notification struct {
	Event   event.EventType `json:"event"`
	Payload any             `json:"payload"`
}

// Server exposes a Dispatcher over websocket
type Server struct {
	listen     string
	dispatcher Dispatcher
	events     event.Manager
	log        logger.Logger

	// clients silent for longer than pongWait are dropped. pingInterval
	// must stay below it.
	pingInterval time.Duration
	pongWait     time.Duration
}

// NewServer returns a server for dispatcher. events may be nil, in which
// case no notifications are streamed.
func NewServer(listen string, dispatcher Dispatcher, events event.Manager) *Server {
	return &Server{
		listen:       listen,
		dispatcher:   dispatcher,
		events:       events,
		log:          logger.NewComponent("bridge"),
		pingInterval: pingInterval,
		pongWait:     pongWait,
	}
}

// Handler returns the http routes served by the bridge
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWS)
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return mux
}

// ListenAndServe serves until ctx is done. A listener failure is reported
// as a fatal error event before it is returned.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.listen,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errs := make(chan error, 1)

	go func() {
		s.log.Info().Str("listen", s.listen).Msg("bridge listening")
		errs <- srv.ListenAndServe()
	}()

	select {
	case err := <-errs:
		if s.events != nil {
			s.events.ReportFatalError(err)
		} else {
			s.log.Error().Err(err).Str("listen", s.listen).Msg("bridge listener failed")
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

// client serializes writes to one websocket connection
type client struct {
	conn *websocket.Conn
	mux  sync.Mutex
}

func (c *client) write(v any) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}

	return c.conn.WriteJSON(v)
}

func (c *client) ping() error {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.conn.WriteControl(
		websocket.PingMessage,
		nil,
		time.Now().Add(writeTimeout),
	)
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)

	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	defer conn.Close()

	calls := sync.WaitGroup{}
	defer calls.Wait()

	// cancel in-flight calls before waiting on them
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	c := &client{conn: conn}

	// pongs and requests both prove the client is still there
	alive := func() error {
		return conn.SetReadDeadline(time.Now().Add(s.pongWait))
	}

	if err := alive(); err != nil {
		s.log.Debug().Err(err).Msg("failed to set read deadline")
		return
	}

	conn.SetPongHandler(func(string) error {
		return alive()
	})

	go s.stream(ctx, c)

	for {
		var req Request

		if err := conn.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.log.Debug().Err(err).Msg("websocket read ended")
			}
			return
		}

		if err := alive(); err != nil {
			return
		}

		calls.Add(1)

		go func(req Request) {
			defer calls.Done()

			s.log.Debug().Str("id", req.ID).Str("action", req.Action).Msg("call received")

			result := s.dispatcher.Call(ctx, req.Action, req.Args)

			if err := c.write(Response{ID: req.ID, Result: result}); err != nil {
				s.log.Debug().Err(err).Str("id", req.ID).Msg("failed to write response")
			}
		}(req)
	}
}

// stream forwards session events and keeps the connection alive until ctx
// is done
func (s *Server) stream(ctx context.Context, c *client) {
	var listener chan event.Event

	if s.events != nil {
		listener = make(chan event.Event, 16)

		ids := []int{}

		for _, t := range streamed {
			ids = append(ids, s.events.RegisterListener(t, listener))
		}

		defer func() {
			for _, id := range ids {
				s.events.RemoveListener(id)
			}
		}()
	}

	ping := time.NewTicker(s.pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case evt := <-listener:
			if err := c.write(Notification{Event: evt.Type, Payload: evt.Payload}); err != nil {
				s.log.Debug().Err(err).Msg("failed to write notification")
				return
			}
		case <-ping.C:
			if err := c.ping(); err != nil {
				return
			}
		}
	}
}

package bridge

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/robgonnella/zlink/internal/dispatch"
	"github.com/stretchr/testify/assert"
)

type staticDispatcher struct{}

func (staticDispatcher) Call(context.Context, string, []any) dispatch.Result {
	return dispatch.Result{Success: true}
}

func dialServer(st *testing.T, s *Server) (*websocket.Conn, func()) {
	srv := httptest.NewServer(s.Handler())

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)

	if err != nil {
		srv.Close()
		st.Fatalf("failed to dial bridge: %s", err)
	}

	return conn, func() {
		conn.Close()
		srv.Close()
	}
}

func TestKeepAlive(t *testing.T) {
	t.Run("drops clients that go silent", func(st *testing.T) {
		s := NewServer("", staticDispatcher{}, nil)
		s.pingInterval = time.Hour
		s.pongWait = 50 * time.Millisecond

		conn, done := dialServer(st, s)
		defer done()

		assert.NoError(st, conn.SetReadDeadline(time.Now().Add(time.Second)))

		_, _, err := conn.ReadMessage()

		// the server hangs up without a close frame, well before our own
		// read deadline
		assert.True(st, websocket.IsCloseError(err, websocket.CloseAbnormalClosure))
	})

	t.Run("keeps clients that answer pings", func(st *testing.T) {
		s := NewServer("", staticDispatcher{}, nil)
		s.pingInterval = 20 * time.Millisecond
		s.pongWait = 100 * time.Millisecond

		conn, done := dialServer(st, s)
		defer done()

		msgs := make(chan []byte, 1)

		// reading lets the default ping handler answer with pongs
		go func() {
			defer close(msgs)
			for {
				_, data, err := conn.ReadMessage()
				if err != nil {
					return
				}
				msgs <- data
			}
		}()

		time.Sleep(300 * time.Millisecond)

		assert.NoError(st, conn.WriteJSON(Request{ID: "1", Action: "wifiIsConnected"}))

		select {
		case data, ok := <-msgs:
			assert.True(st, ok)
			assert.Contains(st, string(data), `"id":"1"`)
		case <-time.After(time.Second):
			st.Fatal("timed out waiting for response")
		}
	})
}

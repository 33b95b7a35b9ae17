package transport_test

import (
	"io"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/robgonnella/zlink/internal/transport"
	"github.com/stretchr/testify/assert"
)

func listen(t *testing.T) (net.Listener, string, int) {
	l, err := net.Listen("tcp", "127.0.0.1:0")

	if err != nil {
		t.Logf("failed to listen: %s", err.Error())
		t.FailNow()
	}

	host, portStr, _ := net.SplitHostPort(l.Addr().String())
	port, _ := strconv.Atoi(portStr)

	return l, host, port
}

func TestTCPConnection(t *testing.T) {
	t.Run("opens writes reads and closes", func(st *testing.T) {
		l, host, port := listen(st)
		defer l.Close()

		received := make(chan []byte, 1)

		go func() {
			peer, err := l.Accept()
			if err != nil {
				return
			}
			defer peer.Close()

			buf := make([]byte, 5)
			_, _ = io.ReadFull(peer, buf)
			received <- buf

			_, _ = peer.Write([]byte("pong"))
			time.Sleep(time.Millisecond * 50)
		}()

		conn := transport.NewTCPConnection(
			host,
			port,
			transport.WithReadTimeout(time.Second),
			transport.WithWaitForMoreData(time.Millisecond*20),
		)

		assert.False(st, conn.IsConnected())
		assert.NoError(st, conn.Open())
		assert.True(st, conn.IsConnected())

		assert.NoError(st, conn.Write([]byte("~HS\r\n")))
		assert.Equal(st, []byte("~HS\r\n"), <-received)

		data, err := conn.Read()

		assert.NoError(st, err)
		assert.Equal(st, "pong", string(data))

		assert.NoError(st, conn.Close())
		assert.False(st, conn.IsConnected())
		assert.NoError(st, conn.Close())
	})

	t.Run("returns empty data when printer stays silent", func(st *testing.T) {
		l, host, port := listen(st)
		defer l.Close()

		go func() {
			peer, err := l.Accept()
			if err == nil {
				time.Sleep(time.Millisecond * 100)
				peer.Close()
			}
		}()

		conn := transport.NewTCPConnection(
			host,
			port,
			transport.WithReadTimeout(time.Millisecond*20),
		)

		assert.NoError(st, conn.Open())
		defer conn.Close()

		data, err := conn.Read()

		assert.NoError(st, err)
		assert.Empty(st, data)
	})

	t.Run("fails to open unreachable host", func(st *testing.T) {
		l, host, port := listen(st)
		l.Close()

		conn := transport.NewTCPConnection(
			host,
			port,
			transport.WithDialTimeout(time.Millisecond*200),
		)

		assert.Error(st, conn.Open())
		assert.False(st, conn.IsConnected())
	})

	t.Run("rejects io on closed connection", func(st *testing.T) {
		conn := transport.NewTCPConnection("127.0.0.1", 1)

		assert.ErrorIs(st, conn.Write([]byte("x")), transport.ErrNotOpen)

		_, err := conn.Read()

		assert.ErrorIs(st, err, transport.ErrNotOpen)
	})
}

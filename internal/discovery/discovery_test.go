package discovery_test

import (
	"bytes"
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/robgonnella/zlink/internal/discovery"
	"github.com/stretchr/testify/assert"
)

func TestBroadcastScanner(t *testing.T) {
	t.Run("collects each responding address once", func(st *testing.T) {
		responder, err := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})

		if err != nil {
			st.Logf("failed to listen: %s", err.Error())
			st.FailNow()
		}

		defer responder.Close()

		probes := make(chan []byte, 1)

		go func() {
			buf := make([]byte, 64)
			n, from, err := responder.ReadFromUDP(buf)
			if err != nil {
				return
			}
			probes <- append([]byte{}, buf[:n]...)
			// a printer answering twice must only be reported once
			_, _ = responder.WriteToUDP([]byte("printer"), from)
			_, _ = responder.WriteToUDP([]byte("printer"), from)
		}()

		scanner := discovery.NewBroadcastScanner(0).
			WithTarget(responder.LocalAddr().(*net.UDPAddr))

		start := time.Now()

		addresses, err := scanner.Scan(context.Background(), time.Millisecond*200)

		assert.NoError(st, err)
		assert.Equal(st, []string{"127.0.0.1"}, addresses)
		assert.GreaterOrEqual(st, time.Since(start), time.Millisecond*200)

		probe := <-probes

		assert.True(st, bytes.Equal([]byte{0x2e, 0x2c, 0x3a, 0x01, 0x00, 0x00}, probe))
	})

	t.Run("returns nothing when nobody answers", func(st *testing.T) {
		silent, _ := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
		defer silent.Close()

		scanner := discovery.NewBroadcastScanner(0).
			WithTarget(silent.LocalAddr().(*net.UDPAddr))

		addresses, err := scanner.Scan(context.Background(), time.Millisecond*50)

		assert.NoError(st, err)
		assert.Empty(st, addresses)
	})

	t.Run("stops early when context is canceled", func(st *testing.T) {
		silent, _ := net.ListenUDP("udp4", &net.UDPAddr{IP: net.IPv4(127, 0, 0, 1)})
		defer silent.Close()

		scanner := discovery.NewBroadcastScanner(0).
			WithTarget(silent.LocalAddr().(*net.UDPAddr))

		ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*20)
		defer cancel()

		start := time.Now()

		_, err := scanner.Scan(ctx, time.Second*5)

		assert.NoError(st, err)
		assert.Less(st, time.Since(start), time.Second*5)
	})
}

func TestNetScanner(t *testing.T) {
	t.Run("finds targets with an open printer port", func(st *testing.T) {
		l, err := net.Listen("tcp", "127.0.0.1:0")

		if err != nil {
			st.Logf("failed to listen: %s", err.Error())
			st.FailNow()
		}

		defer l.Close()

		go func() {
			for {
				conn, err := l.Accept()
				if err != nil {
					return
				}
				conn.Close()
			}
		}()

		_, portStr, _ := net.SplitHostPort(l.Addr().String())
		port, _ := strconv.Atoi(portStr)

		scanner, err := discovery.NewNetScanner([]string{"127.0.0.1"}, port)

		assert.NoError(st, err)

		addresses, err := scanner.Scan(context.Background(), time.Second)

		assert.NoError(st, err)
		assert.Equal(st, []string{"127.0.0.1"}, addresses)
	})

	t.Run("skips closed ports", func(st *testing.T) {
		l, _ := net.Listen("tcp", "127.0.0.1:0")
		_, portStr, _ := net.SplitHostPort(l.Addr().String())
		port, _ := strconv.Atoi(portStr)
		l.Close()

		scanner, err := discovery.NewNetScanner([]string{"127.0.0.1"}, port)

		assert.NoError(st, err)

		addresses, err := scanner.Scan(context.Background(), time.Millisecond*200)

		assert.NoError(st, err)
		assert.Empty(st, addresses)
	})

	t.Run("requires targets", func(st *testing.T) {
		scanner, err := discovery.NewNetScanner([]string{}, 0)

		assert.NoError(st, err)

		_, err = scanner.Scan(context.Background(), time.Millisecond)

		assert.ErrorIs(st, err, discovery.ErrNoTargets)
	})
}

func TestNmapScanner(t *testing.T) {
	t.Run("requires targets", func(st *testing.T) {
		scanner := discovery.NewNmapScanner(nil)

		_, err := scanner.Scan(context.Background(), time.Millisecond)

		assert.ErrorIs(st, err, discovery.ErrNoTargets)
	})
}

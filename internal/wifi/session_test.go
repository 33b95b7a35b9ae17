package wifi_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/robgonnella/zlink/internal/discovery"
	"github.com/robgonnella/zlink/internal/exception"
	"github.com/robgonnella/zlink/internal/event"
	mock_discovery "github.com/robgonnella/zlink/internal/mock/discovery"
	mock_event "github.com/robgonnella/zlink/internal/mock/event"
	mock_transport "github.com/robgonnella/zlink/internal/mock/transport"
	mock_wifi "github.com/robgonnella/zlink/internal/mock/wifi"
	"github.com/robgonnella/zlink/internal/transport"
	"github.com/robgonnella/zlink/internal/wifi"
	"github.com/robgonnella/zlink/internal/zpl"
	"github.com/stretchr/testify/assert"
)

type dialed struct {
	address string
	port    int
}

type fixture struct {
	scanner *mock_discovery.MockScanner
	conn    *mock_transport.MockConnection
	stack   *mock_wifi.MockStack
	dials   []dialed
	session *wifi.Session
}

func newFixture(st *testing.T) *fixture {
	ctrl := gomock.NewController(st)

	f := &fixture{
		scanner: mock_discovery.NewMockScanner(ctrl),
		conn:    mock_transport.NewMockConnection(ctrl),
		stack:   mock_wifi.NewMockStack(ctrl),
	}

	dial := func(address string, port int) transport.Connection {
		f.dials = append(f.dials, dialed{address: address, port: port})
		return f.conn
	}

	newStack := func(transport.Connection) (wifi.Stack, error) {
		return f.stack, nil
	}

	f.session = wifi.New(f.scanner, dial, newStack, 0, nil)

	st.Cleanup(func() {
		f.conn.EXPECT().Close().Return(nil).AnyTimes()
		f.session.Close()
	})

	return f
}

func (f *fixture) connect(st *testing.T) {
	f.conn.EXPECT().Open().Return(nil)
	f.conn.EXPECT().IsConnected().Return(true).AnyTimes()

	err := f.session.Connect(context.Background(), "10.0.0.5", nil)

	assert.NoError(st, err)
}

func TestDiscover(t *testing.T) {
	t.Run("returns scanner results", func(st *testing.T) {
		f := newFixture(st)

		f.scanner.EXPECT().
			Scan(gomock.Any(), 2*time.Second).
			Return([]string{"10.0.0.5", "10.0.0.6"}, nil)

		addresses := f.session.Discover(context.Background(), 2)

		assert.Equal(st, []string{"10.0.0.5", "10.0.0.6"}, addresses)
	})

	t.Run("returns empty list on failure", func(st *testing.T) {
		f := newFixture(st)

		f.scanner.EXPECT().
			Scan(gomock.Any(), gomock.Any()).
			Return(nil, errors.New("mock scan error"))

		addresses := f.session.Discover(context.Background(), 1)

		assert.NotNil(st, addresses)
		assert.Empty(st, addresses)
	})

	t.Run("returns empty list when nothing answers", func(st *testing.T) {
		f := newFixture(st)

		f.scanner.EXPECT().Scan(gomock.Any(), gomock.Any()).Return(nil, nil)

		addresses := f.session.Discover(context.Background(), 1)

		assert.NotNil(st, addresses)
		assert.Empty(st, addresses)
	})
}

func TestConnect(t *testing.T) {
	t.Run("requires an address", func(st *testing.T) {
		f := newFixture(st)

		err := f.session.Connect(context.Background(), "", nil)

		assert.ErrorIs(st, err, exception.ErrAddressRequired)
		assert.Empty(st, f.dials)
	})

	t.Run("uses the default port", func(st *testing.T) {
		f := newFixture(st)

		f.connect(st)

		assert.Equal(st, []dialed{{address: "10.0.0.5", port: discovery.DefaultPrinterPort}}, f.dials)
		assert.True(st, f.session.IsConnected(context.Background()))
	})

	t.Run("uses an explicit port", func(st *testing.T) {
		f := newFixture(st)

		f.conn.EXPECT().Open().Return(nil)
		f.conn.EXPECT().IsConnected().Return(true).AnyTimes()

		port := 9100
		err := f.session.Connect(context.Background(), "10.0.0.5", &port)

		assert.NoError(st, err)
		assert.Equal(st, 9100, f.dials[0].port)
	})

	t.Run("fails disconnected when the socket does not open", func(st *testing.T) {
		f := newFixture(st)

		f.conn.EXPECT().Open().Return(errors.New("mock dial error"))
		f.conn.EXPECT().IsConnected().Return(false).AnyTimes()

		err := f.session.Connect(context.Background(), "10.0.0.5", nil)

		assert.ErrorIs(st, err, exception.ErrDisconnected)
		assert.False(st, f.session.IsConnected(context.Background()))
	})

	t.Run("fails initialization when the printer is not identified", func(st *testing.T) {
		ctrl := gomock.NewController(st)
		conn := mock_transport.NewMockConnection(ctrl)

		dial := func(string, int) transport.Connection { return conn }
		newStack := func(transport.Connection) (wifi.Stack, error) {
			return nil, zpl.ErrNoResponse
		}

		session := wifi.New(mock_discovery.NewMockScanner(ctrl), dial, newStack, 0, nil)

		conn.EXPECT().Open().Return(nil)
		conn.EXPECT().IsConnected().Return(true).AnyTimes()
		conn.EXPECT().Close().Return(nil)

		err := session.Connect(context.Background(), "10.0.0.5", nil)

		assert.ErrorIs(st, err, exception.ErrInitializationFailed)

		session.Close()
	})

	t.Run("tears down the previous connection", func(st *testing.T) {
		f := newFixture(st)

		f.connect(st)

		f.conn.EXPECT().Close().Return(nil)
		f.conn.EXPECT().Open().Return(nil)

		err := f.session.Connect(context.Background(), "10.0.0.6", nil)

		assert.NoError(st, err)
		assert.Len(st, f.dials, 2)
	})
}

func TestSend(t *testing.T) {
	t.Run("fails when disconnected", func(st *testing.T) {
		f := newFixture(st)

		err := f.session.Send(context.Background(), "^XA^XZ")

		assert.ErrorIs(st, err, exception.ErrDisconnected)
	})

	t.Run("sends when the printer is ready", func(st *testing.T) {
		f := newFixture(st)

		f.connect(st)

		f.stack.EXPECT().CurrentStatus().Return(zpl.Status{}, nil)
		f.stack.EXPECT().SendCommand("^XA^XZ").Return(nil)

		err := f.session.Send(context.Background(), "^XA^XZ")

		assert.NoError(st, err)
	})

	t.Run("refuses when the printer is paused", func(st *testing.T) {
		f := newFixture(st)

		f.connect(st)

		f.stack.EXPECT().CurrentStatus().Return(zpl.Status{Paused: true}, nil)

		err := f.session.Send(context.Background(), "^XA^XZ")

		assert.ErrorIs(st, err, exception.ErrNotReadyToPrint)
	})

	t.Run("wraps status failures", func(st *testing.T) {
		f := newFixture(st)

		f.connect(st)

		f.stack.EXPECT().CurrentStatus().Return(zpl.Status{}, zpl.ErrNoResponse)

		err := f.session.Send(context.Background(), "^XA^XZ")

		assert.ErrorIs(st, err, zpl.ErrNoResponse)
		assert.Equal(st, exception.KindWrapped, exception.KindOf(err))
	})
}

func TestPrintAndRead(t *testing.T) {
	t.Run("print writes raw bytes", func(st *testing.T) {
		f := newFixture(st)

		f.connect(st)

		f.conn.EXPECT().Write([]byte("^XA^XZ")).Return(nil)

		err := f.session.Print(context.Background(), "^XA^XZ")

		assert.NoError(st, err)
	})

	t.Run("print fails when disconnected", func(st *testing.T) {
		f := newFixture(st)

		err := f.session.Print(context.Background(), "^XA^XZ")

		assert.ErrorIs(st, err, exception.ErrDisconnected)
	})

	t.Run("read returns text", func(st *testing.T) {
		f := newFixture(st)

		f.connect(st)

		f.conn.EXPECT().Read().Return([]byte("\"zpl\""), nil)

		data, err := f.session.Read(context.Background())

		assert.NoError(st, err)
		assert.Equal(st, "\"zpl\"", data)
	})

	t.Run("read drops invalid utf-8", func(st *testing.T) {
		f := newFixture(st)

		f.connect(st)

		f.conn.EXPECT().Read().Return([]byte{0xff, 0xfe}, nil)

		data, err := f.session.Read(context.Background())

		assert.NoError(st, err)
		assert.Equal(st, "", data)
	})

	t.Run("read wraps transport failures", func(st *testing.T) {
		f := newFixture(st)

		f.connect(st)

		f.conn.EXPECT().Read().Return(nil, transport.ErrNotOpen)

		_, err := f.session.Read(context.Background())

		assert.ErrorIs(st, err, transport.ErrNotOpen)
	})
}

func TestDisconnect(t *testing.T) {
	t.Run("closes the connection", func(st *testing.T) {
		f := newFixture(st)

		f.connect(st)

		f.conn.EXPECT().Close().Return(nil)

		err := f.session.Disconnect(context.Background())

		assert.NoError(st, err)
		assert.False(st, f.session.IsConnected(context.Background()))
	})

	t.Run("is safe without a connection", func(st *testing.T) {
		f := newFixture(st)

		assert.NoError(st, f.session.Disconnect(context.Background()))
	})
}

func TestTimeout(t *testing.T) {
	f := newFixture(t)

	release := make(chan struct{})

	f.scanner.EXPECT().
		Scan(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, time.Duration) ([]string, error) {
			<-release
			return nil, nil
		})

	go f.session.Discover(context.Background(), 1)

	// give the scan time to occupy the worker
	time.Sleep(20 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	err := f.session.Print(ctx, "^XA^XZ")

	assert.ErrorIs(t, err, exception.ErrTimeout)

	close(release)
}

func TestAbandonedJobs(t *testing.T) {
	t.Run("closes a connection opened after the caller gave up", func(st *testing.T) {
		f := newFixture(st)

		f.conn.EXPECT().Open().DoAndReturn(func() error {
			time.Sleep(100 * time.Millisecond)
			return nil
		})
		f.conn.EXPECT().Close().Return(nil)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		err := f.session.Connect(ctx, "10.0.0.5", nil)

		assert.ErrorIs(st, err, exception.ErrTimeout)

		// wait for the open to finish on the worker
		time.Sleep(150 * time.Millisecond)

		assert.False(st, f.session.IsConnected(context.Background()))
	})

	t.Run("skips queued jobs whose caller gave up", func(st *testing.T) {
		f := newFixture(st)
		f.connect(st)

		release := make(chan struct{})

		f.scanner.EXPECT().
			Scan(gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, time.Duration) ([]string, error) {
				<-release
				return nil, nil
			})

		go f.session.Discover(context.Background(), 1)

		time.Sleep(20 * time.Millisecond)

		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		// no Write is expected on the connection
		err := f.session.Print(ctx, "^XA^XZ")

		assert.ErrorIs(st, err, exception.ErrTimeout)

		close(release)

		assert.True(st, f.session.IsConnected(context.Background()))
	})
}

func TestEvents(t *testing.T) {
	ctrl := gomock.NewController(t)

	scanner := mock_discovery.NewMockScanner(ctrl)
	conn := mock_transport.NewMockConnection(ctrl)
	stack := mock_wifi.NewMockStack(ctrl)
	events := mock_event.NewMockManager(ctrl)

	dial := func(string, int) transport.Connection { return conn }
	newStack := func(transport.Connection) (wifi.Stack, error) { return stack, nil }

	session := wifi.New(scanner, dial, newStack, 0, events)
	defer session.Close()

	t.Run("publishes discovery results", func(st *testing.T) {
		scanner.EXPECT().Scan(gomock.Any(), gomock.Any()).Return([]string{"10.0.0.5"}, nil)

		events.EXPECT().Send(event.Event{
			Type:    event.DiscoveryEventType,
			Payload: event.DiscoveryPayload{Transport: wifi.TransportName, Handles: []string{"10.0.0.5"}},
		})

		session.Discover(context.Background(), 1)
	})

	t.Run("publishes requested link changes", func(st *testing.T) {
		conn.EXPECT().Open().Return(nil)
		conn.EXPECT().IsConnected().Return(true).AnyTimes()
		conn.EXPECT().Close().Return(nil)

		events.EXPECT().Send(event.Event{
			Type:    event.ConnectedEventType,
			Payload: event.LinkPayload{Transport: wifi.TransportName, Handle: "10.0.0.5", Requested: true},
		})

		events.EXPECT().Send(event.Event{
			Type:    event.DisconnectedEventType,
			Payload: event.LinkPayload{Transport: wifi.TransportName, Handle: "10.0.0.5", Requested: true},
		})

		assert.NoError(st, session.Connect(context.Background(), "10.0.0.5", nil))
		assert.NoError(st, session.Disconnect(context.Background()))
	})
}

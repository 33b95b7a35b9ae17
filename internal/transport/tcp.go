package transport

import (
	"errors"
	"net"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/robgonnella/zlink/internal/logger"
)

// ErrNotOpen is returned when reading or writing a closed connection
var ErrNotOpen = errors.New("connection is not open")

// Default timings for TCP printer connections
const (
	DefaultDialTimeout     = time.Second * 5
	DefaultReadTimeout     = time.Second * 5
	DefaultWaitForMoreData = time.Millisecond * 500
)

// TCPConnection implements Connection over a TCP socket
type TCPConnection struct {
	address         string
	port            int
	dialTimeout     time.Duration
	readTimeout     time.Duration
	waitForMoreData time.Duration
	conn            net.Conn
	mux             sync.Mutex
	log             logger.Logger
}

// TCPOption configures a TCPConnection
type TCPOption func(c *TCPConnection)

// WithDialTimeout sets how long Open waits for the socket to connect
func WithDialTimeout(d time.Duration) TCPOption {
	return func(c *TCPConnection) {
		if d > 0 {
			c.dialTimeout = d
		}
	}
}

// WithReadTimeout sets how long Read waits for the first byte
func WithReadTimeout(d time.Duration) TCPOption {
	return func(c *TCPConnection) {
		if d > 0 {
			c.readTimeout = d
		}
	}
}

// WithWaitForMoreData sets how long Read keeps waiting for trailing bytes
func WithWaitForMoreData(d time.Duration) TCPOption {
	return func(c *TCPConnection) {
		if d > 0 {
			c.waitForMoreData = d
		}
	}
}

// NewTCPConnection returns a new unopened TCPConnection
func NewTCPConnection(address string, port int, opts ...TCPOption) *TCPConnection {
	c := &TCPConnection{
		address:         address,
		port:            port,
		dialTimeout:     DefaultDialTimeout,
		readTimeout:     DefaultReadTimeout,
		waitForMoreData: DefaultWaitForMoreData,
		log:             logger.NewComponent("tcp"),
	}

	for _, o := range opts {
		o(c)
	}

	return c
}

// NewTCPDialer returns a Dialer producing TCPConnections with opts applied
func NewTCPDialer(opts ...TCPOption) Dialer {
	return func(address string, port int) Connection {
		return NewTCPConnection(address, port, opts...)
	}
}

// Open dials the printer. A failed dial leaves the connection closed.
func (c *TCPConnection) Open() error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.conn != nil {
		return nil
	}

	target := net.JoinHostPort(c.address, strconv.Itoa(c.port))

	conn, err := net.DialTimeout("tcp", target, c.dialTimeout)

	if err != nil {
		c.log.Debug().Err(err).Str("target", target).Msg("failed to open connection")
		return err
	}

	c.log.Debug().Str("target", target).Msg("connection opened")

	c.conn = conn

	return nil
}

// Close closes the socket, closing twice is a no-op
func (c *TCPConnection) Close() error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.conn == nil {
		return nil
	}

	err := c.conn.Close()
	c.conn = nil

	return err
}

// IsConnected reports whether the socket is open
func (c *TCPConnection) IsConnected() bool {
	c.mux.Lock()
	defer c.mux.Unlock()

	return c.conn != nil
}

// Write sends all of data, a failed write closes the connection
func (c *TCPConnection) Write(data []byte) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.conn == nil {
		return ErrNotOpen
	}

	for len(data) > 0 {
		n, err := c.conn.Write(data)

		if err != nil {
			c.conn.Close()
			c.conn = nil
			return err
		}

		data = data[n:]
	}

	return nil
}

// Read waits up to the read timeout for data, then keeps reading as long
// as more bytes arrive within the wait-for-more-data window
func (c *TCPConnection) Read() ([]byte, error) {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.conn == nil {
		return nil, ErrNotOpen
	}

	result := []byte{}
	buf := make([]byte, 4096)
	wait := c.readTimeout

	for {
		if err := c.conn.SetReadDeadline(time.Now().Add(wait)); err != nil {
			return nil, err
		}

		n, err := c.conn.Read(buf)

		result = append(result, buf[:n]...)

		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				return result, nil
			}

			if len(result) > 0 {
				return result, nil
			}

			c.conn.Close()
			c.conn = nil

			return nil, err
		}

		wait = c.waitForMoreData
	}
}

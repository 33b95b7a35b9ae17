package transport

//go:generate mockgen -destination=../mock/transport/mock_transport.go -package=mock_transport . Connection

// Connection is a raw byte stream to a single printer
type Connection interface {
	Open() error
	Close() error
	IsConnected() bool
	Read() ([]byte, error)
	Write(data []byte) error
}

// Dialer creates a new unopened connection for an address and port
type Dialer func(address string, port int) Connection

package discovery

import (
	"context"
	"errors"
	"net"
	"os"
	"time"

	"github.com/robgonnella/zlink/internal/logger"
)

// DefaultBroadcastPort is the UDP port Zebra printers answer discovery on
const DefaultBroadcastPort = 4201

// discoveryProbe is the Zebra network discovery request
var discoveryProbe = []byte{0x2e, 0x2c, 0x3a, 0x01, 0x00, 0x00}

// BroadcastScanner is an implementation of the Scanner interface using a
// local UDP broadcast probe
type BroadcastScanner struct {
	target *net.UDPAddr
	log    logger.Logger
}

// NewBroadcastScanner returns a new instance of BroadcastScanner probing
// the limited broadcast address on port
func NewBroadcastScanner(port int) *BroadcastScanner {
	if port <= 0 {
		port = DefaultBroadcastPort
	}

	return &BroadcastScanner{
		target: &net.UDPAddr{IP: net.IPv4bcast, Port: port},
		log:    logger.NewComponent("broadcast-scanner"),
	}
}

// WithTarget points the probe at a specific address instead of broadcast
func (s *BroadcastScanner) WithTarget(addr *net.UDPAddr) *BroadcastScanner {
	s.target = addr
	return s
}

// Scan sends the probe and collects answers until timeout elapses
func (s *BroadcastScanner) Scan(ctx context.Context, timeout time.Duration) ([]string, error) {
	conn, err := net.ListenUDP("udp4", &net.UDPAddr{})

	if err != nil {
		return nil, err
	}

	defer conn.Close()

	deadline := time.Now().Add(timeout)

	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	if err := conn.SetReadDeadline(deadline); err != nil {
		return nil, err
	}

	stop := make(chan struct{})
	defer close(stop)

	go func() {
		select {
		case <-ctx.Done():
			conn.SetReadDeadline(time.Now())
		case <-stop:
		}
	}()

	s.log.Debug().Str("target", s.target.String()).Msg("sending discovery probe")

	if _, err := conn.WriteToUDP(discoveryProbe, s.target); err != nil {
		return nil, err
	}

	addresses := []string{}
	seen := map[string]bool{}
	buf := make([]byte, 1500)

	for {
		n, from, err := conn.ReadFromUDP(buf)

		if err != nil {
			if errors.Is(err, os.ErrDeadlineExceeded) {
				break
			}

			return addresses, err
		}

		if n == 0 || from == nil {
			continue
		}

		ip := from.IP.String()

		if seen[ip] {
			continue
		}

		seen[ip] = true
		addresses = append(addresses, ip)

		s.log.Debug().Str("ip", ip).Msg("printer answered discovery")
	}

	return addresses, nil
}

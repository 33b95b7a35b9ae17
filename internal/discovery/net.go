package discovery

import (
	"context"
	"net"
	"regexp"
	"strconv"
	"sync"
	"time"

	"github.com/projectdiscovery/mapcidr"
	"github.com/robgonnella/zlink/internal/logger"
)

var cidrSuffix = regexp.MustCompile(`\/\d{1,2}$`)

const maxDialTimeout = time.Millisecond * 500

// NetScanner is an implementation of the Scanner interface that attempts a
// TCP connection to the printer port of every target
type NetScanner struct {
	targets   []string
	port      int
	semaphore chan struct{}
	log       logger.Logger
}

// NewNetScanner returns a new instance of NetScanner. CIDR targets are
// expanded into their individual addresses.
func NewNetScanner(targets []string, port int) (*NetScanner, error) {
	ipList := []string{}

	for _, t := range targets {
		if cidrSuffix.MatchString(t) {
			ips, err := mapcidr.IPAddresses(t)

			if err != nil {
				return nil, err
			}

			ipList = append(ipList, ips...)
		} else {
			ipList = append(ipList, t)
		}
	}

	if port <= 0 {
		port = DefaultPrinterPort
	}

	return &NetScanner{
		targets:   ipList,
		port:      port,
		semaphore: make(chan struct{}, 256),
		log:       logger.NewComponent("net-scanner"),
	}, nil
}

// Scan dials every target concurrently and returns those that accepted,
// in target order
func (s *NetScanner) Scan(ctx context.Context, timeout time.Duration) ([]string, error) {
	if len(s.targets) == 0 {
		return nil, ErrNoTargets
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	dialTimeout := timeout

	if dialTimeout > maxDialTimeout {
		dialTimeout = maxDialTimeout
	}

	s.log.Info().Int("targets", len(s.targets)).Msg("Sweeping network for printers...")

	open := make([]bool, len(s.targets))
	wg := &sync.WaitGroup{}

	for i, ip := range s.targets {
		select {
		case <-ctxWithTimeout.Done():
		case s.semaphore <- struct{}{}: // acquire
			wg.Add(1)
			go func(idx int, target string) {
				defer wg.Done()
				open[idx] = s.scanIP(ctxWithTimeout, target, dialTimeout)
				<-s.semaphore // release
			}(i, ip)
		}
	}

	wg.Wait()

	addresses := []string{}

	for i, ok := range open {
		if ok {
			addresses = append(addresses, s.targets[i])
		}
	}

	return addresses, nil
}

func (s *NetScanner) scanIP(ctx context.Context, ip string, timeout time.Duration) bool {
	dialer := net.Dialer{Timeout: timeout}

	conn, err := dialer.DialContext(ctx, "tcp", net.JoinHostPort(ip, strconv.Itoa(s.port)))

	if err != nil {
		return false
	}

	conn.Close()

	s.log.Debug().Str("ip", ip).Msg("printer port open")

	return true
}

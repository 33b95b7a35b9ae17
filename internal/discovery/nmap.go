package discovery

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Ullaakut/nmap/v3"
	"github.com/robgonnella/zlink/internal/logger"
)

// ErrNoTargets is returned by sweeping scanners configured without targets
var ErrNoTargets = errors.New("no network targets configured")

// NmapScanner is an implementation of the Scanner interface using nmap to
// find hosts with an open printer port
type NmapScanner struct {
	targets []string
	ports   []string
	log     logger.Logger
}

// NewNmapScanner returns a new instance of NmapScanner
func NewNmapScanner(targets []string, ports ...int) *NmapScanner {
	if len(ports) == 0 {
		ports = []int{DefaultPrinterPort, RawPrintPort}
	}

	portList := []string{}

	for _, p := range ports {
		portList = append(portList, strconv.Itoa(p))
	}

	return &NmapScanner{
		targets: targets,
		ports:   portList,
		log:     logger.NewComponent("nmap-scanner"),
	}
}

// Scan runs a single nmap sweep bounded by timeout
func (s *NmapScanner) Scan(ctx context.Context, timeout time.Duration) ([]string, error) {
	if len(s.targets) == 0 {
		return nil, ErrNoTargets
	}

	ctxWithTimeout, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	scanner, err := nmap.NewScanner(
		ctxWithTimeout,
		nmap.WithTargets(s.targets...),
		nmap.WithPorts(strings.Join(s.ports, ",")),
		nmap.WithTimingTemplate(nmap.TimingAggressive),
		nmap.WithSkipHostDiscovery(),
	)

	if err != nil {
		return nil, err
	}

	s.log.Info().Strs("targets", s.targets).Msg("Scanning network for printers...")

	result, warnings, err := scanner.Run()

	if warnings != nil && len(*warnings) > 0 {
		fields := map[string]interface{}{}

		for i, warning := range *warnings {
			fields[strconv.Itoa(i)] = warning
		}

		s.log.Warn().
			Fields(fields).
			Msg("encountered network scan warnings")
	}

	if err != nil {
		s.log.Error().Err(err).Msg("encountered network scan error")
		return nil, err
	}

	return printerAddresses(result), nil
}

func printerAddresses(result *nmap.Run) []string {
	addresses := []string{}

	if result == nil {
		return addresses
	}

	for _, host := range result.Hosts {
		if len(host.Addresses) == 0 {
			continue
		}

		open := false

		for _, port := range host.Ports {
			if port.Status() == nmap.Open {
				open = true
				break
			}
		}

		if open {
			addresses = append(addresses, host.Addresses[0].String())
		}
	}

	return addresses
}

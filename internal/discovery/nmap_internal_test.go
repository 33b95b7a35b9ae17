package discovery

import (
	"testing"

	"github.com/Ullaakut/nmap/v3"
	"github.com/stretchr/testify/assert"
)

func TestPrinterAddresses(t *testing.T) {
	result := &nmap.Run{
		Hosts: []nmap.Host{
			{
				Addresses: []nmap.Address{{Addr: "10.0.0.5"}},
				Ports: []nmap.Port{
					{ID: 6101, State: nmap.State{State: "open"}},
				},
			},
			{
				Addresses: []nmap.Address{{Addr: "10.0.0.6"}},
				Ports: []nmap.Port{
					{ID: 6101, State: nmap.State{State: "closed"}},
				},
			},
			{
				Ports: []nmap.Port{
					{ID: 9100, State: nmap.State{State: "open"}},
				},
			},
		},
	}

	assert.Equal(t, []string{"10.0.0.5"}, printerAddresses(result))
	assert.Empty(t, printerAddresses(nil))
}

// Package netprobe reports outbound connectivity through the same poller
// cell as every other data source, replacing the ad hoc global
// online/ip pair the panel used to carry.
package netprobe

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/deskpet/panel/internal/config"
	"github.com/deskpet/panel/internal/poller"
)

// Status is the probe result. An unreachable network is a result, not an
// error: the probe runs on a short fixed cadence and must never back off.
type Status struct {
	Online bool
	IP     string
}

type Prober struct {
	cfg    *config.NetworkCfg
	poller *poller.Poller[Status]

	// dial is swappable in tests.
	dial func(network, addr string, timeout time.Duration) (net.Conn, error)
}

func New(cfg *config.NetworkCfg, cl clock.Clock, logger zerolog.Logger) *Prober {
	p := &Prober{
		cfg:  cfg,
		dial: net.DialTimeout,
	}
	p.poller = poller.New(
		poller.Config{
			Name:            "netprobe",
			RefreshInterval: cfg.Refresh(),
			// Floor==ceiling==interval keeps the cadence fixed even if a
			// future fetch variant ever returns an error.
			BackoffFloor:   cfg.Refresh(),
			BackoffCeiling: cfg.Refresh(),
		},
		cl, logger, p.fetch, nil, nil,
	)
	return p
}

func (p *Prober) Run(ctx context.Context) { p.poller.Run(ctx) }

func (p *Prober) Snapshot() poller.CachedValue[Status] { return p.poller.Snapshot() }

func (p *Prober) fetch(ctx context.Context) (Status, error) {
	addr := fmt.Sprintf("%s:%d", p.cfg.ConnectTestHost, p.cfg.ConnectTestPort)
	online := false
	if conn, err := p.dial("tcp", addr, p.cfg.ConnectTimeout()); err == nil {
		online = true
		_ = conn.Close()
	}
	return Status{Online: online, IP: localIP()}, nil
}

// localIP picks the first global unicast IPv4 of the host, "-" when none.
func localIP() string {
	addrs, err := net.InterfaceAddrs()
	if err != nil {
		return "-"
	}
	for _, a := range addrs {
		ipNet, ok := a.(*net.IPNet)
		if !ok || !ipNet.IP.IsGlobalUnicast() {
			continue
		}
		if v4 := ipNet.IP.To4(); v4 != nil {
			return v4.String()
		}
	}
	return "-"
}

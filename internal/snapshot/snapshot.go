// Package snapshot assembles the per-tick immutable view handed to the
// renderer. Each source cell is read under its own lock; no global lock
// and no cross-source consistency is promised.
package snapshot

import (
	"time"

	"github.com/benbjohnson/clock"

	"github.com/deskpet/panel/internal/netprobe"
	"github.com/deskpet/panel/internal/poller"
	"github.com/deskpet/panel/internal/remote"
	"github.com/deskpet/panel/internal/sysmetrics"
	"github.com/deskpet/panel/internal/weather"
)

// Snapshot is consumed and discarded once per render tick.
type Snapshot struct {
	Now time.Time

	IP     string
	Online bool

	CPUTemp     string
	Load1       string
	MemPercent  string
	DiskPercent string

	Weather poller.CachedValue[weather.Report]
	Lunar   poller.CachedValue[remote.LunarInfo]
	Quote   poller.CachedValue[string]
}

// Alert derives the highest-priority ticker warning from the snapshot.
// Reported false when the panel is healthy.
func (s Snapshot) Alert() (string, bool) {
	if !s.Online {
		return "ALERT: network offline. check uplink/AP/DNS.", true
	}
	if s.Weather.OK && s.Weather.Stale {
		return "WARN: weather stale. check api host/key or connectivity.", true
	}
	return "", false
}

type WeatherSource interface {
	Snapshot() poller.CachedValue[weather.Report]
}

type NetSource interface {
	Snapshot() poller.CachedValue[netprobe.Status]
}

type LunarSource interface {
	Snapshot() poller.CachedValue[remote.LunarInfo]
}

type QuoteSource interface {
	Snapshot() poller.CachedValue[string]
}

type Metrics interface {
	CPUTemp() string
	Load1() string
	MemoryPercent() string
	DiskPercent() string
}

type Builder struct {
	clock   clock.Clock
	metrics Metrics
	weather WeatherSource
	net     NetSource
	lunar   LunarSource
	quote   QuoteSource
}

func NewBuilder(
	cl clock.Clock,
	metrics Metrics,
	weather WeatherSource,
	net NetSource,
	lunar LunarSource,
	quote QuoteSource,
) *Builder {
	return &Builder{
		clock:   cl,
		metrics: metrics,
		weather: weather,
		net:     net,
		lunar:   lunar,
		quote:   quote,
	}
}

// Build performs only lock-swap reads and synchronous metric reads; it
// never does network I/O.
func (b *Builder) Build() Snapshot {
	net := b.net.Snapshot()
	ip := net.Value.IP
	if ip == "" {
		ip = sysmetrics.Unavailable
	}

	return Snapshot{
		Now:         b.clock.Now(),
		IP:          ip,
		Online:      net.Value.Online,
		CPUTemp:     b.metrics.CPUTemp(),
		Load1:       b.metrics.Load1(),
		MemPercent:  b.metrics.MemoryPercent(),
		DiskPercent: b.metrics.DiskPercent(),
		Weather:     b.weather.Snapshot(),
		Lunar:       b.lunar.Snapshot(),
		Quote:       b.quote.Snapshot(),
	}
}

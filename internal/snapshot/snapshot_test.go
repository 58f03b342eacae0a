package snapshot

import (
	"testing"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/deskpet/panel/internal/netprobe"
	"github.com/deskpet/panel/internal/poller"
	"github.com/deskpet/panel/internal/remote"
	"github.com/deskpet/panel/internal/weather"
)

type fakeWeather struct{ v poller.CachedValue[weather.Report] }

func (f fakeWeather) Snapshot() poller.CachedValue[weather.Report] { return f.v }

type fakeNet struct{ v poller.CachedValue[netprobe.Status] }

func (f fakeNet) Snapshot() poller.CachedValue[netprobe.Status] { return f.v }

type fakeLunar struct{ v poller.CachedValue[remote.LunarInfo] }

func (f fakeLunar) Snapshot() poller.CachedValue[remote.LunarInfo] { return f.v }

type fakeQuote struct{ v poller.CachedValue[string] }

func (f fakeQuote) Snapshot() poller.CachedValue[string] { return f.v }

type fakeMetrics struct{}

func (fakeMetrics) CPUTemp() string       { return "47C" }
func (fakeMetrics) Load1() string         { return "0.42" }
func (fakeMetrics) MemoryPercent() string { return "38%" }
func (fakeMetrics) DiskPercent() string   { return "61%" }

func builderWith(net poller.CachedValue[netprobe.Status], w poller.CachedValue[weather.Report]) *Builder {
	return NewBuilder(
		clock.NewMock(),
		fakeMetrics{},
		fakeWeather{v: w},
		fakeNet{v: net},
		fakeLunar{},
		fakeQuote{},
	)
}

// TestBuild_Aggregates: metrics and all cells land in one snapshot.
func TestBuild_Aggregates(t *testing.T) {
	b := builderWith(
		poller.CachedValue[netprobe.Status]{Value: netprobe.Status{Online: true, IP: "192.168.1.20"}, OK: true},
		poller.CachedValue[weather.Report]{OK: true},
	)

	s := b.Build()
	require.True(t, s.Online)
	require.Equal(t, "192.168.1.20", s.IP)
	require.Equal(t, "47C", s.CPUTemp)
	require.Equal(t, "0.42", s.Load1)
	require.Equal(t, "38%", s.MemPercent)
	require.Equal(t, "61%", s.DiskPercent)
}

// TestBuild_IPPlaceholder: an unset IP renders as "-".
func TestBuild_IPPlaceholder(t *testing.T) {
	b := builderWith(poller.CachedValue[netprobe.Status]{}, poller.CachedValue[weather.Report]{})
	require.Equal(t, "-", b.Build().IP)
}

// TestAlert_Offline has the highest urgency.
func TestAlert_Offline(t *testing.T) {
	b := builderWith(
		poller.CachedValue[netprobe.Status]{Value: netprobe.Status{Online: false}, OK: true},
		// weather stale too: offline must win
		poller.CachedValue[weather.Report]{OK: true, Stale: true},
	)

	text, ok := b.Build().Alert()
	require.True(t, ok)
	require.Contains(t, text, "network offline")
}

// TestAlert_WeatherStale fires only for a once-good, now-stale value.
func TestAlert_WeatherStale(t *testing.T) {
	b := builderWith(
		poller.CachedValue[netprobe.Status]{Value: netprobe.Status{Online: true}, OK: true},
		poller.CachedValue[weather.Report]{OK: true, Stale: true},
	)

	text, ok := b.Build().Alert()
	require.True(t, ok)
	require.Contains(t, text, "weather stale")
}

// TestAlert_NeverSucceededWeatherIsQuiet: ok=false means "no data yet",
// not a stale alert.
func TestAlert_NeverSucceededWeatherIsQuiet(t *testing.T) {
	b := builderWith(
		poller.CachedValue[netprobe.Status]{Value: netprobe.Status{Online: true}, OK: true},
		poller.CachedValue[weather.Report]{OK: false, Stale: true},
	)

	_, ok := b.Build().Alert()
	require.False(t, ok)
}

// TestAlert_Healthy is silent.
func TestAlert_Healthy(t *testing.T) {
	b := builderWith(
		poller.CachedValue[netprobe.Status]{Value: netprobe.Status{Online: true}, OK: true},
		poller.CachedValue[weather.Report]{OK: true, Stale: false},
	)

	_, ok := b.Build().Alert()
	require.False(t, ok)
}

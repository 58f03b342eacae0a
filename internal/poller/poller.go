// Package poller implements the generic retry/backoff/staleness engine
// behind every background data source of the panel. One goroutine per
// Poller; the render loop only ever touches the published CachedValue.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
)

const (
	// stopSlice bounds how long a shutdown signal can go unnoticed while a
	// poller sleeps between iterations.
	stopSlice = 500 * time.Millisecond

	// staleSlack is added on top of refresh interval before a published
	// value is reported stale by age alone (covers a wedged fetch).
	staleSlack = 2 * time.Second

	// errMaxLen truncates failure descriptions before they reach the UI.
	errMaxLen = 60
)

// preloadErr marks a value seeded from disk rather than the network.
const preloadErr = "(cache)"

// Fetch produces one fresh value or an error. It must honor ctx.
type Fetch[T any] func(ctx context.Context) (T, error)

// Persist stores a successful value. Best effort: a returned error is
// logged and otherwise ignored.
type Persist[T any] func(v T) error

// Preload yields a previously persisted value, if any, to seed the cell
// before the first fetch completes.
type Preload[T any] func() (T, bool)

// CachedValue is the latest known result of a Poller annotated with
// freshness metadata. OK stays true once any fetch ever succeeded ("last
// known good"), even through later failures.
type CachedValue[T any] struct {
	Value       T
	OK          bool
	Stale       bool
	LastSuccess time.Time
	Err         string
}

type Config struct {
	// Name tags log lines; it has no other meaning.
	Name string

	// RefreshInterval is the sleep after a successful fetch.
	RefreshInterval time.Duration

	// BackoffFloor/BackoffCeiling bound the sleep after a failed fetch:
	// floor, doubled per consecutive failure, capped at ceiling, reset to
	// floor on success.
	BackoffFloor   time.Duration
	BackoffCeiling time.Duration
}

func (cfg *Config) normalize() {
	if cfg.RefreshInterval <= 0 {
		cfg.RefreshInterval = time.Minute
	}
	if cfg.BackoffFloor <= 0 {
		cfg.BackoffFloor = 5 * time.Second
	}
	if cfg.BackoffCeiling < cfg.BackoffFloor {
		cfg.BackoffCeiling = cfg.BackoffFloor
	}
}

type Poller[T any] struct {
	cfg     Config
	clock   clock.Clock
	logger  zerolog.Logger
	fetch   Fetch[T]
	persist Persist[T]
	preload Preload[T]

	mu  sync.RWMutex
	cur CachedValue[T]
	// freshUntil is the clock time after which the current value is
	// reported stale even without an intervening failure. Zero while the
	// value is already stale.
	freshUntil time.Time
}

// New builds a Poller. persist and preload may be nil for sources that
// have no on-disk seed.
func New[T any](
	cfg Config,
	cl clock.Clock,
	logger zerolog.Logger,
	fetch Fetch[T],
	persist Persist[T],
	preload Preload[T],
) *Poller[T] {
	cfg.normalize()
	return &Poller[T]{
		cfg:     cfg,
		clock:   cl,
		logger:  logger.With().Str("poller", cfg.Name).Logger(),
		fetch:   fetch,
		persist: persist,
		preload: preload,
	}
}

// Snapshot returns a copy of the current cell. Non-blocking; never waits
// on an in-flight fetch. A value whose refresh (plus any backoff in
// effect) is overdue is reported stale even if no failure was recorded.
func (p *Poller[T]) Snapshot() CachedValue[T] {
	p.mu.RLock()
	cur := p.cur
	freshUntil := p.freshUntil
	p.mu.RUnlock()

	if !cur.Stale && !freshUntil.IsZero() && p.clock.Now().After(freshUntil) {
		cur.Stale = true
	}
	return cur
}

// Run executes the fetch loop until ctx is cancelled. Shutdown is honored
// within stopSlice even mid-sleep.
func (p *Poller[T]) Run(ctx context.Context) {
	if p.preload != nil {
		if v, ok := p.preload(); ok {
			p.mu.Lock()
			p.cur = CachedValue[T]{Value: v, OK: true, Stale: true, Err: preloadErr}
			p.mu.Unlock()
			p.logger.Info().Msg("seeded from disk cache")
		}
	}

	backoff := p.cfg.BackoffFloor
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		v, err := p.fetch(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return
			}
			p.publishFailure(err, backoff)
			if !p.sleep(ctx, backoff) {
				return
			}
			backoff *= 2
			if backoff > p.cfg.BackoffCeiling {
				backoff = p.cfg.BackoffCeiling
			}
			continue
		}

		p.publishSuccess(v)
		if p.persist != nil {
			if perr := p.persist(v); perr != nil {
				p.logger.Warn().Err(perr).Msg("persist failed")
			}
		}
		backoff = p.cfg.BackoffFloor
		if !p.sleep(ctx, p.cfg.RefreshInterval) {
			return
		}
	}
}

func (p *Poller[T]) publishSuccess(v T) {
	now := p.clock.Now()
	p.mu.Lock()
	p.cur = CachedValue[T]{Value: v, OK: true, Stale: false, LastSuccess: now}
	p.freshUntil = now.Add(p.cfg.RefreshInterval + staleSlack)
	p.mu.Unlock()
	p.logger.Debug().Msg("refreshed")
}

// publishFailure keeps the previous value and OK ("last known good") and
// only flips staleness and the error text.
func (p *Poller[T]) publishFailure(err error, backoff time.Duration) {
	msg := err.Error()
	if len(msg) > errMaxLen {
		msg = msg[:errMaxLen]
	}
	p.mu.Lock()
	p.cur.Stale = true
	p.cur.Err = msg
	p.freshUntil = time.Time{}
	p.mu.Unlock()
	p.logger.Warn().Err(err).Dur("backoff", backoff).Msg("fetch failed")
}

// sleep waits d on the injected clock, waking every stopSlice to notice
// cancellation. Reports false when ctx was cancelled.
func (p *Poller[T]) sleep(ctx context.Context, d time.Duration) bool {
	deadline := p.clock.Now().Add(d)
	for {
		remaining := deadline.Sub(p.clock.Now())
		if remaining <= 0 {
			return true
		}
		slice := stopSlice
		if remaining < slice {
			slice = remaining
		}
		t := p.clock.Timer(slice)
		select {
		case <-ctx.Done():
			t.Stop()
			return false
		case <-t.C:
		}
	}
}

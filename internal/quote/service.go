// Package quote polls the random-text endpoint and feeds the ticker
// message queue. The pushed item's TTL equals the refresh interval, so a
// quote scrolls until its successor arrives.
package quote

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/deskpet/panel/internal/config"
	"github.com/deskpet/panel/internal/poller"
	"github.com/deskpet/panel/internal/ticker"
)

type Client interface {
	FetchQuote(ctx context.Context) (string, error)
}

type Service struct {
	cfg    *config.TextAPICfg
	client Client
	queue  *ticker.Queue
	poller *poller.Poller[string]
}

func New(
	cfg *config.TextAPICfg,
	client Client,
	queue *ticker.Queue,
	cl clock.Clock,
	logger zerolog.Logger,
) *Service {
	s := &Service{cfg: cfg, client: client, queue: queue}
	s.poller = poller.New(
		poller.Config{
			Name:            "quote",
			RefreshInterval: cfg.QuoteRefresh(),
			BackoffFloor:    cfg.BackoffFloor(),
			BackoffCeiling:  cfg.BackoffCeiling(),
		},
		cl, logger, s.fetch, s.push, nil,
	)
	return s
}

func (s *Service) Run(ctx context.Context) { s.poller.Run(ctx) }

func (s *Service) Snapshot() poller.CachedValue[string] { return s.poller.Snapshot() }

func (s *Service) fetch(ctx context.Context) (string, error) {
	return s.client.FetchQuote(ctx)
}

// push rides the poller's persist hook: every successful fetch lands on
// the ticker.
func (s *Service) push(text string) error {
	s.queue.Push(text, s.cfg.QuoteRefresh(), s.cfg.QuotePriority)
	return nil
}

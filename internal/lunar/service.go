// Package lunar polls the lunar-calendar endpoint for the clock page.
// Lunar data changes daily; nothing is persisted, a restart simply
// refetches.
package lunar

import (
	"context"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/deskpet/panel/internal/config"
	"github.com/deskpet/panel/internal/poller"
	"github.com/deskpet/panel/internal/remote"
)

type Client interface {
	FetchLunar(ctx context.Context) (remote.LunarInfo, error)
}

type Service struct {
	client Client
	poller *poller.Poller[remote.LunarInfo]
}

func New(cfg *config.TextAPICfg, client Client, cl clock.Clock, logger zerolog.Logger) *Service {
	s := &Service{client: client}
	s.poller = poller.New(
		poller.Config{
			Name:            "lunar",
			RefreshInterval: cfg.LunarRefresh(),
			BackoffFloor:    cfg.BackoffFloor(),
			BackoffCeiling:  cfg.BackoffCeiling(),
		},
		cl, logger, s.fetch, nil, nil,
	)
	return s
}

func (s *Service) Run(ctx context.Context) { s.poller.Run(ctx) }

func (s *Service) Snapshot() poller.CachedValue[remote.LunarInfo] { return s.poller.Snapshot() }

func (s *Service) fetch(ctx context.Context) (remote.LunarInfo, error) {
	return s.client.FetchLunar(ctx)
}

// Package weather runs the QWeather poller: resolve a location id once
// (reference data, cached on disk forever), then refresh current
// conditions and the 7-day forecast on a schedule, seeding from disk
// across restarts.
package weather

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"

	"github.com/deskpet/panel/internal/config"
	"github.com/deskpet/panel/internal/diskcache"
	"github.com/deskpet/panel/internal/poller"
	"github.com/deskpet/panel/internal/remote"
)

// Client is the slice of the remote API the service needs.
type Client interface {
	ResolveLocation(ctx context.Context, query string) (remote.Location, error)
	FetchWeather(ctx context.Context, locationID string) (remote.CurrentConditions, []remote.DailyForecast, error)
}

// Report is one complete successful fetch.
type Report struct {
	Location remote.Location
	Now      remote.CurrentConditions
	Daily    []remote.DailyForecast
	// FetchedAt is the wall time of the fetch, persisted as last_ok_ts.
	FetchedAt time.Time
}

type Service struct {
	cfg    *config.WeatherCfg
	paths  *config.PathsCfg
	client Client
	store  *diskcache.Store
	clock  clock.Clock
	poller *poller.Poller[Report]

	// loc is touched only from the poller goroutine.
	loc remote.Location
}

func New(
	cfg *config.WeatherCfg,
	paths *config.PathsCfg,
	client Client,
	store *diskcache.Store,
	cl clock.Clock,
	logger zerolog.Logger,
) *Service {
	s := &Service{
		cfg:    cfg,
		paths:  paths,
		client: client,
		store:  store,
		clock:  cl,
	}
	s.poller = poller.New(
		poller.Config{
			Name:            "weather",
			RefreshInterval: cfg.Refresh(),
			BackoffFloor:    cfg.BackoffFloor(),
			BackoffCeiling:  cfg.BackoffCeiling(),
		},
		cl, logger, s.fetch, s.persist, s.preload,
	)
	return s
}

// Run blocks until ctx is cancelled.
func (s *Service) Run(ctx context.Context) { s.poller.Run(ctx) }

// Snapshot returns the latest known report with freshness metadata.
// Non-blocking.
func (s *Service) Snapshot() poller.CachedValue[Report] { return s.poller.Snapshot() }

// fetch resolves the location if needed, then pulls now + 7d. A failed
// resolve is an ordinary fetch failure: same backoff path, no special
// error class.
func (s *Service) fetch(ctx context.Context) (Report, error) {
	if err := s.resolveLocation(ctx); err != nil {
		return Report{}, err
	}

	now, daily, err := s.client.FetchWeather(ctx, s.loc.ID)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Location:  s.loc,
		Now:       now,
		Daily:     daily,
		FetchedAt: s.clock.Now(),
	}, nil
}

func (s *Service) resolveLocation(ctx context.Context) error {
	if s.loc.ID != "" {
		return nil
	}
	if s.cfg.Lookup.LocationID != "" {
		s.loc = remote.Location{ID: s.cfg.Lookup.LocationID, Name: s.cfg.Lookup.LocationText}
		return nil
	}
	var rec geoRecord
	if s.store.Load(s.paths.GeoCache, &rec) && rec.LocationID != "" {
		s.loc = remote.Location{ID: rec.LocationID, Name: rec.LocationName}
		return nil
	}

	loc, err := s.client.ResolveLocation(ctx, s.cfg.Lookup.LocationText)
	if err != nil {
		return fmt.Errorf("resolve location: %w", err)
	}
	s.loc = loc
	s.store.Save(s.paths.GeoCache, geoRecord{
		LocationID:   loc.ID,
		LocationName: loc.Name,
		TS:           float64(s.clock.Now().Unix()),
	})
	return nil
}

// persist mirrors the report into the two seed files. Errors are handled
// (logged) inside the store.
func (s *Service) persist(r Report) error {
	s.store.Save(s.paths.WeatherCache, nowRecord{
		LocationID:   r.Location.ID,
		LocationName: r.Location.Name,
		TempC:        r.Now.TempC,
		Text:         r.Now.Text,
		Icon:         r.Now.Icon,
		ObsTime:      r.Now.ObsTime,
		UpdateTime:   r.Now.UpdateTime,
		LastOKTS:     float64(r.FetchedAt.Unix()),
	})

	daily := make([]dailyRecord, 0, len(r.Daily))
	for _, d := range r.Daily {
		daily = append(daily, dailyRecord{
			Date:    d.Date,
			TextDay: d.TextDay,
			TempMax: d.TempMax,
			TempMin: d.TempMin,
			IconDay: d.IconDay,
		})
	}
	s.store.Save(s.paths.ForecastCache, forecastRecord{
		LocationID:   r.Location.ID,
		LocationName: r.Location.Name,
		Daily:        daily,
	})
	return nil
}

// preload seeds from disk so the display is never blank at startup. The
// seed is only ever trusted as stale.
func (s *Service) preload() (Report, bool) {
	var now nowRecord
	if !s.store.Load(s.paths.WeatherCache, &now) {
		return Report{}, false
	}
	r := Report{
		Location: remote.Location{ID: now.LocationID, Name: now.LocationName},
		Now: remote.CurrentConditions{
			TempC:      now.TempC,
			Text:       now.Text,
			Icon:       now.Icon,
			ObsTime:    now.ObsTime,
			UpdateTime: now.UpdateTime,
		},
		FetchedAt: time.Unix(int64(now.LastOKTS), 0),
	}

	var fc forecastRecord
	if s.store.Load(s.paths.ForecastCache, &fc) {
		for _, d := range fc.Daily {
			r.Daily = append(r.Daily, remote.DailyForecast{
				Date:    d.Date,
				TextDay: d.TextDay,
				TempMax: d.TempMax,
				TempMin: d.TempMin,
				IconDay: d.IconDay,
			})
		}
	}
	return r, true
}

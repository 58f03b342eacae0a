package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/deskpet/panel/internal/config"
	"github.com/deskpet/panel/internal/diskcache"
	"github.com/deskpet/panel/internal/display"
	"github.com/deskpet/panel/internal/lunar"
	"github.com/deskpet/panel/internal/netprobe"
	"github.com/deskpet/panel/internal/quote"
	"github.com/deskpet/panel/internal/remote"
	"github.com/deskpet/panel/internal/snapshot"
	"github.com/deskpet/panel/internal/sysmetrics"
	"github.com/deskpet/panel/internal/ticker"
	"github.com/deskpet/panel/internal/weather"
)

const (
	renderInterval = time.Second

	alertPriority = 1
	alertTTL      = 30 * time.Second
)

// run wires the pollers to the render loop and blocks until a signal
// arrives. Every worker observes the same context; shutdown completes
// within the pollers' sleep-slice bound.
func run(cfg *config.Panel, logger zerolog.Logger, only string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cl := clock.New()
	store := diskcache.New(cfg.Paths.ExpandedStateDir())
	queue := ticker.NewQueue(cl)

	qw := remote.NewQWeather(cfg.Weather)
	ta := remote.NewTextAPI(cfg.TextAPI)

	prober := netprobe.New(cfg.Network, cl, logger)
	weatherSvc := weather.New(cfg.Weather, cfg.Paths, qw, store, cl, logger)
	quoteSvc := quote.New(cfg.TextAPI, ta, queue, cl, logger)
	lunarSvc := lunar.New(cfg.TextAPI, ta, cl, logger)

	builder := snapshot.NewBuilder(cl, sysmetrics.NewReader(), weatherSvc, prober, lunarSvc, quoteSvc)

	pages := []string{display.PageClock, display.PageWeather, display.PageStatus}
	if only != "" {
		switch only {
		case display.PageClock, display.PageWeather, display.PageStatus:
			pages = []string{only}
		default:
			return fmt.Errorf("unknown page %q", only)
		}
	}

	// The frame sink and page renderers live outside this repository; a
	// headless run draws black frames into a discarding sink.
	var sink display.FrameSink = display.Noop{}
	render := display.BlankRender(cfg.Display.Width, cfg.Display.Height)
	defer sink.Close()

	logger.Info().Strs("pages", pages).Msg("panel starting")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { prober.Run(ctx); return nil })
	g.Go(func() error { weatherSvc.Run(ctx); return nil })
	g.Go(func() error { quoteSvc.Run(ctx); return nil })
	g.Go(func() error { lunarSvc.Run(ctx); return nil })
	g.Go(func() error {
		return renderLoop(ctx, cfg, cl, builder, queue, sink, render, pages, logger)
	})

	err := g.Wait()
	logger.Info().Msg("panel stopped")
	return err
}

// renderLoop is the single-threaded 1 Hz consumer. It never performs
// network I/O: it only reads already-published cells, arbitrates the
// ticker and hands one frame to the sink.
func renderLoop(
	ctx context.Context,
	cfg *config.Panel,
	cl clock.Clock,
	builder *snapshot.Builder,
	queue *ticker.Queue,
	sink display.FrameSink,
	render display.Render,
	pages []string,
	logger zerolog.Logger,
) error {
	tick := cl.Ticker(renderInterval)
	defer tick.Stop()

	pageIdx := 0
	pageStart := cl.Now()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-tick.C:
		}

		snap := builder.Build()

		if text, ok := snap.Alert(); ok {
			queue.Push(text, alertTTL, alertPriority)
		}

		text := queue.Current()
		if text == "" {
			text = cfg.UI.FallbackText
		}

		if cl.Now().Sub(pageStart) >= cfg.Display.PageCycle() {
			pageStart = cl.Now()
			pageIdx = (pageIdx + 1) % len(pages)
		}

		frame := render(snap, text, pages[pageIdx])
		if err := sink.Show(frame); err != nil {
			logger.Warn().Err(err).Msg("frame sink rejected frame")
		}
	}
}

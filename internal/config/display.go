package config

import "time"

type DisplayCfg struct {
	// Width and Height describe the frame buffer handed to the frame sink,
	// in pixels. The renderer never produces any other size.
	Width  int `yaml:"w"`
	Height int `yaml:"h"`

	// Brightness is the backlight duty cycle in percent.
	Brightness int `yaml:"brightness"`

	// PageCycleSeconds is how long each page stays up before the panel
	// rotates to the next one.
	PageCycleSeconds int `yaml:"page_cycle_seconds"`
}

func (cfg *DisplayCfg) adjust() {
	if cfg.Width <= 0 {
		cfg.Width = 240
	}
	if cfg.Height <= 0 {
		cfg.Height = 320
	}
	if cfg.Brightness <= 0 || cfg.Brightness > 100 {
		cfg.Brightness = 80
	}
	if cfg.PageCycleSeconds <= 0 {
		cfg.PageCycleSeconds = 12
	}
}

func (cfg *DisplayCfg) PageCycle() time.Duration {
	return time.Duration(cfg.PageCycleSeconds) * time.Second
}

type UICfg struct {
	// TickerHeight is the pixel height of the scrolling ticker strip.
	TickerHeight int `yaml:"ticker_height"`

	// TickerSpeed is the scroll speed in pixels per second.
	TickerSpeed float64 `yaml:"ticker_speed_px_per_s"`

	// FallbackText is shown on the ticker whenever the message queue has
	// no live item.
	FallbackText string `yaml:"fallback_text"`
}

func (cfg *UICfg) adjust() {
	if cfg.TickerHeight <= 0 {
		cfg.TickerHeight = 28
	}
	if cfg.TickerSpeed <= 0 {
		cfg.TickerSpeed = 40
	}
	if cfg.FallbackText == "" {
		cfg.FallbackText = "TIP: all quiet."
	}
}

package config

import "time"

type TextAPICfg struct {
	// Host serves both the random-text and lunar-calendar endpoints.
	Host string `yaml:"host"`

	// APIKey goes into the query string ("key="), unlike the weather API
	// which authenticates via header.
	APIKey string `yaml:"api_key"`

	// QuoteType selects the random-text category on the remote side.
	QuoteType int `yaml:"quote_type"`

	TimeoutSeconds float64 `yaml:"timeout_seconds"`

	// QuoteRefreshSeconds doubles as the pushed ticker item's TTL, so at
	// most one quote is normally live at a time.
	QuoteRefreshSeconds int `yaml:"quote_refresh_seconds"`
	LunarRefreshSeconds int `yaml:"lunar_refresh_seconds"`

	// QuotePriority is the ticker priority of pushed quotes. Lower is more
	// urgent; alerts use priority 1.
	QuotePriority int `yaml:"quote_priority"`

	BackoffFloorSeconds   int `yaml:"backoff_floor_seconds"`
	BackoffCeilingSeconds int `yaml:"backoff_ceiling_seconds"`

	RatePerSec int `yaml:"rate_per_sec"`
}

func (cfg *TextAPICfg) adjust() {
	if cfg.Host == "" {
		cfg.Host = "api.shwgij.com"
	}
	if cfg.QuoteType <= 0 {
		cfg.QuoteType = 5
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 2
	}
	if cfg.QuoteRefreshSeconds <= 0 {
		cfg.QuoteRefreshSeconds = 600
	}
	if cfg.LunarRefreshSeconds <= 0 {
		cfg.LunarRefreshSeconds = 3600
	}
	if cfg.QuotePriority <= 0 {
		cfg.QuotePriority = 20
	}
	if cfg.BackoffFloorSeconds <= 0 {
		cfg.BackoffFloorSeconds = 5
	}
	if cfg.BackoffCeilingSeconds < cfg.BackoffFloorSeconds {
		cfg.BackoffCeilingSeconds = 300
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 1
	}
}

func (cfg *TextAPICfg) Enabled() bool {
	return cfg != nil
}

func (cfg *TextAPICfg) Timeout() time.Duration {
	return time.Duration(cfg.TimeoutSeconds * float64(time.Second))
}

func (cfg *TextAPICfg) QuoteRefresh() time.Duration {
	return time.Duration(cfg.QuoteRefreshSeconds) * time.Second
}

func (cfg *TextAPICfg) LunarRefresh() time.Duration {
	return time.Duration(cfg.LunarRefreshSeconds) * time.Second
}

func (cfg *TextAPICfg) BackoffFloor() time.Duration {
	return time.Duration(cfg.BackoffFloorSeconds) * time.Second
}

func (cfg *TextAPICfg) BackoffCeiling() time.Duration {
	return time.Duration(cfg.BackoffCeilingSeconds) * time.Second
}

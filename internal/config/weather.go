package config

import "time"

type WeatherCfg struct {
	// Host is the per-account QWeather API host from the console, without
	// scheme (e.g. "abc123.re.qweatherapi.com").
	Host string `yaml:"host"`

	// APIKey is sent on every request via the X-QW-Api-Key header.
	// A missing key is surfaced as an ordinary fetch failure on each
	// attempt, never as a startup error.
	APIKey string `yaml:"api_key"`

	// Lang and Unit are passed through to the API verbatim.
	Lang string `yaml:"lang"`
	Unit string `yaml:"unit"`

	TimeoutSeconds float64 `yaml:"timeout_seconds"`

	// RefreshSeconds is the interval between successful weather fetches.
	RefreshSeconds int `yaml:"refresh_seconds"`

	// BackoffFloorSeconds/BackoffCeilingSeconds bound the retry delay after
	// consecutive failures: floor, doubled per failure, capped at ceiling.
	BackoffFloorSeconds   int `yaml:"backoff_floor_seconds"`
	BackoffCeilingSeconds int `yaml:"backoff_ceiling_seconds"`

	// RatePerSec caps outbound API requests client-side. Free QWeather
	// accounts are rate limited server-side; staying under the cap avoids
	// burning attempts on 429s.
	RatePerSec int `yaml:"rate_per_sec"`

	Lookup LookupCfg `yaml:"lookup"`
}

type LookupCfg struct {
	// LocationText is the city query used to resolve a location id when no
	// explicit LocationID is configured. The resolved id is cached on disk
	// indefinitely; it is reference data, not live data.
	LocationText string `yaml:"location_text"`

	// LocationID, when set, skips the geo lookup entirely.
	LocationID string `yaml:"location_id"`

	Range  string `yaml:"range"`
	Number int    `yaml:"number"`
}

func (cfg *WeatherCfg) adjust() {
	if cfg.Lang == "" {
		cfg.Lang = "en"
	}
	if cfg.Unit == "" {
		cfg.Unit = "m"
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = 5
	}
	if cfg.RefreshSeconds <= 0 {
		cfg.RefreshSeconds = 600
	}
	if cfg.BackoffFloorSeconds <= 0 {
		cfg.BackoffFloorSeconds = 5
	}
	if cfg.BackoffCeilingSeconds < cfg.BackoffFloorSeconds {
		cfg.BackoffCeilingSeconds = 300
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 2
	}
	if cfg.Lookup.Range == "" {
		cfg.Lookup.Range = "cn"
	}
	if cfg.Lookup.Number <= 0 {
		cfg.Lookup.Number = 1
	}
}

func (cfg *WeatherCfg) Enabled() bool {
	return cfg != nil
}

func (cfg *WeatherCfg) Timeout() time.Duration {
	return time.Duration(cfg.TimeoutSeconds * float64(time.Second))
}

func (cfg *WeatherCfg) Refresh() time.Duration {
	return time.Duration(cfg.RefreshSeconds) * time.Second
}

func (cfg *WeatherCfg) BackoffFloor() time.Duration {
	return time.Duration(cfg.BackoffFloorSeconds) * time.Second
}

func (cfg *WeatherCfg) BackoffCeiling() time.Duration {
	return time.Duration(cfg.BackoffCeilingSeconds) * time.Second
}

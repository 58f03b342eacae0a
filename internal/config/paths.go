package config

import (
	"os"
	"path/filepath"
	"strings"
)

type PathsCfg struct {
	// StateDir holds the small JSON seed files written after successful
	// fetches. It is created on demand; "~" expands to the home dir.
	StateDir string `yaml:"state_dir"`

	GeoCache      string `yaml:"geo_cache"`
	WeatherCache  string `yaml:"weather_cache"`
	ForecastCache string `yaml:"forecast_cache"`
}

func (cfg *PathsCfg) adjust() {
	if cfg.StateDir == "" {
		cfg.StateDir = "~/.local/state/deskpetd"
	}
	if cfg.GeoCache == "" {
		cfg.GeoCache = "geo_cache.json"
	}
	if cfg.WeatherCache == "" {
		cfg.WeatherCache = "weather_now.json"
	}
	if cfg.ForecastCache == "" {
		cfg.ForecastCache = "forecast_cache.json"
	}
}

// ExpandedStateDir resolves a leading "~" against the current user's home.
func (cfg *PathsCfg) ExpandedStateDir() string {
	dir := cfg.StateDir
	if strings.HasPrefix(dir, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
		}
	}
	return dir
}

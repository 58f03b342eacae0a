package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Panel is the root configuration record. It is loaded once at startup and
// treated as immutable afterwards.
type Panel struct {
	Display *DisplayCfg `yaml:"display"`
	UI      *UICfg      `yaml:"ui"`
	Network *NetworkCfg `yaml:"network"`
	Weather *WeatherCfg `yaml:"qweather"`
	TextAPI *TextAPICfg `yaml:"textapi"`
	Paths   *PathsCfg   `yaml:"paths"`
}

// AdjustConfig fills in derived and defaulted values after unmarshalling.
func (cfg *Panel) AdjustConfig() {
	if cfg.Display == nil {
		cfg.Display = &DisplayCfg{}
	}
	cfg.Display.adjust()

	if cfg.UI == nil {
		cfg.UI = &UICfg{}
	}
	cfg.UI.adjust()

	if cfg.Network == nil {
		cfg.Network = &NetworkCfg{}
	}
	cfg.Network.adjust()

	// Missing API sections still produce usable (unconfigured) clients:
	// an absent key surfaces as an ordinary fetch failure per attempt, so
	// the panel degrades to permanently-stale instead of refusing to start.
	if cfg.Weather == nil {
		cfg.Weather = &WeatherCfg{}
	}
	cfg.Weather.adjust()

	if cfg.TextAPI == nil {
		cfg.TextAPI = &TextAPICfg{}
	}
	cfg.TextAPI.adjust()

	if cfg.Paths == nil {
		cfg.Paths = &PathsCfg{}
	}
	cfg.Paths.adjust()
}

func LoadConfig(path string) (*Panel, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Panel
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	cfg.AdjustConfig()

	return cfg, nil
}

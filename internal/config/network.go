package config

import "time"

type NetworkCfg struct {
	// ConnectTestHost and ConnectTestPort are the target of the outbound
	// reachability probe. A plain TCP connect is enough; no payload is sent.
	ConnectTestHost string `yaml:"connect_test_host"`
	ConnectTestPort int    `yaml:"connect_test_port"`

	// ConnectTimeoutSeconds bounds a single probe attempt.
	ConnectTimeoutSeconds float64 `yaml:"connect_timeout"`

	// RefreshSeconds is the fixed probe cadence. The probe never backs off:
	// an unreachable network is a result, not a fetch failure.
	RefreshSeconds int `yaml:"refresh_seconds"`
}

func (cfg *NetworkCfg) adjust() {
	if cfg.ConnectTestHost == "" {
		cfg.ConnectTestHost = "1.1.1.1"
	}
	if cfg.ConnectTestPort <= 0 || cfg.ConnectTestPort > 65535 {
		cfg.ConnectTestPort = 53
	}
	if cfg.ConnectTimeoutSeconds <= 0 {
		cfg.ConnectTimeoutSeconds = 2
	}
	if cfg.RefreshSeconds <= 0 {
		cfg.RefreshSeconds = 10
	}
}

func (cfg *NetworkCfg) ConnectTimeout() time.Duration {
	return time.Duration(cfg.ConnectTimeoutSeconds * float64(time.Second))
}

func (cfg *NetworkCfg) Refresh() time.Duration {
	return time.Duration(cfg.RefreshSeconds) * time.Second
}

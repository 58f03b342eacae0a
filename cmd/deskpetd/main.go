package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/deskpet/panel/internal/config"
)

// Build variables - set by ldflags during build.
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

func main() {
	var configPath string
	var showVersion bool
	var page string
	var debug bool

	flag.StringVar(&configPath, "config", "", "config file (default is $HOME/.config/deskpetd/config.yml)")
	flag.BoolVar(&showVersion, "version", false, "print version information")
	flag.StringVar(&page, "page", "", "pin the panel to a single page (clock|weather|status)")
	flag.BoolVar(&debug, "debug", false, "enable debug logging")
	flag.Parse()

	if showVersion {
		fmt.Printf("deskpetd - desk panel daemon\n")
		fmt.Printf("  Version: %s\n", version)
		fmt.Printf("  Commit:  %s\n", commit)
		fmt.Printf("  Built:   %s\n", buildTime)
		return
	}

	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
	// Leaf packages log through the global.
	log.Logger = logger

	if configPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.Fatal().Err(err).Msg("finding home directory")
		}
		configPath = filepath.Join(home, ".config", "deskpetd", "config.yml")
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("loading config")
	}

	if err := run(cfg, logger, page); err != nil {
		logger.Fatal().Err(err).Msg("panel exited")
	}
}

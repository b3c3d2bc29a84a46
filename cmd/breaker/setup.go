package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/brick-breaker/internal/config"
	"github.com/vovakirdan/brick-breaker/internal/game"
	"github.com/vovakirdan/brick-breaker/internal/registry"
)

// customLayout is the ledger name of an inline layout without a name.
const customLayout = "custom"

// newLogger builds the process logger. Logs go to --log-file when given,
// otherwise to fallback.
func newLogger(fallback io.Writer) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	w, closer := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          "breaker",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return logger, closer, nil
}

// loadConfig loads the configuration and applies --difficulty and --level.
func loadConfig() (config.Config, string, error) {
	cfg, source, err := config.LoadWithSource(flagConfig)
	if err != nil {
		return config.Config{}, "", err
	}

	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.Config{}, "", err
	}
	config.ApplyPreset(&cfg, preset)

	if flagLevel != "" {
		if !registry.Exists(flagLevel) {
			return config.Config{}, "", fmt.Errorf("unknown level %q (run 'breaker levels')", flagLevel)
		}
		cfg.Level = flagLevel
		cfg.Layout = nil
	}

	if err := cfg.Validate(); err != nil {
		return config.Config{}, "", err
	}
	return cfg, source, nil
}

// seed returns --seed, or a time based seed when it is zero.
func seed() int64 {
	if flagSeed != 0 {
		return flagSeed
	}
	return time.Now().UnixNano()
}

// layoutName is the name runs are recorded under.
func layoutName(eng *game.Engine) string {
	if name := eng.Layout().Name; name != "" {
		return name
	}
	return customLayout
}

package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func parseLevel(s string) (zapcore.Level, error) {
	if strings.TrimSpace(s) == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(s)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return lvl, nil
}

// newLogger builds a production JSON logger writing to output. verbose forces
// debug level.
func newLogger(cfg LoggingConfig, output string, verbose bool) (*zap.Logger, error) {
	lvl, err := parseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(lvl)
	config.OutputPaths = []string{output}
	config.ErrorOutputPaths = []string{output}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// newTUILogger logs to the configured file. The terminal belongs to the UI,
// so without a file nothing is logged.
func newTUILogger(cfg LoggingConfig, verbose bool) (*zap.Logger, error) {
	if strings.TrimSpace(cfg.File) == "" {
		return zap.NewNop(), nil
	}
	return newLogger(cfg, cfg.File, verbose)
}

// newCLILogger logs to the configured file, or to stderr at warn level.
func newCLILogger(cfg LoggingConfig, verbose bool) (*zap.Logger, error) {
	if strings.TrimSpace(cfg.File) != "" {
		return newLogger(cfg, cfg.File, verbose)
	}
	stderrCfg := cfg
	if !verbose {
		stderrCfg.Level = "warn"
	}
	return newLogger(stderrCfg, "stderr", verbose)
}

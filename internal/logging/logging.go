package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Output formats accepted by New
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// ParseLevel maps a level name onto a zap level. An empty name means info.
func ParseLevel(levelStr string) (zapcore.Level, error) {
	levelStr = strings.TrimSpace(levelStr)
	if levelStr == "" {
		return zapcore.InfoLevel, nil
	}
	lvl, err := zapcore.ParseLevel(levelStr)
	if err != nil {
		return lvl, fmt.Errorf("invalid log level %q: %w", levelStr, err)
	}
	return lvl, nil
}

// New builds a zap logger writing to stderr. The json format uses the production
// encoder; console uses the development encoder.
func New(levelStr, format string) (*zap.Logger, error) {
	lvl, err := ParseLevel(levelStr)
	if err != nil {
		return nil, err
	}

	var cfg zap.Config
	switch strings.ToLower(format) {
	case FormatJSON:
		cfg = zap.NewProductionConfig()
	case FormatConsole, "":
		cfg = zap.NewDevelopmentConfig()
		cfg.DisableStacktrace = true
	default:
		return nil, fmt.Errorf("unsupported log format %q (use %s or %s)", format, FormatConsole, FormatJSON)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

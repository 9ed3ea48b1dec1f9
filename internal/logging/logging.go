// Package logging builds the zap loggers used by the CLI and the TUI.
package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a production logger writing JSON lines to path, or to stderr
// when path is empty. The interactive UI passes a file path so log output
// does not tear the terminal; with no path it runs with a no-op logger.
func New(path string, verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	cfg.DisableStacktrace = !verbose
	out := strings.TrimSpace(path)
	if out == "" {
		out = "stderr"
	}
	cfg.OutputPaths = []string{out}
	cfg.ErrorOutputPaths = []string{"stderr"}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// ForUI returns a file logger when path is set, otherwise a no-op logger.
func ForUI(path string, verbose bool) (*zap.Logger, error) {
	if strings.TrimSpace(path) == "" {
		return zap.NewNop(), nil
	}
	return New(path, verbose)
}

// ForCLI logs to path, or to stderr when verbose. Otherwise it is silent so
// command output stays clean.
func ForCLI(path string, verbose bool) (*zap.Logger, error) {
	if strings.TrimSpace(path) == "" && !verbose {
		return zap.NewNop(), nil
	}
	return New(path, verbose)
}

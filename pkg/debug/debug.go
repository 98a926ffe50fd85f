// Package debug provides conditional debug logging for feedlens.
//
// Debug logging is enabled by setting the FEEDLENS_DEBUG environment variable
// or passing --verbose:
//
//	FEEDLENS_DEBUG=1 feedlens print
//
// While the dashboard owns the terminal, log lines go to a file
// (FEEDLENS_DEBUG_FILE, or debug.log in the state directory) instead of stderr.
// When disabled (default), all debug functions are no-ops.
//
// Usage:
//
//	debug.Log("loaded %d rows", n)
//	defer debug.LogEnterExit("reload")()
package debug

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Environment variables controlling debug output.
const (
	EnvDebug     = "FEEDLENS_DEBUG"
	EnvDebugFile = "FEEDLENS_DEBUG_FILE"
)

var (
	mu      sync.RWMutex
	enabled bool
	logger  = zap.NewNop()
)

func init() {
	if os.Getenv(EnvDebug) != "" {
		if l, err := build(""); err == nil {
			enabled = true
			logger = l
		}
	}
}

// Options configures Setup.
type Options struct {
	Enabled bool
	// Path is the log file; empty writes to stderr.
	Path string
}

// Setup replaces the process logger. The returned func flushes it.
func Setup(opts Options) (func(), error) {
	if !opts.Enabled && os.Getenv(EnvDebug) == "" {
		SetLogger(zap.NewNop())
		return func() {}, nil
	}
	path := opts.Path
	if path == "" {
		path = os.Getenv(EnvDebugFile)
	}
	l, err := build(path)
	if err != nil {
		return func() {}, fmt.Errorf("failed to initialize logger: %w", err)
	}
	mu.Lock()
	enabled = true
	logger = l
	mu.Unlock()
	return func() { _ = l.Sync() }, nil
}

func build(path string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	cfg.DisableStacktrace = true
	if path != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
		cfg.OutputPaths = []string{path}
		cfg.ErrorOutputPaths = []string{path}
	} else {
		cfg.OutputPaths = []string{"stderr"}
	}
	return cfg.Build()
}

// SetLogger installs l as the process logger. Passing nil installs a no-op logger.
func SetLogger(l *zap.Logger) {
	mu.Lock()
	defer mu.Unlock()
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
	enabled = l.Core().Enabled(zapcore.DebugLevel)
}

// L returns the process logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

// Enabled returns whether debug logging is enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// Log writes a debug message if debug logging is enabled.
// Uses printf-style formatting.
func Log(format string, args ...any) {
	if !Enabled() {
		return
	}
	L().Sugar().Debugf(format, args...)
}

// LogTiming writes a timing message if debug logging is enabled.
func LogTiming(name string, d time.Duration) {
	if !Enabled() {
		return
	}
	L().Debug("timing", zap.String("op", name), zap.Duration("took", d))
}

// LogEnterExit logs function entry and exit with timing.
//
//	defer debug.LogEnterExit("reload")()
func LogEnterExit(name string) func() {
	if !Enabled() {
		return func() {}
	}
	L().Debug("-> " + name)
	start := time.Now()
	return func() {
		L().Debug("<- "+name, zap.Duration("took", time.Since(start)))
	}
}

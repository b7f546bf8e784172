// Package logging builds the client's file-backed zap logger. Stdout belongs
// to the TUI renderer, so everything goes to a log file instead.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New opens a zap logger appending to the given path, creating parent
// directories as needed. An empty path or an unwritable file yields a
// no-op logger rather than an error: logging is never a reason to refuse
// to start.
func New(path, level string) *zap.Logger {
	if path == "" {
		return zap.NewNop()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return zap.NewNop()
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return zap.NewNop()
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.AddSync(f),
		parseLevel(level),
	)
	return zap.New(core)
}

func parseLevel(level string) zapcore.Level {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return l
}

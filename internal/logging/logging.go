// Package logging wraps go.uber.org/zap with the two loggers pstops needs:
// a human-readable progress logger (the default) and a discard logger for
// -q. It mirrors psutils' verbose/message(LOG, ...) calls, which print one
// line per emitted page plus a final pages/bytes summary.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the small surface pstops needs from zap: page-by-page
// progress, a closing summary, and fatal-error reporting.
type Logger struct {
	base *zap.Logger
}

// New builds a console logger. When quiet is true, logging is a no-op.
func New(quiet bool) (*Logger, error) {
	if quiet {
		return &Logger{base: zap.NewNop()}, nil
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.EncoderConfig.CallerKey = ""
	cfg.EncoderConfig.LevelKey = ""
	cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)

	base, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &Logger{base: base}, nil
}

// Page logs one emitted output page, identified by its composite label.
func (l *Logger) Page(label string) {
	l.base.Info("emitted page", zap.String("label", label))
}

// Summary logs the final pages-written/bytes-written counters.
func (l *Logger) Summary(outputPages int, bytesWritten int64) {
	l.base.Info("wrote document",
		zap.Int("pages", outputPages),
		zap.Int64("bytes", bytesWritten))
}

// Fatal logs a terminal error before the process exits non-zero.
func (l *Logger) Fatal(err error) {
	l.base.Error("fatal", zap.Error(err))
}

// Sync flushes any buffered log entries.
func (l *Logger) Sync() error {
	return l.base.Sync()
}

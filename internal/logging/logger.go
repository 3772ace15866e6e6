// Package logging wraps zap to provide the three observational levels
// the engine calls out to: force, debug, and trace.
package logging

import "go.uber.org/zap"

// Logger is the engine's logging sink. Every method is purely
// observational — nothing here ever changes control flow.
type Logger struct {
	z *zap.Logger
}

// New wraps an existing zap logger.
func New(z *zap.Logger) *Logger {
	if z == nil {
		z = zap.NewNop()
	}
	return &Logger{z: z}
}

// Noop returns a Logger that discards everything, the default for a
// zero-value Config.
func Noop() *Logger {
	return &Logger{z: zap.NewNop()}
}

// Force logs at a level that always reaches the sink, regardless of the
// configured verbosity — used for info's forced dump.
func (l *Logger) Force(msg string, fields ...zap.Field) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Info(msg, fields...)
}

// Debug logs split/coalesce/search decisions.
func (l *Logger) Debug(msg string, fields ...zap.Field) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Debug(msg, fields...)
}

// Trace logs the finest-grained per-cell walk steps. zap has no distinct
// trace level, so this rides on Debug with a "trace" marker field —
// filtering trace lines back out is a matter of filtering on that field.
func (l *Logger) Trace(msg string, fields ...zap.Field) {
	if l == nil || l.z == nil {
		return
	}
	l.z.Debug(msg, append(fields, zap.Bool("trace", true))...)
}

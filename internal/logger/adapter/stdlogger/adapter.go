// Package stdlogger adapts the global zerolog logger to printf style logger interfaces.
package stdlogger

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger is a printf style logger backed by zerolog.
type Logger struct {
	zl *zerolog.Logger
}

// New returns a Logger writing to the global zerolog logger.
func New() *Logger {
	return &Logger{zl: &log.Logger}
}

// Infof logs on info level.
func (l *Logger) Infof(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

// Warningf logs on warn level.
func (l *Logger) Warningf(format string, args ...any) {
	l.zl.Warn().Msgf(format, args...)
}

// Errorf logs on error level.
func (l *Logger) Errorf(format string, args ...any) {
	l.zl.Error().Msgf(format, args...)
}

// Debugf logs on debug level.
func (l *Logger) Debugf(format string, args ...any) {
	l.zl.Debug().Msgf(format, args...)
}

// Printf logs on info level, it satisfies the gorm logger writer.
func (l *Logger) Printf(format string, args ...any) {
	l.zl.Info().Msgf(format, args...)
}

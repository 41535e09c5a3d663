package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// Log levels, ordered from least to most verbose.
type Level int

const (
	LevelError Level = iota
	LevelWarn
	LevelInfo
	LevelDebug
)

// Output formats for log records.
type Format int

const (
	FormatJSON Format = iota
	FormatPretty
)

// Levels and Formats map the enum values to their flag spellings. They are
// consumed by the CLI's enumflag definitions.
var (
	Levels = map[Level][]string{
		LevelError: {"error"},
		LevelWarn:  {"warn", "warning"},
		LevelInfo:  {"info"},
		LevelDebug: {"debug"},
	}
	Formats = map[Format][]string{
		FormatJSON:   {"json"},
		FormatPretty: {"pretty", "console"},
	}
)

type Config struct {
	Level  Level
	Format Format
	Output io.Writer // defaults to stderr
}

// Logger is a thin wrapper around zerolog that exposes the printf-style
// interface the rest of the codebase logs through.
type Logger struct {
	log zerolog.Logger
}

func NewLogger(c Config) *Logger {
	w := c.Output
	if w == nil {
		w = os.Stderr
	}
	if c.Format == FormatPretty {
		w = zerolog.ConsoleWriter{Out: w}
	}

	return &Logger{
		log: zerolog.New(w).Level(zerologLevel(c.Level)).With().Timestamp().Logger(),
	}
}

// NewNopLogger returns a logger that discards everything. Useful as a default
// for library callers that do not care about logs.
func NewNopLogger() *Logger {
	return &Logger{log: zerolog.Nop()}
}

func (l *Logger) WithField(key string, value any) *Logger {
	return &Logger{log: l.log.With().Interface(key, value).Logger()}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *Logger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

func zerologLevel(level Level) zerolog.Level {
	switch level {
	case LevelDebug:
		return zerolog.DebugLevel
	case LevelInfo:
		return zerolog.InfoLevel
	case LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

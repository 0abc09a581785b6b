package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/02loveslollipop/gfsi-dashboard/services/dashboard/config"
)

// Logger is a structured logger wrapper around zerolog.
type Logger struct {
	zlog zerolog.Logger
}

// New creates a Logger writing to stdout, formatted per cfg.LogFormat.
func New(cfg config.Config) *Logger {
	var output io.Writer = os.Stdout
	if cfg.LogFormat == "console" || cfg.LogFormat == "pretty" {
		output = zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		}
	}
	return NewWithWriter(cfg, output)
}

// NewWithWriter creates a Logger writing JSON lines to w.
func NewWithWriter(cfg config.Config, w io.Writer) *Logger {
	zlog := zerolog.New(w).
		Level(parseLogLevel(cfg.LogLevel)).
		With().
		Timestamp().
		Str("env", cfg.Env).
		Logger()

	return &Logger{zlog: zlog}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{zlog: zerolog.Nop()}
}

func parseLogLevel(levelStr string) zerolog.Level {
	switch strings.ToLower(levelStr) {
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "fatal":
		return zerolog.FatalLevel
	default:
		return zerolog.InfoLevel
	}
}

func (l *Logger) Debug(msg string) { l.zlog.Debug().Msg(msg) }
func (l *Logger) Info(msg string) { l.zlog.Info().Msg(msg) }
func (l *Logger) Warn(msg string) { l.zlog.Warn().Msg(msg) }
func (l *Logger) Error(msg string) { l.zlog.Error().Msg(msg) }

func (l *Logger) Infof(format string, args ...any) { l.zlog.Info().Msgf(format, args...) }
func (l *Logger) Warnf(format string, args ...any) { l.zlog.Warn().Msgf(format, args...) }

// Fields are attached to every entry of a derived logger, e.g. load stats
// or a request's method and path.
type Fields map[string]any

func (l *Logger) with(add func(zerolog.Context) zerolog.Context) *Logger {
	return &Logger{zlog: add(l.zlog.With()).Logger()}
}

func (l *Logger) WithField(key string, value any) *Logger {
	return l.with(func(c zerolog.Context) zerolog.Context { return c.Interface(key, value) })
}

func (l *Logger) WithFields(fields Fields) *Logger {
	return l.with(func(c zerolog.Context) zerolog.Context { return c.Fields(map[string]any(fields)) })
}

func (l *Logger) WithError(err error) *Logger {
	return l.with(func(c zerolog.Context) zerolog.Context { return c.Err(err) })
}

// SetDebug lowers the level to debug, used by --verbose.
func (l *Logger) SetDebug() {
	l.zlog = l.zlog.Level(zerolog.DebugLevel)
}

package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger writing to stderr so that log
// lines do not interleave with the operator console on stdout. APP_ENV=dev
// selects the human readable console writer.
func NewZerologLogger(component string) Logger {
	return NewZerologLoggerTo(os.Stderr, component)
}

// NewZerologLoggerTo is NewZerologLogger with an explicit writer.
func NewZerologLoggerTo(w io.Writer, component string) Logger {
	env := strings.ToLower(os.Getenv("APP_ENV"))
	out := w
	if env == "dev" {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	z := zerolog.New(out).Level(levelFromEnv()).With().Timestamp().Str("component", component).Logger()
	return &ZerologLogger{log: z}
}

func levelFromEnv() zerolog.Level {
	lvl, err := zerolog.ParseLevel(strings.ToLower(os.Getenv("LOG_LEVEL")))
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return lvl
}

// SetGlobalLevel caps every logger at the named level. An empty name leaves
// the level unchanged.
func SetGlobalLevel(name string) error {
	if name == "" {
		return nil
	}
	lvl, err := zerolog.ParseLevel(strings.ToLower(name))
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(lvl)
	return nil
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Infow(msg string, fields map[string]any) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}

// Package logger is the process-wide structured logger. Call sites pass
// a message plus alternating key/value pairs.
package logger

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Disabled until Init runs so library code can log unconditionally.
var log = zerolog.Nop()

// Init configures the global logger. Development gets a human-readable
// console writer at debug level; everything else logs JSON at info level.
func Init(environment string) {
	zerolog.TimeFieldFormat = time.RFC3339

	if environment == "development" {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
			Level(zerolog.DebugLevel).
			With().Timestamp().Logger()
		return
	}

	log = zerolog.New(os.Stderr).
		Level(zerolog.InfoLevel).
		With().Timestamp().Logger()
}

func Debug(msg string, keyvals ...any) {
	emit(log.Debug(), msg, keyvals)
}

func Info(msg string, keyvals ...any) {
	emit(log.Info(), msg, keyvals)
}

func Warn(msg string, keyvals ...any) {
	emit(log.Warn(), msg, keyvals)
}

func Error(msg string, keyvals ...any) {
	emit(log.Error(), msg, keyvals)
}

// Fatal logs and exits with status 1.
func Fatal(msg string, keyvals ...any) {
	emit(log.Fatal(), msg, keyvals)
}

func emit(e *zerolog.Event, msg string, keyvals []any) {
	for i := 0; i+1 < len(keyvals); i += 2 {
		key, ok := keyvals[i].(string)
		if !ok {
			continue
		}
		e = e.Interface(key, keyvals[i+1])
	}
	e.Msg(msg)
}

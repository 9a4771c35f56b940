package logger

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
)

var plain zerolog.Logger

// Init initializes the plain startup logger. Call before InitStructured;
// wiring code logs through these helpers before the env is known.
func Init() {
	plain = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
}

// Info logs a formatted info message
func Info(format string, args ...interface{}) {
	plain.Info().Msg(fmt.Sprintf(format, args...))
}

// Warn logs a formatted warning message
func Warn(format string, args ...interface{}) {
	plain.Warn().Msg(fmt.Sprintf(format, args...))
}

// Error logs a formatted error message
func Error(format string, args ...interface{}) {
	plain.Error().Msg(fmt.Sprintf(format, args...))
}

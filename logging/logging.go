// Package logging provides the optional logging hook shared by the protocol
// packages. The library logs through the small Logger interface so callers can
// plug in any framework; NewLogrus adapts a logrus logger, Nop discards
// everything and is the default.
package logging

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Logger receives structured log messages with alternating key-value pairs.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// Nop returns a Logger that discards all messages.
func Nop() Logger { return nopLogger{} }

// NewLogrus adapts a logrus logger (or entry) to the Logger interface,
// mapping key-value pairs to logrus fields.
func NewLogrus(l logrus.FieldLogger) Logger {
	return &logrusLogger{l: l}
}

type logrusLogger struct {
	l logrus.FieldLogger
}

func (a *logrusLogger) Debug(msg string, keysAndValues ...interface{}) {
	a.l.WithFields(toFields(keysAndValues)).Debug(msg)
}

func (a *logrusLogger) Info(msg string, keysAndValues ...interface{}) {
	a.l.WithFields(toFields(keysAndValues)).Info(msg)
}

func (a *logrusLogger) Error(msg string, keysAndValues ...interface{}) {
	a.l.WithFields(toFields(keysAndValues)).Error(msg)
}

func toFields(kv []interface{}) logrus.Fields {
	fields := make(logrus.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			key = fmt.Sprint(kv[i])
		}
		fields[key] = kv[i+1]
	}
	return fields
}

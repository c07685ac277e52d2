// Package log defines the thin logging interface the core depends on,
// so that call sites never import logrus directly. The concrete
// implementation backing it is logrus.
package log

import "github.com/sirupsen/logrus"

// Logger is the minimal surface the core logs through.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// logrusLogger adapts *logrus.Logger to Logger.
type logrusLogger struct {
	*logrus.Logger
}

// New returns a Logger backed by a fresh logrus.Logger with a bare text
// formatter, at Info level.
func New() Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{})
	l.SetLevel(logrus.InfoLevel)
	return &logrusLogger{l}
}

// Noop returns a Logger that discards everything, useful for tests.
func Noop() Logger {
	l := logrus.New()
	l.SetOutput(discard{})
	return &logrusLogger{l}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// Package log provides the logging interface used throughout the
// emulator, and a logrus backed implementation of it.
package log

import (
	"os"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

type Logger interface {
	Infof(format string, args ...interface{})
	Errorf(format string, args ...interface{})
	Debugf(format string, args ...interface{})
	Fatal(args ...interface{})
}

// New returns a Logger writing to stderr. Colours are only used
// when stderr is attached to a terminal.
func New() Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetLevel(logrus.InfoLevel)
	l.Formatter = &logrus.TextFormatter{
		DisableColors:    !term.IsTerminal(int(os.Stderr.Fd())),
		DisableTimestamp: true,
		DisableSorting:   true,
		DisableQuote:     true,
	}
	return l
}

// NewDebug is the same as New, but logs at debug level.
func NewDebug() Logger {
	l := New().(*logrus.Logger)
	l.SetLevel(logrus.DebugLevel)
	return l
}

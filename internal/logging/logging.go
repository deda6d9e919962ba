// Package logging provides component-scoped loggers for subtle.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var root = newRoot()

func newRoot() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})

	level := logrus.WarnLevel
	if env := os.Getenv("SUBTLE_LOG_LEVEL"); env != "" {
		if parsed, err := logrus.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	l.SetLevel(level)
	return l
}

// NewLogger returns a logger entry tagged with the given component name.
func NewLogger(component string) *logrus.Entry {
	return root.WithField("component", component)
}

// SetLevel overrides the log level for all component loggers.
func SetLevel(level logrus.Level) {
	root.SetLevel(level)
}

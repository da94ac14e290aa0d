package logger

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// Logger implements ports.Logger on top of logrus. It is silent unless verbose.
type Logger struct {
	entry *logrus.Logger
}

// New creates a Logger writing to stderr when verbose is set.
func New(verbose bool) *Logger {
	return NewWithWriter(verbose, os.Stderr)
}

// NewWithWriter creates a Logger writing to w when verbose is set.
func NewWithWriter(verbose bool, w io.Writer) *Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		l.SetOutput(w)
		l.SetLevel(logrus.DebugLevel)
	} else {
		l.SetOutput(io.Discard)
		l.SetLevel(logrus.PanicLevel)
	}
	return &Logger{entry: l}
}

func (l *Logger) Debug(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Debug(msg)
}

func (l *Logger) Info(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Info(msg)
}

func (l *Logger) Warn(msg string, fields map[string]interface{}) {
	l.entry.WithFields(fields).Warn(msg)
}

func (l *Logger) Error(msg string, err error, fields map[string]interface{}) {
	l.entry.WithFields(fields).WithError(err).Error(msg)
}

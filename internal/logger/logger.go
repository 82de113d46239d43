package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

type implLogger struct {
	entry *logrus.Entry
}

// New creates a Logger writing to stdout. format is "text" (default) or "json".
func New(level, format string) Logger {
	return NewWithOutput(level, format, os.Stdout)
}

// NewWithOutput is New with an explicit destination.
func NewWithOutput(level, format string, out io.Writer) Logger {
	base := logrus.New()
	base.SetOutput(out)

	if strings.ToLower(format) == "json" {
		base.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: time.RFC3339,
		})
	} else {
		base.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	base.SetLevel(parseLevel(level))

	return &implLogger{entry: logrus.NewEntry(base)}
}

// parseLevel maps debug/info/warn/error to logrus levels, defaulting to info.
func parseLevel(level string) logrus.Level {
	switch strings.ToLower(level) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.entry.WithContext(ctx).Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.entry.WithContext(ctx).Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.entry.WithContext(ctx).Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.entry.WithContext(ctx).Errorf(msg, args...)
}

func (l *implLogger) With(key string, value interface{}) Logger {
	return &implLogger{entry: l.entry.WithField(key, value)}
}

// Nop returns a Logger that discards everything. Handy in tests.
func Nop() Logger {
	return NewWithOutput("error", "text", io.Discard)
}

// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	mu     sync.Mutex
	logger *logrus.Logger
)

// Init builds the process logger. format is "text" (default) or "json"; an
// unknown level falls back to info with a warning.
func Init(level, format string) *logrus.Logger {
	return InitTo(os.Stderr, level, format)
}

// InitTo is Init with an explicit output.
func InitTo(w io.Writer, level, format string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(w)

	if strings.ToLower(strings.TrimSpace(format)) == "json" {
		log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02T15:04:05.000Z07:00",
		})
	} else {
		log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
	}

	if level == "" {
		level = "info"
	}
	if lvl, err := logrus.ParseLevel(strings.ToLower(level)); err == nil {
		log.SetLevel(lvl)
	} else {
		log.SetLevel(logrus.InfoLevel)
		log.WithField("invalid_level", level).Warn("Invalid log level, using INFO")
	}

	mu.Lock()
	logger = log
	mu.Unlock()
	return log
}

// Get returns the process logger, initializing it with defaults on first use.
func Get() *logrus.Logger {
	mu.Lock()
	l := logger
	mu.Unlock()
	if l == nil {
		return Init("info", "text")
	}
	return l
}

// WithComponent returns an entry tagged with the component name.
func WithComponent(l *logrus.Logger, name string) *logrus.Entry {
	if l == nil {
		l = Get()
	}
	return l.WithField("component", name)
}

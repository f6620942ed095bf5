// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging settings.
type Config struct {
	// Level is a logrus level name ("debug", "info", ...).
	Level string
	// JSONFormat switches to JSON output, for log shippers.
	JSONFormat bool
	// File enables rotated file output alongside stdout when non-empty.
	File string
	// MaxSizeMB and MaxBackups bound the rotated file set.
	MaxSizeMB  int
	MaxBackups int
}

// Setup applies cfg to the standard logrus logger. Unknown level names fall
// back to info.
func Setup(cfg Config) {
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)

	if cfg.JSONFormat {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		maxSize := cfg.MaxSizeMB
		if maxSize <= 0 {
			maxSize = 100
		}
		rotated := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    maxSize,
			MaxBackups: cfg.MaxBackups,
			LocalTime:  true,
		}
		out = io.MultiWriter(os.Stdout, rotated)
	}
	logrus.SetOutput(out)
}

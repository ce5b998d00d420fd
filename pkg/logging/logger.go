// Package logging builds the logrus loggers used across trendgraph.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/sirupsen/logrus"
)

// Output formats accepted by NewLogger.
const (
	FormatJSON  = "json"
	FormatColor = "color"
	FormatText  = "text"
)

// NewLogger returns a logger writing to out (stderr when nil) at the given
// level. An unparsable level falls back to info and is reported once.
func NewLogger(level, format string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	if out == nil {
		out = os.Stderr
	}
	log.SetOutput(out)

	switch strings.ToLower(format) {
	case FormatJSON:
		log.SetFormatter(&logrus.JSONFormatter{})
	case FormatText:
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		formatter := NewColoredFormatter()
		formatter.DisableColors = !IsTerminal(out)
		log.SetFormatter(formatter)
	}

	if parsed, err := logrus.ParseLevel(level); err == nil {
		log.SetLevel(parsed)
	} else {
		log.SetLevel(logrus.InfoLevel)
		if level != "" {
			log.WithFields(logrus.Fields{
				"attempted_level": level,
				"default_level":   "INFO",
			}).Warn("Invalid log level specified, defaulting to INFO")
		}
	}

	return log
}

// IsTerminal reports whether w is a terminal that can render colors.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

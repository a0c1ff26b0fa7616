// Package logging configures the structured logger every layer of TTR
// writes through, wrapping logrus the way the wider example pack's
// logging module does rather than reaching for stdlib log (the teacher
// itself only uses stdlib log.Printf in one webhook handler; everywhere
// else in the corpus that logs at any volume reaches for a structured
// logger, so TTR follows that instead).
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

var std = logrus.New()

// Configure sets the logger's level and formatter from TTR_LOG / NO_COLOR.
func Configure(level string, noColor bool) {
	std.SetOutput(os.Stderr)
	std.SetFormatter(&logrus.TextFormatter{
		DisableColors:   noColor,
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02T15:04:05Z07:00",
	})
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	std.SetLevel(lvl)
}

// L returns the shared logger, analogous to a package-level *logrus.Logger
// singleton scoped to the process lifetime of one command invocation.
func L() *logrus.Logger { return std }

// WithEntity is a convenience wrapper matching the taxonomy's habit of
// naming the offending entity code on every structured error/log line.
func WithEntity(code string) *logrus.Entry { return std.WithField("entity", code) }

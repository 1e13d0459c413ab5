// Package obs wires up fadetop's logging, per the AMBIENT STACK. The
// viewer owns the terminal's alt-screen, so diagnostic logging never goes
// to stdout: it goes to stderr (or a file, when given one), formatted with
// logrus the way the teacher's cdc-sink-redshift services do it.
package obs

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// NewLogger builds a logrus.Logger writing to w (stderr by default) at the
// given level. An empty level string defaults to "info"; an unparsable one
// falls back to "info" as well rather than failing startup over a
// diagnostics setting.
func NewLogger(w io.Writer, level string) *logrus.Logger {
	if w == nil {
		w = os.Stderr
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log
}

// EntryWithRun returns a logger entry tagged with the run's session ID, so
// every log line from one fadetop invocation can be correlated.
func EntryWithRun(log *logrus.Logger, runID string) *logrus.Entry {
	return log.WithFields(logrus.Fields{"run_id": runID})
}

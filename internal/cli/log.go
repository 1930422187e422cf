package cli

import (
	"io"

	"github.com/charmbracelet/log"
)

// newLogger creates a leveled logger for CLI diagnostics. Debug level is
// enabled by --verbose; output goes to stderr so JSON on stdout stays clean.
func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

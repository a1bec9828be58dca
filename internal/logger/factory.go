package logger

import (
	"os"

	"github.com/charmbracelet/log"
)

// SetupGlobal configures the package-global logger for the whole process.
// Debug wins over quiet when both are set.
func SetupGlobal(debug, quiet bool) {
	log.SetOutput(os.Stderr)
	log.SetReportTimestamp(false)
	switch {
	case debug:
		log.SetLevel(log.DebugLevel)
		log.SetReportCaller(true)
	case quiet:
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

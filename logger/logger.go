// Package logger configures the process-wide zerolog logger used by the SDK
// and its command line tools.
package logger

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// TimeFormat is the timestamp layout of console output.
const TimeFormat = "2006-01-02 15:04:05"

// Options controls Configure.
type Options struct {
	// Debug lowers the global level from Info to Debug.
	Debug bool
	// Output defaults to os.Stderr.
	Output io.Writer
	// JSON writes raw JSON lines instead of the human readable console format.
	JSON bool
	// NoColor disables ANSI colors in console output.
	NoColor bool
}

// Configure sets the global level and installs the global logger.
// It returns the installed logger for callers that prefer injection.
func Configure(opts Options) zerolog.Logger {
	if opts.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}
	if !opts.JSON {
		out = zerolog.ConsoleWriter{
			Out:        out,
			NoColor:    opts.NoColor,
			TimeFormat: TimeFormat,
		}
	}

	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return log.Logger
}

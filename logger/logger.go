// Package logger configures the global zerolog logger.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Logger holds the logging options shared by every command.
type Logger struct {
	Level  string
	Format string

	// Out defaults to stderr.
	Out io.Writer
}

// Setup installs the global logger. Unknown levels and formats are rejected so a typo
// on the command line does not silently change the output.
func (l *Logger) Setup() error {
	level, err := zerolog.ParseLevel(l.Level)
	if err != nil || level == zerolog.NoLevel {
		return errors.Errorf("unknown log level %q", l.Level)
	}
	zerolog.SetGlobalLevel(level)

	out := l.Out
	if out == nil {
		out = os.Stderr
	}

	switch l.Format {
	case FormatJSON:
		log.Logger = zerolog.New(out).With().Timestamp().Logger()
		return nil
	case FormatConsole, "":
	default:
		return errors.Errorf("unknown log format %q", l.Format)
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
	}

	// Colors only make sense on a terminal.
	if f, ok := out.(*os.File); !ok {
		output.NoColor = true
	} else if stat, err := f.Stat(); err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		output.NoColor = true
	}

	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	return nil
}

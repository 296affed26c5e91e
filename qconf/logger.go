package qconf

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

/*
Builds a logger writing to the given output, or to stderr if nil. Format
"console" produces human-readable lines; anything else produces JSON. The level
is set on the logger itself, the global zerolog level is left alone.
*/
func NewLogger(cfg LoggingConfig, out io.Writer) zerolog.Logger {
	if out == nil {
		out = os.Stderr
	}

	if cfg.Format == `console` {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: `15:04:05`,
			NoColor:    true,
		}
	}

	return zerolog.New(out).
		Level(parseLevel(cfg.Level)).
		With().
		Timestamp().
		Str(`component`, `qbuild`).
		Logger()
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case `trace`:
		return zerolog.TraceLevel
	case `debug`:
		return zerolog.DebugLevel
	case `info`:
		return zerolog.InfoLevel
	case `warn`, `warning`:
		return zerolog.WarnLevel
	case `error`:
		return zerolog.ErrorLevel
	case `fatal`:
		return zerolog.FatalLevel
	case `panic`:
		return zerolog.PanicLevel
	case `disabled`:
		return zerolog.Disabled
	default:
		return zerolog.WarnLevel
	}
}

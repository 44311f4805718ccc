// Package logging configures the process-wide zerolog logger used by the
// flowtrace binary: a console writer with fixed-width level tags, optional
// colour and a level parsed from configuration.
package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Levels accepted by ParseLevel, lowest first.
var Levels = []string{"trace", "debug", "info", "warn", "error"}

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorMagenta = 35
	colorBold    = 1
)

// colourDisabled mirrors the NoColor setting of the active console writer.
var colourDisabled bool

func colorize(s any, c int) string {
	if colourDisabled {
		return fmt.Sprintf("%s", s)
	}
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}

// ParseLevel maps a level name onto a zerolog level. The empty string means info.
func ParseLevel(level string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel, nil
	case "debug":
		return zerolog.DebugLevel, nil
	case "", "info":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("logging: unknown level %q (want one of %s)", level, strings.Join(Levels, ", "))
	}
}

// Setup points the global logger at a console writer on out and applies level.
// The global zerolog level is lowered as well, so trace-level step logs are not
// filtered out before they reach the writer. It returns the configured logger.
func Setup(out io.Writer, level string, noColour bool) (zerolog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return log.Logger, err
	}
	colourDisabled = noColour

	cw := zerolog.ConsoleWriter{Out: out, TimeFormat: time.TimeOnly, NoColor: noColour}
	cw.FormatLevel = consoleFormatLevel
	cw.PartsOrder = []string{
		zerolog.TimestampFieldName,
		zerolog.LevelFieldName,
		zerolog.MessageFieldName,
	}
	zerolog.SetGlobalLevel(min(lvl, zerolog.InfoLevel))
	log.Logger = zerolog.New(cw).With().Timestamp().Logger().Level(lvl)

	return log.Logger, nil
}

func consoleFormatLevel(i any) string {
	ll, ok := i.(string)
	if !ok {
		if i == nil {
			return colorize("| ??? |", colorBold)
		}
		return strings.ToUpper(fmt.Sprintf("| %5s |", i))
	}
	switch ll {
	case zerolog.LevelTraceValue:
		return colorize("| TRACE |", colorMagenta)
	case zerolog.LevelDebugValue:
		return colorize("| DEBUG |", colorYellow)
	case zerolog.LevelInfoValue:
		return colorize("| INFO  |", colorGreen)
	case zerolog.LevelWarnValue:
		return colorize("| WARN  |", colorRed)
	case zerolog.LevelErrorValue, zerolog.LevelFatalValue, zerolog.LevelPanicValue:
		return colorize(colorize(fmt.Sprintf("| %-5s |", strings.ToUpper(ll)), colorRed), colorBold)
	default:
		return colorize(ll, colorBold)
	}
}

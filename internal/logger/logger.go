package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dvcrn/blockmason-link-go/internal/env"
)

const (
	colorRed     = 31
	colorGreen   = 32
	colorYellow  = 33
	colorMagenta = 35

	colorBold = 1
)

var (
	once   sync.Once
	logger *zerolog.Logger
)

// Get returns the process-wide logger, initializing it on first call.
func Get() *zerolog.Logger {
	once.Do(func() {
		logger = newLogger(os.Stderr)
	})
	return logger
}

// Nop returns a logger that discards everything.
func Nop() *zerolog.Logger {
	zl := zerolog.Nop()
	return &zl
}

func colorize(s interface{}, c int) string {
	return fmt.Sprintf("\x1b[%dm%v\x1b[0m", c, s)
}

// newLogger picks console or JSON output from ENV and the level from LOG_LEVEL
func newLogger(out io.Writer) *zerolog.Logger {
	level := zerolog.InfoLevel
	if levelStr, ok := env.Get("LOG_LEVEL"); ok {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(levelStr)); err == nil {
			level = parsed
		} else {
			fmt.Fprintf(os.Stderr, "Invalid LOG_LEVEL %q; defaulting to 'info'\n", levelStr)
		}
	}

	switch env.GetOrDefault("ENV", "development") {
	case "development", "dev":
		return newDevelopment(out, level)
	default:
		return newProduction(out, level)
	}
}

func newDevelopment(out io.Writer, level zerolog.Level) *zerolog.Logger {
	output := zerolog.ConsoleWriter{
		Out:         out,
		TimeFormat:  "2006-01-02 15:04:05",
		FormatLevel: formatLevel,
	}
	zl := zerolog.New(output).Level(level).With().Timestamp().Logger()
	return &zl
}

// newProduction writes JSON lines with UNIX timestamps
func newProduction(out io.Writer, level zerolog.Level) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	zl := zerolog.New(out).Level(level).With().Timestamp().Logger()
	return &zl
}

func formatLevel(i interface{}) string {
	ll, ok := i.(string)
	if !ok {
		return strings.ToUpper(fmt.Sprintf("%-3s", fmt.Sprint(i)))[0:3]
	}
	switch ll {
	case "trace":
		return colorize("TRC", colorMagenta)
	case "debug":
		return colorize("DBG", colorYellow)
	case "info":
		return colorize("INF", colorGreen)
	case "warn":
		return colorize("WRN", colorRed)
	case "error":
		return colorize("ERR", colorRed)
	case "fatal":
		return colorize("FTL", colorRed)
	case "panic":
		return colorize("PNC", colorRed)
	default:
		return colorize(strings.ToUpper(fmt.Sprintf("%-3s", ll))[0:3], colorBold)
	}
}

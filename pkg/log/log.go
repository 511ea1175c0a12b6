package log

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
)

const (
	JSONFormat   = "json"
	TextFormat   = "text"
	PrettyFormat = "pretty"
)

// NewWithCurrentConfig creates a [slog.Logger] by using current configuration.
func NewWithCurrentConfig() *slog.Logger {
	h := CreateHandler(os.Getenv("PYBUILD_LOG_LEVEL"), os.Getenv("PYBUILD_LOG_FORMAT"))

	return slog.New(h)
}

// CreateHandler creates a [slog.Handler] by strings. An empty format picks
// the pretty handler when stderr is a terminal, and plain text otherwise, so
// directive output piped to a build tool stays free of styling.
func CreateHandler(logLevel, logFormat string) slog.Handler {
	level := GetLevel(logLevel)

	switch strings.ToLower(logFormat) {
	case JSONFormat:
		return slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	case TextFormat:
		return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	case PrettyFormat:
		return newPrettyHandler(level)
	default:
		if isatty.IsTerminal(os.Stderr.Fd()) {
			return newPrettyHandler(level)
		}

		return slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	}
}

// newPrettyHandler creates a styled handler for interactive use. charmlog
// levels share slog's numeric values.
func newPrettyHandler(level slog.Level) slog.Handler {
	return charmlog.NewWithOptions(os.Stderr, charmlog.Options{
		Level:           charmlog.Level(level),
		ReportTimestamp: false,
	})
}

func GetLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "panic":
		return slog.LevelError
	case "fatal":
		return slog.LevelError
	case "error":
		return slog.LevelError
	case "warn", "warning":
		return slog.LevelWarn
	case "info":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "trace":
		return slog.LevelDebug
	default:
		return slog.LevelInfo
	}
}

// SetLogFormat sets a log/slog format.
func SetLogFormat(logFormat string) {
	switch strings.ToLower(logFormat) {
	case JSONFormat:
		os.Setenv("PYBUILD_LOG_FORMAT", JSONFormat)
	case PrettyFormat:
		os.Setenv("PYBUILD_LOG_FORMAT", PrettyFormat)
	case TextFormat, "":
		os.Setenv("PYBUILD_LOG_FORMAT", TextFormat)
	default:
		panic(fmt.Errorf("unknown log format '%s'", logFormat))
	}

	slog.SetDefault(NewWithCurrentConfig())
}

// SetLogLevel parses and sets a log/slog level.
func SetLogLevel(logLevel string) {
	level := GetLevel(logLevel)
	os.Setenv("PYBUILD_LOG_LEVEL", level.String())
	slog.SetLogLoggerLevel(level)
}

// Package logging builds the slog handlers behind the CLI's --log-* flags.
package logging

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/atlanticdynamic/mcpgen/internal/logging/writers"
	"github.com/charmbracelet/log"
)

// Format selects the handler implementation.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

var ErrUnsupportedFormat = errors.New("unsupported log format")

// Levels lists the accepted --log-level values.
var Levels = []string{"trace", "debug", "info", "warn", "error"}

// ParseFormat accepts "text" or "json", case-insensitively; empty means text.
func ParseFormat(format string) (Format, error) {
	switch Format(strings.ToLower(format)) {
	case "", FormatText:
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
}

// Setup creates a handler for the given level, format and output target.
func Setup(logLevel, format, output string) (slog.Handler, error) {
	f, err := ParseFormat(format)
	if err != nil {
		return nil, err
	}
	writer, err := writers.CreateWriter(output)
	if err != nil {
		return nil, err
	}

	if f == FormatJSON {
		return SetupHandlerJSON(logLevel, writer), nil
	}
	return SetupHandlerText(logLevel, writer), nil
}

// SetupHandlerText configures a charmbracelet text handler. Trace adds the
// caller; debug and trace add timestamps.
func SetupHandlerText(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	reportCaller := false
	reportTimestamp := false
	lvl := log.InfoLevel
	switch strings.ToLower(logLevel) {
	case "trace":
		reportCaller = true
		reportTimestamp = true
		lvl = log.DebugLevel
	case "debug":
		reportTimestamp = true
		lvl = log.DebugLevel
	case "warn", "warning":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	}

	return log.NewWithOptions(writer, log.Options{
		ReportTimestamp: reportTimestamp,
		ReportCaller:    reportCaller,
		Level:           lvl,
	})
}

// SetupHandlerJSON configures a JSON handler. Trace adds the source location.
func SetupHandlerJSON(logLevel string, writer io.Writer) slog.Handler {
	if writer == nil {
		writer = os.Stderr
	}

	opts := &slog.HandlerOptions{
		Level:     ParseLevel(logLevel),
		AddSource: strings.EqualFold(logLevel, "trace"),
	}
	return slog.NewJSONHandler(writer, opts)
}

// ParseLevel maps a level name to its slog level; unknown names are info.
func ParseLevel(logLevel string) slog.Level {
	switch strings.ToLower(logLevel) {
	case "trace", "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

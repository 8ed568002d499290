package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/atlanticdynamic/mcpgen/internal/logging"
	"github.com/atlanticdynamic/mcpgen/internal/pipeline"
	"github.com/urfave/cli/v3"
)

var errUnknownLogLevel = errors.New("unknown log level")

// setupLogger configures the default logger from the global --log-* flags.
func setupLogger(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	level := strings.ToLower(cmd.String("log-level"))
	if level != "warning" && !slices.Contains(logging.Levels, level) {
		return ctx, fmt.Errorf("%w: %s", errUnknownLogLevel, cmd.String("log-level"))
	}

	handler, err := logging.Setup(level, cmd.String("log-format"), cmd.String("log-output"))
	if err != nil {
		return ctx, fmt.Errorf("failed to set up logging: %w", err)
	}
	slog.SetDefault(slog.New(handler))
	return ctx, nil
}

// playRunLogs replays the history of a finished run to the default logger. A
// failed run is always replayed so the steps it completed are visible; a
// successful one only when debug logging is enabled.
func playRunLogs(ctx context.Context, run *pipeline.Run, runErr error) error {
	handler := slog.Default().Handler()
	if runErr == nil && !handler.Enabled(ctx, slog.LevelDebug) {
		return nil
	}
	if err := run.PlayLogs(handler); err != nil {
		return errors.Join(runErr, fmt.Errorf("failed to replay run logs: %w", err))
	}
	return runErr
}

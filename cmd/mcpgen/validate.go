package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/atlanticdynamic/mcpgen/internal/config"
	"github.com/atlanticdynamic/mcpgen/internal/fancy"
	"github.com/atlanticdynamic/mcpgen/internal/pipeline"
	"github.com/urfave/cli/v3"
)

func newValidateCmd() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"lint"},
		Usage:   "Validate the configuration without generating output",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "config",
				Aliases:   []string{"c"},
				Usage:     "Config file (.yaml, .yml, .json or .toml)",
				Value:     pipeline.DefaultConfigPath,
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:    "tree",
				Aliases: []string{"t"},
				Usage:   "Show a tree view of the validated configuration",
			},
		},
		Action: validateAction,
	}
}

func validateAction(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	if !cmd.IsSet("config") && cmd.Args().Len() > 0 {
		configPath = cmd.Args().First()
	}

	run, err := pipeline.New(
		pipeline.WithConfigPath(configPath),
		pipeline.WithLogHandler(slog.Default().Handler()),
	)
	if err != nil {
		return err
	}

	cfg, err := run.Validate(ctx)
	if err := playRunLogs(ctx, run, err); err != nil {
		return err
	}

	out := cmd.Root().Writer
	fmt.Fprintln(out, fancy.ValidText("Configuration is valid ✓"))
	if cmd.Bool("tree") {
		fmt.Fprintln(out, cfg)
		return nil
	}
	fmt.Fprintln(out, renderConfigSummary(configPath, cfg))
	return nil
}

// renderConfigSummary creates a formatted summary string for the configuration
func renderConfigSummary(path string, cfg *config.Config) string {
	var summary strings.Builder

	version := cfg.Version
	if version == "" {
		version = "(unversioned)"
	}

	summary.WriteString("\nConfig Summary:\n")
	fmt.Fprintf(&summary, "- Path: %s\n", fancy.PathText(path))
	fmt.Fprintf(&summary, "- Version: %s\n", version)
	fmt.Fprintf(&summary, "- Variables: %d\n", len(cfg.Variables))
	fmt.Fprintf(&summary, "- Servers: %s\n", strings.Join(cfg.ServerNames(), ", "))
	summary.WriteString("\nUse --tree for a more detailed view of the config.")

	return summary.String()
}

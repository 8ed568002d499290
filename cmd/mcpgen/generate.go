package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/atlanticdynamic/mcpgen/internal/pipeline"
	"github.com/urfave/cli/v3"
)

func newGenerateCmd() *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate MCP JSON from the templated configuration",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "config",
				Aliases:   []string{"c"},
				Usage:     "Config file (.yaml, .yml, .json or .toml)",
				Value:     pipeline.DefaultConfigPath,
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      "secrets",
				Aliases:   []string{"s"},
				Usage:     "Secrets file",
				Value:     pipeline.DefaultSecretsPath,
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      "output",
				Aliases:   []string{"o"},
				Usage:     "Output JSON file",
				Value:     pipeline.DefaultOutputPath,
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:  "validate",
				Usage: "Validate output against the MCP schema",
				Value: true,
			},
			&cli.BoolFlag{
				Name:  "no-validate",
				Usage: "Skip output validation",
			},
			&cli.BoolFlag{
				Name:  "pre-validate",
				Usage: "Also validate the config before resolving references",
			},
			&cli.BoolFlag{
				Name:  "check",
				Usage: "Do not write; fail if the existing output is out of date",
			},
			&cli.BoolFlag{
				Name:    "tree",
				Aliases: []string{"t"},
				Usage:   "Show a tree view of the generated servers (env values and secrets masked)",
			},
		},
		Action: generateAction,
	}
}

func generateAction(ctx context.Context, cmd *cli.Command) error {
	run, err := pipeline.New(
		pipeline.WithConfigPath(cmd.String("config")),
		pipeline.WithSecretsPath(cmd.String("secrets")),
		pipeline.WithOutputPath(cmd.String("output")),
		pipeline.WithValidateInput(cmd.Bool("pre-validate")),
		pipeline.WithValidateOutput(cmd.Bool("validate") && !cmd.Bool("no-validate")),
		pipeline.WithCheck(cmd.Bool("check")),
		pipeline.WithLogHandler(slog.Default().Handler()),
	)
	if err != nil {
		return err
	}

	result, err := run.Generate(ctx)
	if err := playRunLogs(ctx, run, err); err != nil {
		return err
	}

	out := cmd.Root().Writer
	if cmd.Bool("tree") {
		fmt.Fprintln(out, result.Output)
	}
	if !result.Written {
		fmt.Fprintf(out, "MCP configuration is up to date: %s\n", result.Path)
		return nil
	}
	fmt.Fprintf(out, "Generated MCP configuration: %s\n", result.Path)
	return nil
}

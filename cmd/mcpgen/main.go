package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"
)

// Version is set during build using ldflags
var Version = "dev"

func newApp(stdout io.Writer) *cli.Command {
	return &cli.Command{
		Name:    "mcpgen",
		Version: Version,
		Usage:   "Generate MCP client configuration from templated YAML",
		Writer:  stdout,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (trace, debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("MCPGEN_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Log format (text, json)",
				Value: "text",
			},
			&cli.StringFlag{
				Name:  "log-output",
				Usage: "Log destination (stderr, stdout, or a file path)",
				Value: "stderr",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			newGenerateCmd(),
			newValidateCmd(),
			newVersionCmd(),
		},
	}
}

func main() {
	if err := newApp(os.Stdout).Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

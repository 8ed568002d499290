package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/atlanticdynamic/mcpgen/internal/config"
	"github.com/atlanticdynamic/mcpgen/internal/config/validation"
	"github.com/atlanticdynamic/mcpgen/internal/interpolation"
	"github.com/atlanticdynamic/mcpgen/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `version: "1.0"
metadata:
  name: Test MCP Config
variables:
  project_root: ~/dev/test-project
servers:
  filesystem:
    command: npx
    args: ["-y", "@modelcontextprotocol/server-filesystem", "{{ variables.project_root }}"]
  github:
    command: docker
    args: ["run", "-e", "GITHUB_PERSONAL_ACCESS_TOKEN={{ secrets.GITHUB_TOKEN }}"]
    env:
      DEBUG: "{{ env.DEBUG }}"
`

const sampleSecrets = `secrets:
  GITHUB_TOKEN: ghp_test_token_123
`

const invalidConfig = `version: "1.0"
servers:
  bad_server:
    args: [some, args]
`

type cliFixture struct {
	dir     string
	config  string
	secrets string
	output  string
}

func newCLIFixture(t *testing.T, configYAML string) cliFixture {
	t.Helper()
	dir := t.TempDir()
	f := cliFixture{
		dir:     dir,
		config:  filepath.Join(dir, "mcp.config.yaml"),
		secrets: filepath.Join(dir, "mcp.secrets.yaml"),
		output:  filepath.Join(dir, ".amazonq", "mcp.json"),
	}
	require.NoError(t, os.WriteFile(f.config, []byte(configYAML), 0o600))
	require.NoError(t, os.WriteFile(f.secrets, []byte(sampleSecrets), 0o600))
	return f
}

// runApp runs the CLI quietly and returns what it printed to stdout.
func runApp(t *testing.T, args ...string) (string, error) {
	t.Helper()
	original := slog.Default()
	t.Cleanup(func() { slog.SetDefault(original) })

	var stdout bytes.Buffer
	argv := append([]string{"mcpgen", "--log-level", "error"}, args...)
	err := newApp(&stdout).Run(t.Context(), argv)
	return stdout.String(), err
}

func TestGenerateCommand(t *testing.T) {
	t.Setenv("DEBUG", "false")

	t.Run("writes output", func(t *testing.T) {
		f := newCLIFixture(t, sampleConfig)
		stdout, err := runApp(t, "generate", "-c", f.config, "-s", f.secrets, "-o", f.output)
		require.NoError(t, err)
		assert.Equal(t, "Generated MCP configuration: "+f.output+"\n", stdout)

		data, err := os.ReadFile(f.output)
		require.NoError(t, err)
		assert.Contains(t, string(data), `"GITHUB_PERSONAL_ACCESS_TOKEN=ghp_test_token_123"`)
		assert.Contains(t, string(data), `"DEBUG": "false"`)
		assert.Contains(t, string(data), `"~/dev/test-project"`)
	})

	t.Run("tree view masks env and secrets", func(t *testing.T) {
		f := newCLIFixture(t, sampleConfig)
		stdout, err := runApp(t, "generate", "-c", f.config, "-s", f.secrets, "-o", f.output, "--tree")
		require.NoError(t, err)
		assert.Contains(t, stdout, "MCP Servers")
		assert.Contains(t, stdout, "DEBUG=")
		assert.NotContains(t, stdout, "DEBUG=false")
		assert.Contains(t, stdout, "GITHUB_PERSONAL_ACCESS_TOKEN=")
		assert.NotContains(t, stdout, "ghp_test_token_123")
		assert.Contains(t, stdout, "Generated MCP configuration: ")
	})

	t.Run("output validation failure", func(t *testing.T) {
		f := newCLIFixture(t, invalidConfig)
		_, err := runApp(t, "generate", "--config", f.config, "--secrets", f.secrets, "--output", f.output)
		require.ErrorIs(t, err, validation.ErrSchema)
		assert.Contains(t, err.Error(), "mcpServers.bad_server.command")
		assert.NoFileExists(t, f.output)
	})

	t.Run("no-validate writes anyway", func(t *testing.T) {
		f := newCLIFixture(t, invalidConfig)
		_, err := runApp(t, "generate", "-c", f.config, "-s", f.secrets, "-o", f.output, "--no-validate")
		require.NoError(t, err)
		assert.FileExists(t, f.output)
	})

	t.Run("pre-validate reports config paths", func(t *testing.T) {
		f := newCLIFixture(t, invalidConfig)
		_, err := runApp(t, "generate", "-c", f.config, "-s", f.secrets, "-o", f.output, "--pre-validate")
		require.ErrorIs(t, err, validation.ErrSchema)
		assert.Contains(t, err.Error(), "servers.bad_server.command")
	})

	t.Run("missing secrets file", func(t *testing.T) {
		f := newCLIFixture(t, sampleConfig)
		_, err := runApp(t, "generate", "-c", f.config, "-s", filepath.Join(f.dir, "nope.yaml"), "-o", f.output)
		require.ErrorIs(t, err, config.ErrLoad)
	})

	t.Run("unresolved reference", func(t *testing.T) {
		f := newCLIFixture(t, `servers:
  x:
    command: "{{ secrets.MISSING }}"
`)
		_, err := runApp(t, "generate", "-c", f.config, "-s", f.secrets, "-o", f.output)
		require.ErrorIs(t, err, interpolation.ErrUndefinedReference)
		assert.NoFileExists(t, f.output)
	})

	t.Run("check mode", func(t *testing.T) {
		f := newCLIFixture(t, sampleConfig)
		_, err := runApp(t, "generate", "-c", f.config, "-s", f.secrets, "-o", f.output, "--check")
		require.ErrorIs(t, err, pipeline.ErrStale)

		_, err = runApp(t, "generate", "-c", f.config, "-s", f.secrets, "-o", f.output)
		require.NoError(t, err)

		stdout, err := runApp(t, "generate", "-c", f.config, "-s", f.secrets, "-o", f.output, "--check")
		require.NoError(t, err)
		assert.Equal(t, "MCP configuration is up to date: "+f.output+"\n", stdout)
	})
}

func TestRunLogReplay(t *testing.T) {
	t.Setenv("DEBUG", "false")

	runLogged := func(t *testing.T, level string, args ...string) (string, error) {
		t.Helper()
		original := slog.Default()
		t.Cleanup(func() { slog.SetDefault(original) })

		logPath := filepath.Join(t.TempDir(), "mcpgen.log")
		argv := append([]string{"mcpgen", "--log-level", level, "--log-output", logPath}, args...)
		runErr := newApp(&bytes.Buffer{}).Run(t.Context(), argv)

		data, err := os.ReadFile(logPath)
		require.NoError(t, err)
		return string(data), runErr
	}

	t.Run("failed generate replays the run", func(t *testing.T) {
		f := newCLIFixture(t, `servers:
  x:
    command: "{{ secrets.MISSING }}"
`)
		logs, err := runLogged(t, "info", "generate", "-c", f.config, "-s", f.secrets, "-o", f.output)
		require.ErrorIs(t, err, interpolation.ErrUndefinedReference)
		assert.Contains(t, logs, "Run state changed")
		assert.Contains(t, logs, "loaded")
		assert.Contains(t, logs, "Run failed")
	})

	t.Run("failed validate replays the run", func(t *testing.T) {
		f := newCLIFixture(t, invalidConfig)
		logs, err := runLogged(t, "info", "validate", "-c", f.config)
		require.ErrorIs(t, err, validation.ErrSchema)
		assert.Contains(t, logs, "Run failed")
	})

	t.Run("successful run stays quiet at info", func(t *testing.T) {
		f := newCLIFixture(t, sampleConfig)
		logs, err := runLogged(t, "info", "generate", "-c", f.config, "-s", f.secrets, "-o", f.output)
		require.NoError(t, err)
		assert.NotContains(t, logs, "Run state changed")
	})

	t.Run("successful run replays at debug", func(t *testing.T) {
		f := newCLIFixture(t, sampleConfig)
		logs, err := runLogged(t, "debug", "generate", "-c", f.config, "-s", f.secrets, "-o", f.output)
		require.NoError(t, err)
		assert.Contains(t, logs, "Run created")
		assert.Contains(t, logs, "Run completed")
	})
}

func TestValidateCommand(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		f := newCLIFixture(t, sampleConfig)
		stdout, err := runApp(t, "validate", "-c", f.config)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Configuration is valid ✓")
		assert.Contains(t, stdout, "- Servers: filesystem, github")
		assert.Contains(t, stdout, "- Version: 1.0")
	})

	t.Run("positional path", func(t *testing.T) {
		f := newCLIFixture(t, sampleConfig)
		stdout, err := runApp(t, "validate", f.config)
		require.NoError(t, err)
		assert.Contains(t, stdout, "Configuration is valid ✓")
	})

	t.Run("tree view", func(t *testing.T) {
		f := newCLIFixture(t, sampleConfig)
		stdout, err := runApp(t, "validate", "-c", f.config, "--tree")
		require.NoError(t, err)
		assert.Contains(t, stdout, "filesystem")
		assert.Contains(t, stdout, "github")
		assert.Contains(t, stdout, "npx")
	})

	t.Run("invalid config", func(t *testing.T) {
		f := newCLIFixture(t, invalidConfig)
		stdout, err := runApp(t, "validate", "-c", f.config)
		require.ErrorIs(t, err, validation.ErrSchema)
		assert.Contains(t, err.Error(), "servers.bad_server.command")
		assert.NotContains(t, stdout, "valid ✓")
	})
}

func TestVersionCommand(t *testing.T) {
	stdout, err := runApp(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "mcpgen version "+Version+"\n", stdout)
}

func TestGlobalLogFlags(t *testing.T) {
	t.Run("unknown level", func(t *testing.T) {
		original := slog.Default()
		t.Cleanup(func() { slog.SetDefault(original) })

		err := newApp(&bytes.Buffer{}).Run(t.Context(), []string{"mcpgen", "--log-level", "loud", "version"})
		require.ErrorIs(t, err, errUnknownLogLevel)
	})

	t.Run("level from environment", func(t *testing.T) {
		original := slog.Default()
		t.Cleanup(func() { slog.SetDefault(original) })
		t.Setenv("MCPGEN_LOG_LEVEL", "debug")

		err := newApp(&bytes.Buffer{}).Run(t.Context(), []string{"mcpgen", "version"})
		require.NoError(t, err)
		assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelDebug))
	})

	t.Run("json logs to file", func(t *testing.T) {
		original := slog.Default()
		t.Cleanup(func() { slog.SetDefault(original) })
		logPath := filepath.Join(t.TempDir(), "mcpgen.log")

		err := newApp(&bytes.Buffer{}).Run(t.Context(), []string{
			"mcpgen", "--log-format", "json", "--log-output", logPath, "version",
		})
		require.NoError(t, err)
		assert.FileExists(t, logPath)
	})

	t.Run("bad format", func(t *testing.T) {
		original := slog.Default()
		t.Cleanup(func() { slog.SetDefault(original) })

		err := newApp(&bytes.Buffer{}).Run(t.Context(), []string{"mcpgen", "--log-format", "xml", "version"})
		require.Error(t, err)
	})
}

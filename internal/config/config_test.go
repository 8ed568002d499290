package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() map[string]any {
	return map[string]any{
		"version": "1.0",
		"metadata": map[string]any{
			"name":        "Test MCP Config",
			"description": "Test configuration",
		},
		"variables": map[string]any{
			"project_root": "~/dev/test-project",
			"data_path":    "{{ variables.project_root }}/data",
		},
		"servers": map[string]any{
			"filesystem": map[string]any{
				"command": "npx",
				"args":    []any{"-y", "@modelcontextprotocol/server-filesystem", "{{ variables.project_root }}"},
			},
		},
	}
}

func TestNewFromTree(t *testing.T) {
	t.Parallel()

	t.Run("valid document", func(t *testing.T) {
		cfg, err := NewFromTree(sampleTree())
		require.NoError(t, err)
		assert.Equal(t, "1.0", cfg.Version)
		assert.Equal(t, "Test MCP Config", cfg.Metadata["name"])
		assert.Equal(t, "~/dev/test-project", cfg.Variables["project_root"])
		assert.Equal(t, []string{"filesystem"}, cfg.ServerNames())
	})

	t.Run("nil document", func(t *testing.T) {
		_, err := NewFromTree(nil)
		require.ErrorIs(t, err, ErrEmptyDocument)
	})

	t.Run("missing servers", func(t *testing.T) {
		tree := sampleTree()
		delete(tree, "servers")
		_, err := NewFromTree(tree)
		require.ErrorIs(t, err, ErrMissingKey)
		assert.Contains(t, err.Error(), "servers")
	})

	t.Run("servers not a mapping", func(t *testing.T) {
		tree := sampleTree()
		tree["servers"] = []any{"a", "b"}
		_, err := NewFromTree(tree)
		require.ErrorIs(t, err, ErrInvalidShape)
	})

	t.Run("non scalar variable", func(t *testing.T) {
		tree := sampleTree()
		tree["variables"] = map[string]any{"nested": map[string]any{"a": "b"}}
		_, err := NewFromTree(tree)
		require.ErrorIs(t, err, ErrNonScalarValue)
		assert.Contains(t, err.Error(), "variables.nested")
	})

	t.Run("numeric version and variables", func(t *testing.T) {
		tree := sampleTree()
		tree["version"] = 1.0
		tree["variables"] = map[string]any{"port": 8080, "debug": false}
		cfg, err := NewFromTree(tree)
		require.NoError(t, err)
		assert.Equal(t, "1", cfg.Version)
		assert.Equal(t, "8080", cfg.Variables["port"])
		assert.Equal(t, "false", cfg.Variables["debug"])
	})

	t.Run("null optional sections", func(t *testing.T) {
		tree := sampleTree()
		tree["variables"] = nil
		tree["metadata"] = nil
		cfg, err := NewFromTree(tree)
		require.NoError(t, err)
		assert.Empty(t, cfg.Variables)
		assert.Nil(t, cfg.Metadata)
	})
}

func TestNewSecretsFromTree(t *testing.T) {
	t.Parallel()

	t.Run("secrets mapping", func(t *testing.T) {
		secrets, err := NewSecretsFromTree(map[string]any{
			"secrets": map[string]any{
				"GITHUB_TOKEN": "ghp_test_token_123",
				"API_KEY":      "test_api_key_456",
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "ghp_test_token_123", secrets.Values["GITHUB_TOKEN"])
		assert.Len(t, secrets.Values, 2)
	})

	t.Run("empty document", func(t *testing.T) {
		secrets, err := NewSecretsFromTree(nil)
		require.NoError(t, err)
		assert.Empty(t, secrets.Values)
	})

	t.Run("secrets not a mapping", func(t *testing.T) {
		_, err := NewSecretsFromTree(map[string]any{"secrets": "nope"})
		require.ErrorIs(t, err, ErrInvalidShape)
	})
}

func TestDecodeServer(t *testing.T) {
	t.Parallel()
	path := Path{KeyServers, "github"}

	t.Run("full definition", func(t *testing.T) {
		srv, err := DecodeServer(path, map[string]any{
			"command": "docker",
			"args":    []any{"run", "-i", 8080},
			"env":     map[string]any{"DEBUG": false},
		})
		require.NoError(t, err)
		assert.Equal(t, Server{
			Command: "docker",
			Args:    []string{"run", "-i", "8080"},
			Env:     map[string]string{"DEBUG": "false"},
		}, srv)
	})

	t.Run("absent args and env default to empty", func(t *testing.T) {
		srv, err := DecodeServer(path, map[string]any{"command": "npx"})
		require.NoError(t, err)
		assert.NotNil(t, srv.Args)
		assert.Empty(t, srv.Args)
		assert.NotNil(t, srv.Env)
		assert.Empty(t, srv.Env)
	})

	t.Run("missing command decodes empty", func(t *testing.T) {
		srv, err := DecodeServer(path, map[string]any{"args": []any{"some", "args"}})
		require.NoError(t, err)
		assert.Empty(t, srv.Command)
	})

	t.Run("args not a sequence", func(t *testing.T) {
		_, err := DecodeServer(path, map[string]any{"command": "npx", "args": "-y"})
		require.ErrorIs(t, err, ErrInvalidShape)
		assert.Contains(t, err.Error(), "servers.github.args")
	})

	t.Run("nested arg", func(t *testing.T) {
		_, err := DecodeServer(path, map[string]any{"command": "npx", "args": []any{[]any{"x"}}})
		require.ErrorIs(t, err, ErrInvalidShape)
		assert.Contains(t, err.Error(), "servers.github.args[0]")
	})

	t.Run("server not a mapping", func(t *testing.T) {
		_, err := DecodeServer(path, "npx")
		require.ErrorIs(t, err, ErrInvalidShape)
	})
}

func TestLoadError(t *testing.T) {
	err := NewLoadError("mcp.config.yaml", ErrEmptyDocument)
	assert.ErrorIs(t, err, ErrLoad)
	assert.ErrorIs(t, err, ErrEmptyDocument)
	assert.Contains(t, err.Error(), "mcp.config.yaml")
}

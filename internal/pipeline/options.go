package pipeline

import (
	"log/slog"

	"github.com/atlanticdynamic/mcpgen/internal/interpolation"
)

// Default locations, relative to the working directory.
const (
	DefaultConfigPath  = "mcp.config.yaml"
	DefaultSecretsPath = "mcp.secrets.yaml"
	DefaultOutputPath  = ".amazonq/mcp.json"
)

// Option configures a Run.
type Option func(*Run)

// WithConfigPath sets the templated config source.
func WithConfigPath(path string) Option {
	return func(r *Run) {
		if path != "" {
			r.configPath = path
		}
	}
}

// WithSecretsPath sets the secrets source.
func WithSecretsPath(path string) Option {
	return func(r *Run) {
		if path != "" {
			r.secretsPath = path
		}
	}
}

// WithOutputPath sets where the generated document is written or compared.
func WithOutputPath(path string) Option {
	return func(r *Run) {
		if path != "" {
			r.outputPath = path
		}
	}
}

// WithValidateInput enables schema validation of the config before resolution.
func WithValidateInput(enabled bool) Option {
	return func(r *Run) {
		r.validateInput = enabled
	}
}

// WithValidateOutput toggles schema validation of the generated document.
func WithValidateOutput(enabled bool) Option {
	return func(r *Run) {
		r.validateOutput = enabled
	}
}

// WithCheck makes Generate compare against the existing output instead of writing it.
func WithCheck(enabled bool) Option {
	return func(r *Run) {
		r.check = enabled
	}
}

// WithLogHandler sets the handler the run's state machine logs to. Run
// records themselves are kept for PlayLogs.
func WithLogHandler(handler slog.Handler) Option {
	return func(r *Run) {
		if handler != nil {
			r.handler = handler
		}
	}
}

// WithEnv replaces the environment snapshot used for {{ env.* }} references.
func WithEnv(env interpolation.Env) Option {
	return func(r *Run) {
		r.env = env
	}
}

// WithStore sets where documents are read from and written to.
func WithStore(store Store) Option {
	return func(r *Run) {
		if store != nil {
			r.store = store
		}
	}
}

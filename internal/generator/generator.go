// Package generator turns a templated MCP config and its secrets into the
// resolved MCP output document.
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/atlanticdynamic/mcpgen/internal/config"
	"github.com/atlanticdynamic/mcpgen/internal/config/loader"
	"github.com/atlanticdynamic/mcpgen/internal/interpolation"
	"github.com/atlanticdynamic/mcpgen/internal/storage"
)

// Engine loads documents and resolves every reference in them.
type Engine struct {
	logger *slog.Logger
	env    interpolation.Env
	reader loader.Reader
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithEnv replaces the environment snapshot used for {{ env.* }} references.
func WithEnv(env interpolation.Env) Option {
	return func(e *Engine) {
		e.env = env.Clone()
	}
}

// WithReader sets where config and secrets sources are read from.
func WithReader(reader loader.Reader) Option {
	return func(e *Engine) {
		if reader != nil {
			e.reader = reader
		}
	}
}

// New creates an Engine. Unless WithEnv is given, the process environment is
// snapshotted here and never consulted again.
func New(opts ...Option) *Engine {
	e := &Engine{
		logger: slog.Default(),
		reader: storage.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.env == nil {
		e.env = interpolation.EnvFromOS()
	}
	e.logger = e.logger.With("component", "generator")
	return e
}

// Documents are the parsed inputs of one generation.
type Documents struct {
	// ConfigSource is empty when the trees did not come from a source.
	ConfigSource string
	ConfigTree   map[string]any
	SecretsTree  map[string]any
	Config       *config.Config
	Secrets      *config.Secrets
}

// Process loads both sources and resolves them into an Output.
func (e *Engine) Process(ctx context.Context, configSource, secretsSource string) (*config.Output, error) {
	docs, err := e.Load(ctx, configSource, secretsSource)
	if err != nil {
		return nil, err
	}
	return e.Resolve(docs)
}

// LoadTree reads and parses one source without decoding it.
func (e *Engine) LoadTree(ctx context.Context, source string) (map[string]any, error) {
	tree, err := loader.LoadTree(ctx, e.reader, source)
	if err != nil {
		return nil, config.NewLoadError(source, err)
	}
	return tree, nil
}

// Load reads, parses and decodes both sources. All failures are *config.LoadError.
func (e *Engine) Load(ctx context.Context, configSource, secretsSource string) (*Documents, error) {
	configTree, err := e.LoadTree(ctx, configSource)
	if err != nil {
		return nil, err
	}
	secretsTree, err := e.LoadTree(ctx, secretsSource)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("Loaded sources", "config", configSource, "secrets", secretsSource)

	return decode(configTree, secretsTree, configSource, secretsSource)
}

// ProcessTrees resolves already parsed documents.
func (e *Engine) ProcessTrees(configTree, secretsTree map[string]any) (*config.Output, error) {
	docs, err := decode(configTree, secretsTree, "", "")
	if err != nil {
		return nil, err
	}
	return e.Resolve(docs)
}

func decode(configTree, secretsTree map[string]any, configSource, secretsSource string) (*Documents, error) {
	cfg, err := config.NewFromTree(configTree)
	if err != nil {
		return nil, config.NewLoadError(configSource, err)
	}
	secrets, err := config.NewSecretsFromTree(secretsTree)
	if err != nil {
		return nil, config.NewLoadError(secretsSource, err)
	}
	return &Documents{
		ConfigSource: configSource,
		ConfigTree:   configTree,
		SecretsTree:  secretsTree,
		Config:       cfg,
		Secrets:      secrets,
	}, nil
}

// Resolve builds the resolution context and substitutes every reference in
// every server. Resolution failures across all servers are returned together;
// a substituted server with the wrong shape is a *config.LoadError.
func (e *Engine) Resolve(docs *Documents) (*config.Output, error) {
	rctx, err := interpolation.NewContext(docs.Config.Variables, docs.Secrets.Values, e.env)
	if err != nil {
		return nil, fmt.Errorf("resolving variables: %w", err)
	}
	e.logger.Debug("Resolved variables", "count", len(docs.Config.Variables))

	out := config.NewOutput()
	for _, name := range config.SortedKeys(docs.Secrets.Values) {
		out.Redact(docs.Secrets.Values[name])
	}
	var resolveErrz []error
	var shapeErrz []error
	for _, name := range docs.Config.ServerNames() {
		path := config.Path{config.KeyServers, name}

		expanded, err := rctx.ExpandTree(docs.Config.Servers[name], path)
		if err != nil {
			resolveErrz = append(resolveErrz, err)
			continue
		}

		server, err := config.DecodeServer(path, expanded)
		if err != nil {
			shapeErrz = append(shapeErrz, err)
			continue
		}
		out.MCPServers[name] = server
		e.logger.Debug("Resolved server", "server", name, "args", len(server.Args), "env", len(server.Env))
	}

	if len(resolveErrz) > 0 {
		return nil, fmt.Errorf("resolving servers: %w", errors.Join(resolveErrz...))
	}
	if len(shapeErrz) > 0 {
		return nil, config.NewLoadError(docs.ConfigSource, errors.Join(shapeErrz...))
	}
	return out, nil
}

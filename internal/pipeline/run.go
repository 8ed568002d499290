// Package pipeline drives one generation or validation run: load, optional
// input validation, resolution, optional output validation, then write or
// check. Every run carries its own ID, state machine and log history. Run
// logs are held in the history and only reach a handler through PlayLogs.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/atlanticdynamic/mcpgen/internal/config"
	"github.com/atlanticdynamic/mcpgen/internal/config/validation"
	"github.com/atlanticdynamic/mcpgen/internal/generator"
	"github.com/atlanticdynamic/mcpgen/internal/interpolation"
	"github.com/atlanticdynamic/mcpgen/internal/pipeline/finitestate"
	"github.com/atlanticdynamic/mcpgen/internal/storage"
	"github.com/gofrs/uuid/v5"
	"github.com/k14s/difflib"
	"github.com/robbyt/go-loglater"
	logstorage "github.com/robbyt/go-loglater/storage"
)

// Store reads sources and writes the generated document.
type Store interface {
	Read(ctx context.Context, location string) ([]byte, error)
	Exists(ctx context.Context, location string) (bool, error)
	Write(ctx context.Context, location string, data []byte) error
}

// Run is a single invocation of the generator.
type Run struct {
	ID        uuid.UUID
	CreatedAt time.Time

	configPath     string
	secretsPath    string
	outputPath     string
	validateInput  bool
	validateOutput bool
	check          bool
	env            interpolation.Env
	store          Store
	handler        slog.Handler

	engine       *generator.Engine
	fsm          finitestate.Machine
	logger       *slog.Logger
	logCollector *loglater.LogCollector
}

// Result describes a completed Generate.
type Result struct {
	Output *config.Output
	// Path is where the document was written or compared.
	Path string
	Data []byte
	// Written is false in check mode.
	Written bool
}

// New creates a Run in the created state.
func New(opts ...Option) (*Run, error) {
	r := &Run{
		ID:             uuid.Must(uuid.NewV6()),
		CreatedAt:      time.Now(),
		configPath:     DefaultConfigPath,
		secretsPath:    DefaultSecretsPath,
		outputPath:     DefaultOutputPath,
		validateOutput: true,
		store:          storage.New(),
		handler:        slog.Default().Handler(),
	}
	for _, opt := range opts {
		opt(r)
	}

	sm, err := finitestate.New(r.handler)
	if err != nil {
		return nil, fmt.Errorf("%s failed to create state machine: %w", r.ID, err)
	}
	r.fsm = sm

	r.logCollector = loglater.NewLogCollector(nil)
	r.logger = slog.New(r.logCollector).With("id", r.ID)

	engineOpts := []generator.Option{
		generator.WithLogger(r.logger),
		generator.WithReader(r.store),
	}
	if r.env != nil {
		engineOpts = append(engineOpts, generator.WithEnv(r.env))
	}
	r.engine = generator.New(engineOpts...)

	r.logger.Debug("Run created", "config", r.configPath, "secrets", r.secretsPath, "output", r.outputPath)
	return r, nil
}

// State returns the current run state.
func (r *Run) State() string {
	return r.fsm.GetState()
}

// Logs returns every record logged during the run.
func (r *Run) Logs() []logstorage.Record {
	return r.logCollector.GetLogs()
}

// PlayLogs replays the run's log history to handler, which applies its own
// level filter.
func (r *Run) PlayLogs(handler slog.Handler) error {
	return r.logCollector.PlayLogs(handler)
}

// Generate produces the MCP output and writes it, or in check mode compares
// it to the existing file. Nothing is written unless every earlier step
// succeeded.
func (r *Run) Generate(ctx context.Context) (*Result, error) {
	docs, err := r.engine.Load(ctx, r.configPath, r.secretsPath)
	if err != nil {
		return nil, r.fail(err)
	}
	if err := r.transition(finitestate.StateLoaded); err != nil {
		return nil, err
	}

	if r.validateInput {
		if err := validation.ValidateConfig(docs.ConfigTree); err != nil {
			return nil, r.fail(err)
		}
		if err := r.transition(finitestate.StateValidated); err != nil {
			return nil, err
		}
	}

	out, err := r.engine.Resolve(docs)
	if err != nil {
		return nil, r.fail(err)
	}
	if err := r.transition(finitestate.StateResolved); err != nil {
		return nil, err
	}

	if r.validateOutput {
		tree, err := out.Tree()
		if err != nil {
			return nil, r.fail(err)
		}
		if err := validation.ValidateOutput(tree); err != nil {
			return nil, r.fail(err)
		}
		if err := r.transition(finitestate.StateVerified); err != nil {
			return nil, err
		}
	}

	data, err := out.Render()
	if err != nil {
		return nil, r.fail(err)
	}
	result := &Result{Output: out, Path: r.outputPath, Data: data}

	if r.check {
		if err := r.compare(ctx, data); err != nil {
			return nil, r.fail(err)
		}
		if err := r.transition(finitestate.StateChecked); err != nil {
			return nil, err
		}
		return result, nil
	}

	if err := r.transition(finitestate.StateWriting); err != nil {
		return nil, err
	}
	if err := r.store.Write(ctx, r.outputPath, data); err != nil {
		return nil, r.fail(err)
	}
	if err := r.transition(finitestate.StateWritten); err != nil {
		return nil, err
	}
	result.Written = true

	r.logger.Debug("Run completed",
		"output", r.outputPath,
		"servers", len(out.MCPServers),
		"duration", time.Since(r.CreatedAt))
	return result, nil
}

// Validate loads the config source and checks it against the input schema.
// The secrets source is not read.
func (r *Run) Validate(ctx context.Context) (*config.Config, error) {
	tree, err := r.engine.LoadTree(ctx, r.configPath)
	if err != nil {
		return nil, r.fail(err)
	}
	if err := r.transition(finitestate.StateLoaded); err != nil {
		return nil, err
	}

	if err := validation.ValidateConfig(tree); err != nil {
		return nil, r.fail(err)
	}

	cfg, err := config.NewFromTree(tree)
	if err != nil {
		return nil, r.fail(config.NewLoadError(r.configPath, err))
	}
	if err := r.transition(finitestate.StateValidated); err != nil {
		return nil, err
	}

	r.logger.Debug("Run completed", "config", r.configPath, "servers", len(cfg.Servers))
	return cfg, nil
}

// compare fails with ErrStale and a line diff when the existing output
// differs from data.
func (r *Run) compare(ctx context.Context, data []byte) error {
	var existing []byte
	exists, err := r.store.Exists(ctx, r.outputPath)
	if err != nil {
		return err
	}
	if exists {
		existing, err = r.store.Read(ctx, r.outputPath)
		if err != nil {
			return err
		}
	}

	if exists && string(existing) == string(data) {
		r.logger.Debug("Output is up to date", "output", r.outputPath)
		return nil
	}

	diff := difflib.PPDiff(
		strings.Split(string(existing), "\n"),
		strings.Split(string(data), "\n"),
	)
	if !exists {
		return fmt.Errorf("%w: %s does not exist\n%s", ErrStale, r.outputPath, diff)
	}
	return fmt.Errorf("%w: %s\n%s", ErrStale, r.outputPath, diff)
}

func (r *Run) transition(state string) error {
	if err := r.fsm.Transition(state); err != nil {
		r.logger.Error("Failed to transition", "state", state, "error", err)
		return fmt.Errorf("%w: %w", ErrStateMachine, err)
	}
	r.logger.Info("Run state changed", "state", state)
	return nil
}

func (r *Run) fail(err error) error {
	from := r.fsm.GetState()
	if tErr := r.fsm.Transition(finitestate.StateFailed); tErr != nil {
		return errors.Join(err, fmt.Errorf("%w: %w", ErrStateMachine, tErr))
	}
	r.logger.Info("Run failed", "fromState", from, "error", err)
	return err
}

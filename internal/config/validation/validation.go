// Package validation checks parsed documents against the input and output
// schemas. Every violation is collected; nothing fails fast.
package validation

import (
	"fmt"
	"slices"
	"strings"

	"github.com/atlanticdynamic/mcpgen/internal/config"
)

// Document names used in SchemaError.
const (
	DocumentConfig = "config"
	DocumentOutput = "output"
)

type located struct {
	path      config.Path
	violation Violation
}

type checker struct {
	found []located
}

func (c *checker) add(path config.Path, err error) {
	c.found = append(c.found, located{path: path, violation: Violation{Path: path.String(), Err: err}})
}

func (c *checker) result(document string) error {
	if len(c.found) == 0 {
		return nil
	}
	slices.SortStableFunc(c.found, func(a, b located) int {
		return a.path.Compare(b.path)
	})
	violations := make([]Violation, len(c.found))
	for i, f := range c.found {
		violations[i] = f.violation
	}
	return &SchemaError{Document: document, Violations: violations}
}

// ValidateConfig checks a parsed input document.
func ValidateConfig(tree any) error {
	c := &checker{}
	root, ok := config.Normalize(tree).(map[string]any)
	if !ok {
		c.add(nil, fmt.Errorf("document %w", ErrNotMapping))
		return c.result(DocumentConfig)
	}

	if raw, ok := root[config.KeyVersion]; ok && raw != nil {
		c.checkVersion(config.Path{config.KeyVersion}, raw)
	}

	if raw, ok := root[config.KeyMetadata]; ok && raw != nil {
		if _, ok := raw.(map[string]any); !ok {
			c.add(config.Path{config.KeyMetadata}, ErrNotMapping)
		}
	}

	if raw, ok := root[config.KeyVariables]; ok && raw != nil {
		c.checkVariables(config.Path{config.KeyVariables}, raw)
	}

	raw, ok := root[config.KeyServers]
	if !ok {
		c.add(config.Path{config.KeyServers}, ErrRequired)
		return c.result(DocumentConfig)
	}
	c.checkServers(config.Path{config.KeyServers}, raw, false)

	return c.result(DocumentConfig)
}

// ValidateOutput checks a generated output document.
func ValidateOutput(tree any) error {
	c := &checker{}
	root, ok := config.Normalize(tree).(map[string]any)
	if !ok {
		c.add(nil, fmt.Errorf("document %w", ErrNotMapping))
		return c.result(DocumentOutput)
	}

	raw, ok := root[config.KeyMCPServers]
	if !ok {
		c.add(config.Path{config.KeyMCPServers}, ErrRequired)
		return c.result(DocumentOutput)
	}
	c.checkServers(config.Path{config.KeyMCPServers}, raw, true)

	return c.result(DocumentOutput)
}

func (c *checker) checkServers(path config.Path, raw any, requireEntries bool) {
	servers, ok := raw.(map[string]any)
	if !ok {
		c.add(path, ErrNotMapping)
		return
	}
	if requireEntries && len(servers) == 0 {
		c.add(path, ErrEmpty)
		return
	}

	for _, name := range config.SortedKeys(servers) {
		c.checkServer(path.Key(name), servers[name])
	}
}

func (c *checker) checkServer(path config.Path, raw any) {
	server, ok := raw.(map[string]any)
	if !ok {
		c.add(path, ErrNotMapping)
		return
	}

	commandPath := path.Key(config.KeyCommand)
	switch command, ok := server[config.KeyCommand]; {
	case !ok || command == nil:
		c.add(commandPath, ErrRequired)
	default:
		s, isString := command.(string)
		switch {
		case !isString:
			c.add(commandPath, ErrNotString)
		case strings.TrimSpace(s) == "":
			c.add(commandPath, ErrEmpty)
		}
	}

	if raw, ok := server[config.KeyArgs]; ok && raw != nil {
		c.checkArgs(path.Key(config.KeyArgs), raw)
	}
	if raw, ok := server[config.KeyEnv]; ok && raw != nil {
		c.checkEnv(path.Key(config.KeyEnv), raw)
	}
}

func (c *checker) checkArgs(path config.Path, raw any) {
	args, ok := raw.([]any)
	if !ok {
		c.add(path, ErrNotSequence)
		return
	}
	for i, arg := range args {
		if _, ok := arg.(string); !ok {
			c.add(path.Index(i), ErrNotString)
		}
	}
}

func (c *checker) checkEnv(path config.Path, raw any) {
	env, ok := raw.(map[string]any)
	if !ok {
		c.add(path, ErrNotMapping)
		return
	}
	for _, key := range config.SortedKeys(env) {
		if _, ok := env[key].(string); !ok {
			c.add(path.Key(key), ErrNotString)
		}
	}
}

func (c *checker) checkVariables(path config.Path, raw any) {
	vars, ok := raw.(map[string]any)
	if !ok {
		c.add(path, ErrNotMapping)
		return
	}
	for _, name := range config.SortedKeys(vars) {
		if _, ok := config.ScalarString(vars[name]); !ok {
			c.add(path.Key(name), ErrNotScalar)
		}
	}
}

// Package config holds the document model for MCP generation: the templated
// input configuration, the secrets document and the resolved MCP output.
package config

import (
	"fmt"
)

// Top-level keys of the input documents.
const (
	KeyVersion   = "version"
	KeyMetadata  = "metadata"
	KeyVariables = "variables"
	KeyServers   = "servers"
	KeySecrets   = "secrets"
	KeyCommand   = "command"
	KeyArgs      = "args"
	KeyEnv       = "env"
)

// Config is the templated input document. Server definitions are kept as raw
// subtrees so every nested string can be substituted before decoding.
type Config struct {
	Version   string
	Metadata  map[string]any
	Variables map[string]string
	Servers   map[string]any
}

// Secrets is the separate secrets document.
type Secrets struct {
	Values map[string]string
}

// Server is a single MCP server launch definition.
type Server struct {
	Command string            `json:"command"`
	Args    []string          `json:"args"`
	Env     map[string]string `json:"env"`
}

// NewFromTree decodes a parsed input document. Only structural problems that
// prevent resolution are reported here; schema checks belong to the validator.
func NewFromTree(tree map[string]any) (*Config, error) {
	if tree == nil {
		return nil, ErrEmptyDocument
	}

	rawServers, ok := tree[KeyServers]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrMissingKey, KeyServers)
	}
	servers, ok := Normalize(rawServers).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a mapping", ErrInvalidShape, KeyServers)
	}

	cfg := &Config{
		Servers:   servers,
		Variables: map[string]string{},
	}

	if v, ok := tree[KeyVersion]; ok && v != nil {
		s, ok := ScalarString(v)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a string", ErrInvalidShape, KeyVersion)
		}
		cfg.Version = s
	}

	if v, ok := tree[KeyMetadata]; ok && v != nil {
		metadata, ok := Normalize(v).(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s must be a mapping", ErrInvalidShape, KeyMetadata)
		}
		cfg.Metadata = metadata
	}

	if v, ok := tree[KeyVariables]; ok && v != nil {
		vars, err := scalarMap(KeyVariables, v)
		if err != nil {
			return nil, err
		}
		cfg.Variables = vars
	}

	return cfg, nil
}

// NewSecretsFromTree decodes a parsed secrets document. A document without a
// secrets mapping yields an empty set.
func NewSecretsFromTree(tree map[string]any) (*Secrets, error) {
	secrets := &Secrets{Values: map[string]string{}}
	if tree == nil {
		return secrets, nil
	}

	v, ok := tree[KeySecrets]
	if !ok || v == nil {
		return secrets, nil
	}
	values, err := scalarMap(KeySecrets, v)
	if err != nil {
		return nil, err
	}
	secrets.Values = values
	return secrets, nil
}

func scalarMap(key string, v any) (map[string]string, error) {
	m, ok := Normalize(v).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s must be a mapping", ErrInvalidShape, key)
	}

	out := make(map[string]string, len(m))
	for _, name := range SortedKeys(m) {
		s, ok := ScalarString(m[name])
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrNonScalarValue, Path{key, name})
		}
		out[name] = s
	}
	return out, nil
}

// ServerNames returns the configured server names in lexical order.
func (c *Config) ServerNames() []string {
	return SortedKeys(c.Servers)
}

// DecodeServer converts a server subtree into a Server. A missing command
// decodes to an empty string so schema validation can report it; absent args
// and env decode to empty values.
func DecodeServer(path Path, raw any) (Server, error) {
	srv := Server{
		Args: []string{},
		Env:  map[string]string{},
	}

	node, ok := Normalize(raw).(map[string]any)
	if !ok {
		return srv, fmt.Errorf("%w: %s must be a mapping", ErrInvalidShape, path)
	}

	if v, ok := node[KeyCommand]; ok && v != nil {
		s, ok := ScalarString(v)
		if !ok {
			return srv, fmt.Errorf("%w: %s must be a string", ErrInvalidShape, path.Key(KeyCommand))
		}
		srv.Command = s
	}

	if v, ok := node[KeyArgs]; ok && v != nil {
		args, ok := v.([]any)
		if !ok {
			return srv, fmt.Errorf("%w: %s must be a sequence", ErrInvalidShape, path.Key(KeyArgs))
		}
		for i, arg := range args {
			s, ok := ScalarString(arg)
			if !ok {
				return srv, fmt.Errorf(
					"%w: %s must be a string",
					ErrInvalidShape,
					path.Key(KeyArgs).Index(i),
				)
			}
			srv.Args = append(srv.Args, s)
		}
	}

	if v, ok := node[KeyEnv]; ok && v != nil {
		env, ok := v.(map[string]any)
		if !ok {
			return srv, fmt.Errorf("%w: %s must be a mapping", ErrInvalidShape, path.Key(KeyEnv))
		}
		for _, name := range SortedKeys(env) {
			s, ok := ScalarString(env[name])
			if !ok {
				return srv, fmt.Errorf(
					"%w: %s must be a string",
					ErrInvalidShape,
					path.Key(KeyEnv).Key(name),
				)
			}
			srv.Env[name] = s
		}
	}

	return srv, nil
}

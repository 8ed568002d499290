package interpolation

import (
	"errors"
	"maps"
)

// Context holds the three namespaces references resolve against. Variables
// are fully resolved when NewContext returns; nothing mutates a Context
// afterwards.
type Context struct {
	variables map[string]string
	secrets   map[string]string
	env       Env
}

// NewContext resolves variables against each other, secrets and env, and
// returns the resulting Context. All variable failures are returned together.
func NewContext(variables, secrets map[string]string, env Env) (*Context, error) {
	c := &Context{
		variables: make(map[string]string, len(variables)),
		secrets:   make(map[string]string, len(secrets)),
		env:       env.Clone(),
	}
	maps.Copy(c.secrets, secrets)

	if err := c.resolveVariables(variables); err != nil {
		return nil, err
	}
	return c, nil
}

// Variables returns a copy of the resolved variables.
func (c *Context) Variables() map[string]string {
	return maps.Clone(c.variables)
}

// Lookup returns the value a single reference resolves to.
func (c *Context) Lookup(ref Reference) (string, error) {
	value, rerr := c.lookup(ref)
	if rerr != nil {
		return "", rerr
	}
	return value, nil
}

func (c *Context) lookup(ref Reference) (string, *ResolutionError) {
	var values map[string]string
	switch ref.Namespace {
	case NamespaceVariables:
		values = c.variables
	case NamespaceSecrets:
		values = c.secrets
	case NamespaceEnv:
		values = c.env
	default:
		return "", &ResolutionError{
			Reference: ref.Raw,
			Namespace: ref.Scope,
			Key:       ref.Key,
			Err:       ErrUnknownNamespace,
		}
	}

	value, ok := values[ref.Key]
	if !ok {
		return "", &ResolutionError{
			Reference: ref.Raw,
			Namespace: ref.Scope,
			Key:       ref.Key,
			Err:       ErrUndefinedReference,
		}
	}
	return value, nil
}

// Expand substitutes every reference in input. Substituted values are not
// rescanned. On failure the partially expanded string is returned along with
// every failed reference joined into one error.
func (c *Context) Expand(input string) (string, error) {
	result, errz := c.expand(input, "")
	return result, errors.Join(errz...)
}

// expand does the substitution; variable names the variable being defined,
// if any, so errors can point at it.
func (c *Context) expand(input, variable string) (string, []error) {
	if input == "" {
		return "", nil
	}

	var errz []error
	result := referencePattern.ReplaceAllStringFunc(input, func(match string) string {
		ref := newReference(referencePattern.FindStringSubmatch(match))
		value, rerr := c.lookup(ref)
		if rerr != nil {
			rerr.Variable = variable
			errz = append(errz, rerr)
			return match
		}
		return value
	})

	return result, errz
}

package interpolation

import (
	"errors"
	"slices"

	"github.com/atlanticdynamic/mcpgen/internal/config"
)

// dependencyGraph maps each variable to the variables its definition references.
type dependencyGraph struct {
	names []string
	deps  map[string][]string
	// broken marks variables that reference an undefined variable.
	broken map[string]bool
}

// newDependencyGraph builds the graph for raw, reporting every reference to a
// variable that is not defined. The graph is returned even when references
// are missing; the referring variables are marked broken.
func newDependencyGraph(raw map[string]string) (*dependencyGraph, error) {
	g := &dependencyGraph{
		names:  config.SortedKeys(raw),
		deps:   make(map[string][]string, len(raw)),
		broken: make(map[string]bool),
	}

	var errz []error
	for _, name := range g.names {
		for _, ref := range FindReferences(raw[name]) {
			if ref.Namespace != NamespaceVariables {
				continue
			}
			if _, ok := raw[ref.Key]; !ok {
				errz = append(errz, &ResolutionError{
					Variable:  name,
					Reference: ref.Raw,
					Namespace: ref.Scope,
					Key:       ref.Key,
					Err:       ErrUndefinedReference,
				})
				g.broken[name] = true
				continue
			}
			if !slices.Contains(g.deps[name], ref.Key) {
				g.deps[name] = append(g.deps[name], ref.Key)
			}
		}
	}

	return g, errors.Join(errz...)
}

// sort returns the resolvable variables ordered so that every variable comes
// after the variables it references. Variables on a cycle, broken variables
// and everything depending on them are left out; each cycle is reported once.
// Traversal follows sorted names, so both the order and any reported cycle
// are deterministic.
func (g *dependencyGraph) sort() ([]string, error) {
	const (
		unvisited = iota
		visiting
		visited
		failed
	)

	state := make(map[string]int, len(g.names))
	for name := range g.broken {
		state[name] = failed
	}
	order := make([]string, 0, len(g.names))
	var stack []string
	var errz []error

	var visit func(name string) bool
	visit = func(name string) bool {
		switch state[name] {
		case visited:
			return true
		case failed:
			return false
		case visiting:
			start := slices.Index(stack, name)
			chain := append(slices.Clone(stack[start:]), name)
			errz = append(errz, &ResolutionError{
				Variable: name,
				Chain:    chain,
				Err:      ErrCircularReference,
			})
			return false
		}

		state[name] = visiting
		stack = append(stack, name)
		ok := true
		for _, dep := range g.deps[name] {
			if !visit(dep) {
				ok = false
				break
			}
		}
		stack = stack[:len(stack)-1]

		if !ok {
			state[name] = failed
			return false
		}
		state[name] = visited
		order = append(order, name)
		return true
	}

	for _, name := range g.names {
		if state[name] == unvisited {
			visit(name)
		}
	}
	return order, errors.Join(errz...)
}

// resolveVariables expands raw variable definitions in dependency order into
// c.variables. Undefined variables and cycles are reported alongside the
// expansion failures of unrelated variables. A variable depending on one that
// failed is skipped so only the root failure is reported.
func (c *Context) resolveVariables(raw map[string]string) error {
	if len(raw) == 0 {
		return nil
	}

	graph, graphErr := newDependencyGraph(raw)
	order, cycleErr := graph.sort()

	errz := []error{graphErr, cycleErr}
	failed := make(map[string]bool)
	for _, name := range order {
		if slices.ContainsFunc(graph.deps[name], func(dep string) bool { return failed[dep] }) {
			failed[name] = true
			continue
		}

		value, expandErrz := c.expand(raw[name], name)
		if len(expandErrz) > 0 {
			failed[name] = true
			errz = append(errz, expandErrz...)
			continue
		}
		c.variables[name] = value
	}

	return errors.Join(errz...)
}

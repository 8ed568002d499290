package interpolation

import (
	"errors"
	"fmt"

	"github.com/atlanticdynamic/mcpgen/internal/config"
)

// ExpandTree returns a copy of node with every string, at any depth, expanded.
// Mapping keys and non-string scalars are left as they are. Failures are
// prefixed with the path of the value and returned together; the input is not
// modified.
func (c *Context) ExpandTree(node any, path config.Path) (any, error) {
	return c.expandNode(config.Normalize(node), path)
}

func (c *Context) expandNode(node any, path config.Path) (any, error) {
	switch n := node.(type) {
	case string:
		expanded, expandErrz := c.expand(n, "")
		if len(expandErrz) == 0 {
			return expanded, nil
		}
		errz := make([]error, 0, len(expandErrz))
		for _, err := range expandErrz {
			errz = append(errz, fmt.Errorf("%s: %w", path, err))
		}
		return n, errors.Join(errz...)

	case map[string]any:
		out := make(map[string]any, len(n))
		var errz []error
		for _, key := range config.SortedKeys(n) {
			value, err := c.expandNode(n[key], path.Key(key))
			if err != nil {
				errz = append(errz, err)
			}
			out[key] = value
		}
		return out, errors.Join(errz...)

	case []any:
		out := make([]any, len(n))
		var errz []error
		for i, item := range n {
			value, err := c.expandNode(item, path.Index(i))
			if err != nil {
				errz = append(errz, err)
			}
			out[i] = value
		}
		return out, errors.Join(errz...)

	default:
		return node, nil
	}
}

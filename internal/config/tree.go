package config

import (
	"fmt"
	"sort"
	"strconv"
)

// Normalize converts a decoded document into a tree made only of map[string]any,
// []any and scalars. YAML may produce map[any]any for non-string keys and tests
// build trees from typed literals, so every consumer works on the normalized form.
func Normalize(v any) any {
	switch node := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = Normalize(child)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[fmt.Sprint(k)] = Normalize(child)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(node))
		for k, child := range node {
			out[k] = child
		}
		return out
	case []any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = Normalize(child)
		}
		return out
	case []map[string]any:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = Normalize(child)
		}
		return out
	case []string:
		out := make([]any, len(node))
		for i, child := range node {
			out[i] = child
		}
		return out
	default:
		return v
	}
}

// ScalarString returns the string form of a scalar value. Mappings, sequences
// and nil are not scalars.
func ScalarString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case bool:
		return strconv.FormatBool(s), true
	case int:
		return strconv.Itoa(s), true
	case int64:
		return strconv.FormatInt(s, 10), true
	case uint64:
		return strconv.FormatUint(s, 10), true
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(s), 'f', -1, 32), true
	default:
		return "", false
	}
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

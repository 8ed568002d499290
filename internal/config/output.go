package config

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// KeyMCPServers is the single top-level key of the generated document.
const KeyMCPServers = "mcpServers"

// Output is the resolved document consumed by MCP clients.
type Output struct {
	MCPServers map[string]Server `json:"mcpServers"`

	// redacted holds values String never prints.
	redacted []string
}

// NewOutput returns an Output with no servers.
func NewOutput() *Output {
	return &Output{MCPServers: map[string]Server{}}
}

// ServerNames returns the generated server names in lexical order.
func (o *Output) ServerNames() []string {
	return SortedKeys(o.MCPServers)
}

// Redact registers values, typically resolved secrets, that are masked
// wherever they appear in the tree view. Empty values are ignored.
func (o *Output) Redact(values ...string) {
	for _, v := range values {
		if v != "" {
			o.redacted = append(o.redacted, v)
		}
	}
}

// redact replaces every registered value in s with the mask. Longer values
// are replaced first so a secret containing another is masked whole.
func (o *Output) redact(s string) string {
	if len(o.redacted) == 0 {
		return s
	}
	values := append([]string(nil), o.redacted...)
	slices.SortFunc(values, func(a, b string) int { return len(b) - len(a) })
	for _, v := range values {
		s = strings.ReplaceAll(s, v, maskedValue)
	}
	return s
}

// Render serializes the output as 2-space indented JSON with a trailing
// newline. Map keys are emitted in sorted order, so identical inputs always
// render to identical bytes. HTML characters are written as is.
func (o *Output) Render() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(o); err != nil {
		return nil, fmt.Errorf("marshal output: %w", err)
	}
	return buf.Bytes(), nil
}

// Tree returns the output as a generic document tree, the form the output
// validator checks.
func (o *Output) Tree() (map[string]any, error) {
	data, err := json.Marshal(o)
	if err != nil {
		return nil, fmt.Errorf("marshal output: %w", err)
	}
	var tree map[string]any
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("unmarshal output: %w", err)
	}
	return tree, nil
}

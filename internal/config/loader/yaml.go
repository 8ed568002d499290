package loader

import (
	"fmt"

	"github.com/atlanticdynamic/mcpgen/internal/config"
	"gopkg.in/yaml.v3"
)

type yamlLoader struct {
	source []byte
}

// NewYamlLoader creates a new YAML document loader
func NewYamlLoader(source []byte) *yamlLoader {
	return &yamlLoader{source: source}
}

// LoadTree parses the first YAML document in the source. An empty document
// (or one holding only comments) is an error, as is a non-mapping root.
func (l *yamlLoader) LoadTree() (map[string]any, error) {
	if len(l.source) == 0 {
		return nil, ErrNoSourceProvided
	}

	var doc any
	if err := yaml.Unmarshal(l.source, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if doc == nil {
		return nil, config.ErrEmptyDocument
	}

	tree, ok := config.Normalize(doc).(map[string]any)
	if !ok {
		return nil, config.ErrNotMapping
	}
	return tree, nil
}

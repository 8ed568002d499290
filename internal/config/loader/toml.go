package loader

import (
	"fmt"

	"github.com/atlanticdynamic/mcpgen/internal/config"
	"github.com/pelletier/go-toml/v2"
)

type tomlLoader struct {
	source []byte
}

// NewTomlLoader creates a new TOML document loader
func NewTomlLoader(source []byte) *tomlLoader {
	return &tomlLoader{source: source}
}

// LoadTree parses the TOML source. TOML documents are always tables, so the
// root is a mapping whenever parsing succeeds.
func (l *tomlLoader) LoadTree() (map[string]any, error) {
	if len(l.source) == 0 {
		return nil, ErrNoSourceProvided
	}

	var doc map[string]any
	if err := toml.Unmarshal(l.source, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	if len(doc) == 0 {
		return nil, config.ErrEmptyDocument
	}

	tree, ok := config.Normalize(doc).(map[string]any)
	if !ok {
		return nil, config.ErrNotMapping
	}
	return tree, nil
}

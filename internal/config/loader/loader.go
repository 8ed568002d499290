// Package loader parses configuration documents into generic trees. The format
// is chosen by file extension: YAML (and JSON, a YAML subset) or TOML.
package loader

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"
)

// Loader parses a document into a tree of map[string]any, []any and scalars.
type Loader interface {
	LoadTree() (map[string]any, error)
}

// LoaderFunc builds a Loader for raw document bytes.
type LoaderFunc func([]byte) Loader

// Reader fetches raw document bytes from a location.
type Reader interface {
	Read(ctx context.Context, location string) ([]byte, error)
}

// NewLoaderFromBytes creates a new Loader with the provided bytes
func NewLoaderFromBytes(data []byte, fn LoaderFunc) (Loader, error) {
	if len(data) == 0 {
		return nil, ErrNoSourceProvided
	}
	return fn(data), nil
}

// NewLoaderFromReader creates a new Loader from an io.Reader
func NewLoaderFromReader(reader io.Reader, fn LoaderFunc) (Loader, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read config data from reader: %w", err)
	}
	return NewLoaderFromBytes(data, fn)
}

// NewLoaderFromLocation reads a document through r and picks a Loader from
// the location's extension.
func NewLoaderFromLocation(ctx context.Context, r Reader, location string) (Loader, error) {
	fn, err := LoaderFuncForLocation(location)
	if err != nil {
		return nil, err
	}

	data, err := r.Read(ctx, location)
	if err != nil {
		return nil, err
	}
	return NewLoaderFromBytes(data, fn)
}

// LoaderFuncForLocation maps a file extension to its LoaderFunc.
func LoaderFuncForLocation(location string) (LoaderFunc, error) {
	ext := strings.ToLower(path.Ext(location))
	switch ext {
	case ".yaml", ".yml", ".json":
		return func(data []byte) Loader { return NewYamlLoader(data) }, nil
	case ".toml":
		return func(data []byte) Loader { return NewTomlLoader(data) }, nil
	default:
		return nil, fmt.Errorf("%w: '%s'", ErrUnsupportedExtension, ext)
	}
}

// LoadTree reads and parses the document at location.
func LoadTree(ctx context.Context, r Reader, location string) (map[string]any, error) {
	ld, err := NewLoaderFromLocation(ctx, r, location)
	if err != nil {
		return nil, err
	}
	return ld.LoadTree()
}

// Package storage reads and writes documents through viant/afs. Only local
// files and the in-memory filesystem are reachable; remote schemes are refused
// so generation never touches the network.
package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
	"github.com/viant/afs/file"
	"github.com/viant/afs/mem"
	"github.com/viant/afs/url"
)

var (
	ErrNoLocation        = errors.New("no location provided")
	ErrNotFound          = errors.New("file does not exist")
	ErrUnsupportedScheme = errors.New("unsupported storage scheme")
)

const (
	fileMode = 0o644
	dirMode  = 0o755
)

// Store is a local document store.
type Store struct {
	fs afs.Service
}

// New creates a Store backed by a fresh afs service.
func New() *Store {
	return &Store{fs: afs.New()}
}

// Read returns the content at location.
func (s *Store) Read(ctx context.Context, location string) ([]byte, error) {
	URL, err := resolve(location)
	if err != nil {
		return nil, err
	}

	exists, err := s.fs.Exists(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to check '%s': %w", location, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, location)
	}

	data, err := s.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to read '%s': %w", location, err)
	}
	return data, nil
}

// Exists reports whether location holds a document.
func (s *Store) Exists(ctx context.Context, location string) (bool, error) {
	URL, err := resolve(location)
	if err != nil {
		return false, err
	}
	return s.fs.Exists(ctx, URL)
}

// Write replaces the content at location, creating parent directories.
func (s *Store) Write(ctx context.Context, location string, data []byte) error {
	URL, err := resolve(location)
	if err != nil {
		return err
	}

	if url.Scheme(URL, file.Scheme) == file.Scheme {
		dir := filepath.Dir(strings.TrimPrefix(URL, file.Scheme+"://"))
		if err := os.MkdirAll(dir, dirMode); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := s.fs.Upload(ctx, URL, fileMode, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write '%s': %w", location, err)
	}
	return nil
}

// resolve turns a plain path into an absolute file URL and rejects schemes
// other than file and mem.
func resolve(location string) (string, error) {
	if location == "" {
		return "", ErrNoLocation
	}

	if !strings.Contains(location, "://") {
		abs, err := filepath.Abs(location)
		if err != nil {
			return "", fmt.Errorf("failed to resolve path '%s': %w", location, err)
		}
		return file.Scheme + "://" + filepath.ToSlash(abs), nil
	}

	switch scheme := url.Scheme(location, file.Scheme); scheme {
	case file.Scheme, mem.Scheme:
		return location, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
}

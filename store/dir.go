package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

const ext = ".json"

// Dir is a Store keeping one "<key>.json" file per key in a directory.
type Dir struct {
	root string
}

// NewDir returns a Dir store rooted at root, creating the directory if needed.
func NewDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("cannot create data directory %q: %w", root, err)
	}
	return &Dir{root: root}, nil
}

func (s *Dir) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key != filepath.Clean(key) {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.root, key+ext), nil
}

func (s *Dir) Get(_ context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	return data, err
}

// Put writes into a temporary file first, then renames it over the key file.
func (s *Dir) Put(_ context.Context, key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	f, err := os.CreateTemp(s.root, key+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := f.Write(value); err != nil {
		f.Close()
		os.Remove(f.Name())
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return err
	}
	if err := os.Rename(f.Name(), p); err != nil {
		os.Remove(f.Name())
		return err
	}
	log.Debug().Str("key", key).Int("bytes", len(value)).Msg("stored")
	return nil
}

func (s *Dir) Delete(_ context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

// List returns the known keys stored in the directory. Other files are
// ignored, the directory may be shared.
func (s *Dir) List(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		key, ok := strings.CutSuffix(e.Name(), ext)
		if e.IsDir() || !ok || !slices.Contains(Keys, key) {
			continue
		}
		keys = append(keys, key)
	}
	return sorted(keys), nil
}

func (s *Dir) Close() error { return nil }

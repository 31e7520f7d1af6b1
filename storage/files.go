// Package storage keeps save games on disk.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"hexxagon/game"
	"hexxagon/meta"
)

// ReadFile returns the whole content of path.
func ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// WriteFile replaces path with data, creating parent directories as needed.
// The content goes to a temporary file first and is renamed into place.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename %s: %w", path, err)
	}
	return nil
}

// FS stores boards as save game files in one directory.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

func (s *FS) Dir() string { return s.dir }

func (s *FS) pathFor(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), meta.SAVE_EXT)
	return filepath.Join(s.dir, name+meta.SAVE_EXT)
}

func (s *FS) Save(name string, b *game.Board) error {
	if b == nil || strings.TrimSpace(name) == "" {
		return errors.New("invalid save: missing name or board")
	}
	data, err := b.MarshalBinary()
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}
	return WriteFile(s.pathFor(name), data)
}

func (s *FS) Load(name string) (*game.Board, error) {
	path := s.pathFor(name)
	data, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	b, err := game.Deserialize(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return b, nil
}

// List returns the names of the stored games, sorted, without extension.
func (s *FS) List() ([]string, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []string
	for _, e := range ents {
		if e.IsDir() || !strings.HasSuffix(e.Name(), meta.SAVE_EXT) {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), meta.SAVE_EXT))
	}
	sort.Strings(out)
	return out, nil
}

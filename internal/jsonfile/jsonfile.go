// Package jsonfile persists a single JSON array in a file on local disk.
package jsonfile

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// a JSON array file guarded by an in-process lock. writes go to a temp file
// that is renamed over the original so readers never see a partial array
type Array[T any] struct {
	path string
	mu   sync.Mutex
}

func NewArray[T any](path string) *Array[T] {
	return &Array[T]{path: path}
}

func (a *Array[T]) Path() string {
	return a.path
}

// returns every record; a missing file is an empty array
func (a *Array[T]) Load() ([]T, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.readLocked()
}

// reads the array, applies fn and writes the result back under one lock.
// returning an error from fn skips the write
func (a *Array[T]) Update(fn func(items []T) ([]T, error)) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	items, err := a.readLocked()
	if err != nil {
		return err
	}

	updated, err := fn(items)
	if err != nil {
		return err
	}

	return a.writeLocked(updated)
}

func (a *Array[T]) readLocked() ([]T, error) {
	data, err := os.ReadFile(a.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []T{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", a.path, err)
	}

	items := []T{}
	if len(data) == 0 {
		return items, nil
	}

	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", a.path, err)
	}

	return items, nil
}

func (a *Array[T]) writeLocked(items []T) error {
	if items == nil {
		items = []T{}
	}

	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", a.path, err)
	}

	dir := filepath.Dir(a.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(a.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName) //nolint:errcheck // gone after a successful rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec
		return fmt.Errorf("failed to write %s: %w", tmpName, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpName, err)
	}

	if err := os.Rename(tmpName, a.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", a.path, err)
	}

	return nil
}

/* Copyright © 2025-2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/mikeb26/bcc-swiss/swiss"
)

const snapshotExt = ".json"

// FileStore keeps one JSON file per tournament in a directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("unable to create store dir %v: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

func (fst *FileStore) path(id string) string {
	return filepath.Join(fst.dir, id+snapshotExt)
}

func (fst *FileStore) Load(_ context.Context, id string) (*swiss.State, error) {
	if err := ValidateID(id); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(fst.path(id))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%v: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("unable to read snapshot %v: %w", id, err)
	}

	return decode(id, data)
}

// Save writes the snapshot to a temporary file and renames it into place so
// a reader never observes a partial snapshot.
func (fst *FileStore) Save(_ context.Context, id string, s *swiss.State) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	data, err := encode(s)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(fst.dir, id+".*.tmp")
	if err != nil {
		return fmt.Errorf("unable to save snapshot %v (create): %w", id, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("unable to save snapshot %v (write): %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("unable to save snapshot %v (close): %w", id, err)
	}
	if err := os.Rename(tmp.Name(), fst.path(id)); err != nil {
		return fmt.Errorf("unable to save snapshot %v (rename): %w", id, err)
	}

	return nil
}

func (fst *FileStore) Delete(_ context.Context, id string) error {
	if err := ValidateID(id); err != nil {
		return err
	}
	err := os.Remove(fst.path(id))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("unable to delete snapshot %v: %w", id, err)
	}
	return nil
}

func (fst *FileStore) List(_ context.Context) ([]string, error) {
	ents, err := os.ReadDir(fst.dir)
	if err != nil {
		return nil, fmt.Errorf("unable to list snapshots: %w", err)
	}
	var ids []string
	for _, e := range ents {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, snapshotExt) {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, snapshotExt))
	}
	sort.Strings(ids)

	return ids, nil
}

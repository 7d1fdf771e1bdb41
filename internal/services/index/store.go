package index

import (
	"encoding/gob"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/iyunix/go-retriever/internal/domain"
)

const indexFileName = "index.gob"

// Store persists one index per user under dir/<username>/index.gob. The
// storage key is always derived from the authenticated username, never from
// client-supplied input, and usernames are validated before touching the
// filesystem.
type Store struct {
	dir string
}

func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(username string) (string, error) {
	if !domain.IsSafeUsername(username) {
		return "", ErrInvalidUsername
	}
	return filepath.Join(s.dir, username, indexFileName), nil
}

// Save writes the index atomically: encode to a temp file in the target
// directory, then rename over any previous index. A reader never observes a
// half-written file.
func (s *Store) Save(username string, idx *Index) error {
	path, err := s.path(username)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create index directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, indexFileName+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp index file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := gob.NewEncoder(tmp).Encode(idx); err != nil {
		tmp.Close()
		return fmt.Errorf("encode index: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp index file: %w", err)
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace index file: %w", err)
	}
	return nil
}

// Load reads the persisted index for username; ErrIndexNotFound if absent.
func (s *Store) Load(username string) (*Index, error) {
	path, err := s.path(username)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrIndexNotFound
		}
		return nil, fmt.Errorf("open index file: %w", err)
	}
	defer f.Close()

	var idx Index
	if err := gob.NewDecoder(f).Decode(&idx); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	return &idx, nil
}

// Delete removes the user's index directory; ErrIndexNotFound if absent.
func (s *Store) Delete(username string) error {
	path, err := s.path(username)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if _, err := os.Stat(dir); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrIndexNotFound
		}
		return fmt.Errorf("stat index directory: %w", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove index directory: %w", err)
	}
	return nil
}

// Exists reports whether a persisted index is present for username.
func (s *Store) Exists(username string) (bool, error) {
	path, err := s.path(username)
	if err != nil {
		return false, err
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

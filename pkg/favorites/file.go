package favorites

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	errs "github.com/matzehuels/shelfmount/pkg/errors"
)

// FileStore keeps all favorites in one JSON array. It is safe for
// concurrent use within a process.
type FileStore struct {
	mu   sync.RWMutex
	path string
}

// DefaultPath is favorites.json under the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errs.Wrap(errs.ErrCodeStorage, err, "locate config dir")
	}
	return filepath.Join(dir, "shelfmount", "favorites.json"), nil
}

// NewFileStore uses path, or [DefaultPath] when path is empty. The file is
// created on first save.
func NewFileStore(path string) (*FileStore, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "create favorites dir")
	}
	return &FileStore{path: path}, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) load() ([]Favorite, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "read favorites")
	}
	var favs []Favorite
	if err := json.Unmarshal(data, &favs); err != nil {
		return nil, errs.Wrap(errs.ErrCodeStorage, err, "parse %s", s.path)
	}
	return favs, nil
}

func (s *FileStore) store(favs []Favorite) error {
	data, err := json.MarshalIndent(favs, "", "  ")
	if err != nil {
		return errs.Wrap(errs.ErrCodeInternal, err, "marshal favorites")
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "write favorites")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errs.Wrap(errs.ErrCodeStorage, err, "write favorites")
	}
	return nil
}

func (s *FileStore) List(_ context.Context) ([]Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	favs, err := s.load()
	if err != nil {
		return nil, err
	}
	sortByCreated(favs)
	return favs, nil
}

func (s *FileStore) Get(_ context.Context, id string) (Favorite, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	favs, err := s.load()
	if err != nil {
		return Favorite{}, err
	}
	for _, f := range favs {
		if f.ID == id {
			return f, nil
		}
	}
	return Favorite{}, notFound(id)
}

func (s *FileStore) Save(_ context.Context, f Favorite) (Favorite, error) {
	f, err := prepare(f)
	if err != nil {
		return Favorite{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.load()
	if err != nil {
		return Favorite{}, err
	}
	replaced := false
	for i := range favs {
		if favs[i].ID == f.ID {
			favs[i], replaced = f, true
			break
		}
	}
	if !replaced {
		favs = append(favs, f)
	}
	if err := s.store(favs); err != nil {
		return Favorite{}, err
	}
	return f, nil
}

func (s *FileStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	favs, err := s.load()
	if err != nil {
		return err
	}
	kept := favs[:0]
	for _, f := range favs {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	if len(kept) == len(favs) {
		return notFound(id)
	}
	return s.store(kept)
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)

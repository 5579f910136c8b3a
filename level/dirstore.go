package level

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sync"
)

var validID = regexp.MustCompile(`^[a-zA-Z0-9_-]{1,64}$`)

// ErrInvalidID is returned for ids that cannot be used as file names.
var ErrInvalidID = errors.New("level: invalid id")

// DirStore keeps one JSON file per level in a directory.
type DirStore struct {
	dir string
	mu  sync.RWMutex
}

func NewDirStore(dir string) (*DirStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("level: create store %s: %w", dir, err)
	}
	return &DirStore{dir: dir}, nil
}

func (s *DirStore) Dir() string { return s.dir }

// ValidID reports whether id can name a stored level.
func ValidID(id string) bool { return validID.MatchString(id) }

func (s *DirStore) path(id string) (string, error) {
	if !ValidID(id) {
		return "", fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return filepath.Join(s.dir, id+".json"), nil
}

// List returns every stored level, ordered.
func (s *DirStore) List() ([]Level, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return LoadFS(os.DirFS(s.dir), ".")
}

func (s *DirStore) Get(id string) (Level, error) {
	p, err := s.path(id)
	if err != nil {
		return Level{}, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, err := os.ReadFile(p)
	if errors.Is(err, fs.ErrNotExist) {
		return Level{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return Level{}, fmt.Errorf("level: read %s: %w", id, err)
	}
	l, err := Decode(b)
	if err != nil {
		return Level{}, err
	}
	l.ID = id
	return l, nil
}

// Put writes a level, replacing any existing one with the same id.
func (s *DirStore) Put(id string, l Level) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	l.ID = id
	b, err := Encode(l)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	tmp, err := os.CreateTemp(s.dir, id+".*.tmp")
	if err != nil {
		return fmt.Errorf("level: write %s: %w", id, err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("level: write %s: %w", id, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("level: write %s: %w", id, err)
	}
	if err := os.Rename(tmp.Name(), p); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("level: write %s: %w", id, err)
	}
	return nil
}

func (s *DirStore) Delete(id string) error {
	p, err := s.path(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	err = os.Remove(p)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return err
}

package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/model"
)

type fileState struct {
	Slots map[string]json.RawMessage `json:"slots"`
}

type fileStore struct {
	mu   sync.Mutex
	path string
}

// FileStorage is a key/value slot file on disk. Every slot shares one file,
// the way browser local storage shares one origin.
type FileStorage struct {
	store *fileStore
	key   string
}

func NewFileStorage(dataDir, key string) (*FileStorage, error) {
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, err
	}
	return &FileStorage{
		store: &fileStore{path: filepath.Join(dataDir, "slots.json")},
		key:   normalizeKey(key),
	}, nil
}

// WithKey returns a view onto another slot of the same file.
func (s *FileStorage) WithKey(key string) *FileStorage {
	return &FileStorage{store: s.store, key: normalizeKey(key)}
}

// Path is the backing file.
func (s *FileStorage) Path() string { return s.store.path }

func (s *fileStore) readLocked() (fileState, error) {
	st := fileState{Slots: map[string]json.RawMessage{}}
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return st, nil
		}
		return st, err
	}
	if err := json.Unmarshal(b, &st); err != nil {
		return st, err
	}
	if st.Slots == nil {
		st.Slots = map[string]json.RawMessage{}
	}
	return st, nil
}

// writeLocked replaces the file through a rename so readers never observe a
// half-written slot.
func (s *fileStore) writeLocked(st fileState) error {
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".slots-*.json")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStorage) Load(_ context.Context) ([]model.Task, error) {
	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	st, err := s.store.readLocked()
	if err != nil {
		return nil, err
	}
	return Decode(st.Slots[s.key])
}

func (s *FileStorage) Save(_ context.Context, tasks []model.Task) error {
	b, err := Encode(tasks)
	if err != nil {
		return err
	}

	s.store.mu.Lock()
	defer s.store.mu.Unlock()

	st, err := s.store.readLocked()
	if err != nil {
		return err
	}
	st.Slots[s.key] = b
	return s.store.writeLocked(st)
}

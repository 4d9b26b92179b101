package storage

import (
	"context"
	"sync"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/model"
)

// MemoryStorage keeps the encoded slot in memory (dev/test use).
// Values round-trip through JSON so callers never share state with it.
type MemoryStorage struct {
	mu      sync.RWMutex
	slot    []byte
	saves   int
	saveErr error
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{}
}

func (s *MemoryStorage) Load(_ context.Context) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Decode(s.slot)
}

func (s *MemoryStorage) Save(_ context.Context, tasks []model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.saveErr != nil {
		return s.saveErr
	}
	b, err := Encode(tasks)
	if err != nil {
		return err
	}
	s.slot = b
	s.saves++
	return nil
}

// FailSaves makes every following Save return err. Pass nil to recover.
func (s *MemoryStorage) FailSaves(err error) {
	s.mu.Lock()
	s.saveErr = err
	s.mu.Unlock()
}

// Raw returns a copy of the stored slot.
func (s *MemoryStorage) Raw() []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]byte(nil), s.slot...)
}

// SetRaw replaces the stored slot verbatim.
func (s *MemoryStorage) SetRaw(b []byte) {
	s.mu.Lock()
	s.slot = append([]byte(nil), b...)
	s.mu.Unlock()
}

// Saves counts successful writes.
func (s *MemoryStorage) Saves() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.saves
}

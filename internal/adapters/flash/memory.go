package flash

import (
	"context"
	"strings"
	"sync"

	"groomer-portal/internal/ports/notify"
)

type memoryStore struct {
	mu    sync.Mutex
	byKey map[string][]notify.Notice
}

// NewMemoryStore guarda flashes en memoria del proceso (dev / single instance).
func NewMemoryStore() notify.Store {
	return &memoryStore{byKey: map[string][]notify.Notice{}}
}

func (s *memoryStore) Push(_ context.Context, key string, notices []notify.Notice) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return ErrEmptyKey
	}
	if len(notices) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byKey[key] = append(s.byKey[key], notices...)
	return nil
}

func (s *memoryStore) Pop(_ context.Context, key string) ([]notify.Notice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.byKey[key]
	delete(s.byKey, key)
	if out == nil {
		out = []notify.Notice{}
	}
	return out, nil
}

package pinstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/anocare/anocare/internal/common"
)

// MemoryStore is an in-process Store used in tests and local development.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (s *MemoryStore) Pin(ctx context.Context, data []byte) (string, error) {
	c, err := ComputeCID(data)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUploadFailure, err)
	}

	cp := make([]byte, len(data))
	copy(cp, data)

	s.mu.Lock()
	s.blobs[c] = cp
	s.mu.Unlock()

	return c, nil
}

func (s *MemoryStore) Retrieve(ctx context.Context, c string) ([]byte, error) {
	s.mu.RLock()
	data, ok := s.blobs[c]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s not pinned", common.ErrRetrievalFailure, c)
	}

	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, nil
}

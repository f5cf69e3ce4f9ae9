package auth

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const nonceTTL = 5 * time.Minute

type nonceEntry struct {
	value   string
	expires time.Time
}

// NonceStore issues single-use login nonces per address. A nonce is consumed
// on first verification attempt, successful or not.
type NonceStore struct {
	mu      sync.Mutex
	entries map[string]nonceEntry
}

func NewNonceStore() *NonceStore {
	return &NonceStore{entries: make(map[string]nonceEntry)}
}

// Issue creates a fresh nonce for the address, replacing any previous one.
func (s *NonceStore) Issue(address string) string {
	nonce := uuid.NewString()

	s.mu.Lock()
	s.entries[strings.ToLower(address)] = nonceEntry{value: nonce, expires: time.Now().Add(nonceTTL)}
	s.mu.Unlock()

	return nonce
}

// Consume checks and invalidates the nonce for the address.
func (s *NonceStore) Consume(address, nonce string) bool {
	key := strings.ToLower(address)

	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[key]
	if !ok {
		return false
	}
	delete(s.entries, key)

	return entry.value == nonce && time.Now().Before(entry.expires)
}

package chain

import (
	"context"
	"strings"
	"sync"
)

// StaticRegistry is an in-memory Registry for tests and local development.
type StaticRegistry struct {
	mu      sync.Mutex
	admins  map[string]struct{}
	minted  map[string]string // address -> idempotency key
	MintErr error             // injected failure for the next Mint calls
}

func NewStaticRegistry(admins ...string) *StaticRegistry {
	m := make(map[string]struct{}, len(admins))
	for _, a := range admins {
		m[strings.ToLower(a)] = struct{}{}
	}
	return &StaticRegistry{admins: m, minted: make(map[string]string)}
}

func (r *StaticRegistry) IsAdmin(ctx context.Context, address string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.admins[strings.ToLower(address)]
	return ok, nil
}

func (r *StaticRegistry) Admins(ctx context.Context) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.admins))
	for a := range r.admins {
		out = append(out, a)
	}
	return out, nil
}

func (r *StaticRegistry) Mint(ctx context.Context, to string, idempotencyKey string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.MintErr != nil {
		return "", r.MintErr
	}
	r.minted[strings.ToLower(to)] = idempotencyKey
	return "0xtx-" + strings.ToLower(to), nil
}

// Minted reports whether a mint was recorded for address.
func (r *StaticRegistry) Minted(address string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.minted[strings.ToLower(address)]
	return ok
}

// Package chain talks to the Anocare registry contract: admin-privilege
// checks, the admin set used for key wrapping, and the verified-professional
// credential mint.
package chain

import "context"

// Registry is the on-chain collaborator consumed by the review workflow.
type Registry interface {
	// IsAdmin reports whether address holds reviewer privilege.
	IsAdmin(ctx context.Context, address string) (bool, error)

	// Admins returns the current set of admin addresses.
	Admins(ctx context.Context) ([]string, error)

	// Mint grants the verified-professional credential NFT to the given
	// address and returns the transaction hash. idempotencyKey identifies
	// one logical mint attempt; callers must never re-run a mint whose
	// outcome is unknown (see the approve saga).
	Mint(ctx context.Context, to string, idempotencyKey string) (string, error)
}

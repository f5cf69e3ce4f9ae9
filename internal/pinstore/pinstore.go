// Package pinstore stores opaque ciphertext blobs under content identifiers,
// mimicking a pinning network: the CID is computed from the bytes themselves
// (CIDv1, raw codec, sha2-256), so retrieval by CID always yields the exact
// bytes that were pinned.
package pinstore

import (
	"context"
	"fmt"

	"github.com/ipfs/go-cid"
	mh "github.com/multiformats/go-multihash"
)

// Store pushes bytes to and retrieves bytes from a content-addressed backend.
// A single attempt is made per call; callers own any retry policy.
type Store interface {
	// Pin uploads data and returns its content identifier. Failures surface
	// as common.ErrUploadFailure; the caller must not proceed with a
	// submission on error.
	Pin(ctx context.Context, data []byte) (string, error)

	// Retrieve returns the bytes previously pinned under c. Not-found and
	// network failures surface as common.ErrRetrievalFailure.
	Retrieve(ctx context.Context, c string) ([]byte, error)
}

// ComputeCID returns the CIDv1 (raw, sha2-256) of data.
func ComputeCID(data []byte) (string, error) {
	sum, err := mh.Sum(data, mh.SHA2_256, -1)
	if err != nil {
		return "", fmt.Errorf("multihash: %w", err)
	}
	return cid.NewCidV1(cid.Raw, sum).String(), nil
}

package store

import (
	"context"

	"github.com/claidex/backend/pkg/common"
)

// Traversal bounds. The ownership graph is densely connected around large
// chains, so both the hop count and the number of returned paths are capped
// to guarantee termination and bounded memory.
const (
	MaxDepth = 5
	MaxPaths = 500
)

// ClampDepth maps any requested depth onto the effective traversal depth
// max(1, min(d, MaxDepth)). Out-of-range depths are capped, never rejected.
func ClampDepth(d int) int {
	if d < 1 {
		return 1
	}
	if d > MaxDepth {
		return MaxDepth
	}
	return d
}

// OwnershipPaths is the raw result of one bounded traversal. Seed is the
// resolved seed node (present even when no ownership edges exist) and
// Truncated reports that the MaxPaths cap was hit, meaning more paths may
// exist. Truncation is not an error.
type OwnershipPaths struct {
	Seed      common.Node
	Paths     []common.RawPath
	Truncated bool
}

// GraphQuery is the narrow pattern-match capability the ownership core
// consumes: bounded-depth path search from a seed node along OWNS and
// CONTROLLED_BY edges in either direction. Implementations are read-only.
//
// Errors: common.ErrNotFound when the seed id does not exist in the graph,
// common.ErrGraphUnavailable when the backing store cannot be reached.
type GraphQuery interface {
	FindOwnershipPaths(ctx context.Context, seed common.NodeRef, maxDepth int) (*OwnershipPaths, error)
}

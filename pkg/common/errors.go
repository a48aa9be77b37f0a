package common

import "errors"

// Error taxonomy shared across the graph and relational layers. The HTTP
// layer maps these onto status codes (404 / 422 / 503); everything else is
// an internal error and surfaces as 500.
var (
	// ErrNotFound means the requested seed entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput means a malformed id or parameter combination.
	ErrInvalidInput = errors.New("invalid input")

	// ErrGraphUnavailable means the graph store cannot be reached. Kept
	// distinct from ErrNotFound so callers can choose 404 vs 503.
	ErrGraphUnavailable = errors.New("graph store unavailable")

	// ErrStoreUnavailable means the relational store cannot be reached.
	ErrStoreUnavailable = errors.New("relational store unavailable")
)

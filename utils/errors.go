package utils

import "errors"

var (
	ErrEmptyTree   = errors.New("invalid tree: operation needs a non-empty tree")
	ErrKeyNotFound = errors.New("invalid key: not found in tree")

	ErrOrderViolated = errors.New("invalid join: keys out of order around pivot")
	ErrPivotAttached = errors.New("invalid join: pivot is not a detached node")

	// ErrInvariant marks a corrupted structure. It is only ever panicked with.
	ErrInvariant = errors.New("invariant violated")

	ErrInvalidSize      = errors.New("invalid size: reference tree needs at least one key")
	ErrInvalidID        = errors.New("invalid id: no tree registered under id")
	ErrInvalidOperation = errors.New("invalid operation")
	ErrTreeExists       = errors.New("invalid id: tree already registered")

	ErrMissingArgs = errors.New("invalid command: insufficient num of args")
)

package store

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by item storage. Callers should use [errors.Is]
// to match against these values.
var (
	// ErrItemNotFound is returned when no live row exists for the requested
	// (owner, uuid) pair.
	ErrItemNotFound = errors.New("item was not found")

	// ErrStorage is the opaque storage failure: the operation did not
	// complete. Every low-level error below wraps it.
	ErrStorage = errors.New("storage error")
)

// Low-level database operation errors. Each wraps [ErrStorage], so callers
// that only care whether the store failed can match on that alone.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails.
	ErrBuildingSQLQuery = fmt.Errorf("%w: error building sql query", ErrStorage)

	// ErrExecutingQuery is returned when executing a statement against the
	// database fails.
	ErrExecutingQuery = fmt.Errorf("%w: error executing sql query", ErrStorage)

	// ErrScanningRow is returned when scanning column values from a single
	// result row fails.
	ErrScanningRow = fmt.Errorf("%w: failed to scan item row", ErrStorage)

	// ErrScanningRows is returned when iterating a multi-row result fails
	// mid-result-set.
	ErrScanningRows = fmt.Errorf("%w: failed to scan item rows", ErrStorage)
)

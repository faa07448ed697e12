package engine

import "errors"

var (
	// ErrNotFound indicates the variable or list entry is known to no store.
	ErrNotFound = errors.New("not found")

	// ErrNotManaged indicates the variable is visible only through the
	// inherited process environment, which menv cannot rewrite.
	ErrNotManaged = errors.New("not managed")

	// ErrNotPathLike indicates a list operation on a scalar variable.
	ErrNotPathLike = errors.New("not a PATH-like variable")

	// ErrStoreWrite indicates the primary store rejected a mutation.
	ErrStoreWrite = errors.New("store write failed")

	// ErrCancelled indicates the user declined a confirmation prompt.
	ErrCancelled = errors.New("cancelled")
)

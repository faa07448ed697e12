package engine

import "github.com/thgossler/menv/internal/pathlist"

// SetRequest represents a request to set a variable in every relevant
// store.
type SetRequest struct {
	// Name is the variable name.
	Name string

	// Value is the value to bind.
	Value string
}

// DeleteRequest represents a request to remove a variable from every store
// that claims it.
type DeleteRequest struct {
	// Name is the variable name.
	Name string
}

// AddPathRequest represents a request to add one entry to a PATH-like
// variable.
type AddPathRequest struct {
	// Name is the list variable name.
	Name string

	// Entry is the list entry to add.
	Entry string

	// Mode places the entry at the front or the back of the list.
	Mode pathlist.Mode
}

// RemovePathRequest represents a request to remove one entry from a
// PATH-like variable everywhere it occurs.
type RemovePathRequest struct {
	// Name is the list variable name.
	Name string

	// Entry is the list entry to remove.
	Entry string
}

// InfoRequest represents a request for the full per-store state of a
// variable.
type InfoRequest struct {
	// Name is the variable name.
	Name string
}

// VisibilityRequest represents a request to check what newly launched
// programs would see for a variable.
type VisibilityRequest struct {
	// Name is the variable name.
	Name string
}

// AnalyzeRequest represents a request to analyze a PATH-like variable's
// entries.
type AnalyzeRequest struct {
	// Name is the list variable name.
	Name string
}

// ListRequest represents a request to list every managed variable.
type ListRequest struct{}

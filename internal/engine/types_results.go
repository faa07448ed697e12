package engine

import (
	"github.com/thgossler/menv/internal/pathlist"
	"github.com/thgossler/menv/internal/planner"
	"github.com/thgossler/menv/internal/stores"
)

// SetResult represents the result of setting a variable.
type SetResult struct {
	// Name and Value echo the binding that was written.
	Name  string
	Value string

	// PathLike reports whether the variable was treated as a list, which
	// skips the shell profile write.
	PathLike bool

	// ProfileTarget is the file a profile declaration was written to,
	// empty when no profile write happened.
	ProfileTarget string

	// Applied is the list of operations that were executed.
	Applied []planner.Operation

	// Displaced is the login agent binding this write discarded, if any.
	Displaced *stores.Binding

	// Warnings lists non-fatal per-store failures and shadowing notices.
	Warnings []string
}

// DeleteResult represents the result of deleting a variable.
type DeleteResult struct {
	// Name is the removed variable.
	Name string

	// RemovedFrom lists the stores the binding was removed from.
	RemovedFrom []stores.SourceKind

	// InheritedValue is the value still visible in the current process
	// after removal, empty when none.
	InheritedValue string

	// Warnings lists stores that failed to apply the removal.
	Warnings []string
}

// AddPathResult represents the result of adding a list entry.
type AddPathResult struct {
	// Name and Entry echo the request.
	Name  string
	Entry string

	// AlreadyPresent reports that the entry was in the list and nothing
	// was changed.
	AlreadyPresent bool

	// NewValue is the list value after the change.
	NewValue string

	// Applied is the list of operations that were executed.
	Applied []planner.Operation

	// Displaced is the login agent binding this write discarded, if any.
	Displaced *stores.Binding

	// Warnings lists non-fatal per-store failures.
	Warnings []string
}

// RemovePathResult represents the result of removing a list entry from
// every store that carried it.
type RemovePathResult struct {
	// Name and Entry echo the request.
	Name  string
	Entry string

	// Applied is the list of operations that were executed.
	Applied []planner.Operation

	// BindingRemoved reports that at least one store lost the variable
	// entirely because the entry was its whole list.
	BindingRemoved bool

	// Warnings lists non-fatal per-store failures.
	Warnings []string
}

// SourceStatus is one store's view of a variable, including stores that do
// not hold it.
type SourceStatus struct {
	// Kind is the store.
	Kind stores.SourceKind

	// Present reports whether the store holds a binding.
	Present bool

	// Value is the bound value when present.
	Value string

	// Location names the file or mechanism behind the store.
	Location string
}

// InfoResult represents the reconciled per-store state of one variable.
type InfoResult struct {
	// Name is the variable.
	Name string

	// Found reports whether any store knows the name.
	Found bool

	// Value is the effective value by store precedence.
	Value string

	// PathLike reports whether the variable is treated as a list.
	PathLike bool

	// InheritedOnly reports that the variable is visible but unmanaged.
	InheritedOnly bool

	// Statuses holds one entry per store, in precedence order.
	Statuses []SourceStatus

	// Declarations lists every shell profile declaration of the name in
	// probe order; entries past the first are shadowed.
	Declarations []stores.Declaration
}

// VisibilityResult represents what each launch context would see for a
// variable.
type VisibilityResult struct {
	// Name is the variable.
	Name string

	// Value is the effective value by store precedence.
	Value string

	// Apps reports visibility to newly launched applications: a session
	// binding, or a login agent that republishes one at the next login.
	Apps bool

	// AppValue is the value applications would see.
	AppValue string

	// Shells reports visibility to newly opened shells: a profile
	// declaration, or the login agent.
	Shells bool

	// ShellValue is the value shells would see.
	ShellValue string

	// CurrentProcess reports whether this very process carries the
	// variable, which it inherited before any of the above could change.
	CurrentProcess bool

	// ProcessValue is the raw process environment value.
	ProcessValue string
}

// AnalyzeResult represents the analysis of a PATH-like variable.
type AnalyzeResult struct {
	// Name is the variable.
	Name string

	// Value is the effective list value that was analyzed.
	Value string

	// Analysis carries entry statistics and per-entry existence.
	Analysis pathlist.Analysis

	// Suggestions lists human-readable cleanup advice.
	Suggestions []string
}

// ListEntry is one variable in a listing.
type ListEntry struct {
	// Name is the variable.
	Name string

	// Value is the effective value.
	Value string

	// Sources lists the stores claiming the name, in precedence order.
	Sources []stores.SourceKind
}

// ListResult represents the listing of all managed variables.
type ListResult struct {
	// Entries holds one entry per managed variable, sorted by name.
	Entries []ListEntry
}

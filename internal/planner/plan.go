// Package planner builds deterministic mutation plans across backing
// stores.
//
// A single user command can touch several stores: setting a variable writes
// the session environment, the login agent, and possibly a shell profile;
// removing a PATH entry rewrites every store and file that carries it. The
// planner turns a resolved state plus the requested change into an ordered
// list of store operations, so the engine can execute, report, and where
// needed continue past per-store failures with an exact record of what was
// attempted.
package planner

import (
	"fmt"

	"github.com/thgossler/menv/internal/stores"
)

// Operation type constants
const (
	OpSessionSet     = "session_set"
	OpSessionUnset   = "session_unset"
	OpAgentBind      = "agent_bind"
	OpAgentRemove    = "agent_remove"
	OpProfileSet     = "profile_set"
	OpProfileRemove  = "profile_remove"
	OpProfileRewrite = "profile_rewrite"
	OpLegacySet      = "legacy_set"
	OpLegacyRemove   = "legacy_remove"
)

// Operation represents a single store mutation to execute.
type Operation struct {
	// Type is one of the Op constants.
	Type string

	// Kind is the store the operation targets.
	Kind stores.SourceKind

	// Name is the variable being changed.
	Name string

	// Value is the value written by set and bind operations.
	Value string

	// File and Edits carry the per-line changes of a profile rewrite.
	File  string
	Edits []stores.Edit
}

// Describe renders the operation for prompts and verbose output.
func (op Operation) Describe() string {
	switch op.Type {
	case OpSessionSet:
		return fmt.Sprintf("set %s in the session environment", op.Name)
	case OpSessionUnset:
		return fmt.Sprintf("remove %s from the session environment", op.Name)
	case OpAgentBind:
		return fmt.Sprintf("bind %s in the login agent", op.Name)
	case OpAgentRemove:
		return fmt.Sprintf("remove the %s login agent binding", op.Name)
	case OpProfileSet:
		return fmt.Sprintf("declare %s in the shell profile", op.Name)
	case OpProfileRemove:
		return fmt.Sprintf("remove %s declarations from shell profiles", op.Name)
	case OpProfileRewrite:
		return fmt.Sprintf("rewrite %s declaration in %s", op.Name, op.File)
	case OpLegacySet:
		return fmt.Sprintf("update %s in the legacy environment.plist", op.Name)
	case OpLegacyRemove:
		return fmt.Sprintf("remove %s from the legacy environment.plist", op.Name)
	default:
		return fmt.Sprintf("%s %s", op.Type, op.Name)
	}
}

// Plan is an ordered list of store operations for one variable.
type Plan struct {
	// Name is the variable the plan changes.
	Name string

	// Operations is the ordered list of operations to execute.
	Operations []Operation
}

// NewPlan creates a new empty Plan for name.
func NewPlan(name string) *Plan {
	return &Plan{Name: name, Operations: []Operation{}}
}

// Add appends an operation to the plan.
func (p *Plan) Add(op Operation) {
	p.Operations = append(p.Operations, op)
}

// IsEmpty reports whether the plan changes nothing.
func (p *Plan) IsEmpty() bool {
	return len(p.Operations) == 0
}

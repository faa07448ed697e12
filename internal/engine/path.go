package engine

import (
	"context"
	"fmt"

	"github.com/thgossler/menv/internal/pathlist"
	"github.com/thgossler/menv/internal/planner"
)

// Algorithm steps:
// 1. Validate the name and require a PATH-like variable
// 2. Resolve the current list; the inherited value is a valid base for a
//    variable not yet managed
// 3. A list already containing the entry is a successful no-op
// 4. Combine and write through the session and agent stores
func (e *Engine) AddPathEntry(ctx context.Context, req *AddPathRequest) (*AddPathResult, error) {
	name, err := e.validateName(req.Name)
	if err != nil {
		return nil, err
	}
	if !e.PathLike(name) {
		return nil, fmt.Errorf("%w: %s", ErrNotPathLike, name)
	}

	record, err := e.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
	}

	current := record.Value
	if pathlist.Parse(current).Contains(req.Entry) {
		return &AddPathResult{
			Name:           name,
			Entry:          req.Entry,
			AlreadyPresent: true,
			NewValue:       current,
		}, nil
	}

	value := pathlist.Combine(current, req.Entry, req.Mode)
	plan := planner.BuildSet(name, value, true)

	applied, displaced, warnings, err := e.applyPlan(ctx, plan, true)
	if err != nil {
		return nil, err
	}

	result := &AddPathResult{
		Name:      name,
		Entry:     req.Entry,
		NewValue:  value,
		Applied:   applied,
		Displaced: displaced,
		Warnings:  warnings,
	}
	if displaced != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"login agent was bound to %s=%s; that binding is gone", displaced.Name, displaced.Value))
	}
	return result, nil
}

// Algorithm steps:
// 1. Validate the name and require a PATH-like variable
// 2. Resolve claims and locate every profile declaration of the name
// 3. Plan per-store rewrites; a store whose list empties loses the binding
// 4. A plan with nothing to do distinguishes "entry not present" from
//    "present but only inherited"
// 5. Execute, continuing past store failures
func (e *Engine) RemovePathEntry(ctx context.Context, req *RemovePathRequest) (*RemovePathResult, error) {
	name, err := e.validateName(req.Name)
	if err != nil {
		return nil, err
	}
	if !e.PathLike(name) {
		return nil, fmt.Errorf("%w: %s", ErrNotPathLike, name)
	}

	record, err := e.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
	}
	if !record.Found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	decls, err := e.set.Profiles.Declarations(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile declarations: %w", err)
	}

	plan := planner.BuildEntryRemoval(record, decls, req.Entry)
	if plan.IsEmpty() {
		if record.InheritedOnly() && pathlist.Parse(record.Value).Contains(req.Entry) {
			return nil, fmt.Errorf("%w: %q appears only in the inherited environment of this process",
				ErrNotManaged, req.Entry)
		}
		return nil, fmt.Errorf("%w: %q is not an entry of %s in any store", ErrNotFound, req.Entry, name)
	}

	applied, _, warnings, err := e.applyPlan(ctx, plan, false)
	if err != nil {
		return nil, err
	}

	result := &RemovePathResult{
		Name:     name,
		Entry:    req.Entry,
		Applied:  applied,
		Warnings: warnings,
	}
	for _, op := range applied {
		switch op.Type {
		case planner.OpSessionUnset, planner.OpAgentRemove, planner.OpLegacyRemove:
			result.BindingRemoved = true
		}
	}
	return result, nil
}

package engine

import (
	"context"
	"fmt"

	"github.com/thgossler/menv/internal/planner"
)

// Algorithm steps:
// 1. Validate the name and resolve which stores claim it
// 2. Reject names nothing manages; an inherited-only name names its source
// 3. Build and execute the removal plan, continuing past store failures
// 4. Report what still shadows the name in the current process
func (e *Engine) Delete(ctx context.Context, req *DeleteRequest) (*DeleteResult, error) {
	name, err := e.validateName(req.Name)
	if err != nil {
		return nil, err
	}

	record, err := e.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
	}
	if !record.Found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if record.InheritedOnly() {
		return nil, fmt.Errorf("%w: %s is only inherited from the environment (value %q); menv has nothing to remove",
			ErrNotManaged, name, record.Value)
	}

	plan := planner.BuildDelete(record)
	applied, _, warnings, err := e.applyPlan(ctx, plan, false)
	if err != nil {
		return nil, err
	}

	result := &DeleteResult{
		Name:     name,
		Warnings: warnings,
	}
	for _, op := range applied {
		result.RemovedFrom = append(result.RemovedFrom, op.Kind)
	}

	// The binding may still be visible here: the current process inherited
	// its environment before the removal.
	if value, found, err := e.set.Process.Read(ctx, name); err == nil && found {
		result.InheritedValue = value
	}
	return result, nil
}

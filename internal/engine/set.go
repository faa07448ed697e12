package engine

import (
	"context"
	"fmt"

	"github.com/thgossler/menv/internal/planner"
)

// Algorithm steps:
// 1. Validate the name and classify it (scalar or PATH-like)
// 2. Build the mutation plan (session + agent, profile only for scalars)
// 3. Execute: the session write must succeed, the rest degrade to warnings
// 4. Surface a displaced agent binding and shadowed profile declarations
func (e *Engine) Set(ctx context.Context, req *SetRequest) (*SetResult, error) {
	name, err := e.validateName(req.Name)
	if err != nil {
		return nil, err
	}

	pathLike := e.PathLike(name)
	plan := planner.BuildSet(name, req.Value, pathLike)

	applied, displaced, warnings, err := e.applyPlan(ctx, plan, true)
	if err != nil {
		return nil, err
	}

	result := &SetResult{
		Name:      name,
		Value:     req.Value,
		PathLike:  pathLike,
		Applied:   applied,
		Displaced: displaced,
		Warnings:  warnings,
	}
	if displaced != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"login agent was bound to %s=%s; that binding is gone", displaced.Name, displaced.Value))
	}

	if !pathLike {
		for _, op := range applied {
			if op.Type == planner.OpProfileSet {
				result.ProfileTarget = e.set.Profiles.Target()
			}
		}
		if warning := e.shadowWarning(ctx, name); warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}
	}
	return result, nil
}

// shadowWarning reports when a declaration in a higher-priority profile
// file hides the one just written to the target. New shells would keep
// seeing the old value, which users read as the set not working.
func (e *Engine) shadowWarning(ctx context.Context, name string) string {
	decls, err := e.set.Profiles.Declarations(ctx, name)
	if err != nil || len(decls) == 0 {
		return ""
	}
	winner := decls[0]
	if winner.File == e.set.Profiles.Target() {
		return ""
	}
	return fmt.Sprintf("%s declares %s=%s, which shadows the value in %s for new shells",
		winner.File, name, winner.Value, e.set.Profiles.Target())
}

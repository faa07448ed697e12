// Package engine provides the core business logic for menv operations.
//
// The engine package acts as the orchestration layer between CLI commands
// and the backing stores. It validates names, resolves current state,
// builds mutation plans, executes them with per-store failure handling, and
// shapes results for presentation.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Set/Delete: Variable lifecycle across every store
//   - AddPathEntry/RemovePathEntry: List surgery on PATH-like variables
//   - Info/Visibility/List/Analyze: Read-only reconciliation reports
package engine

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/thgossler/menv/internal/config"
	"github.com/thgossler/menv/internal/envname"
	"github.com/thgossler/menv/internal/pathlist"
	"github.com/thgossler/menv/internal/planner"
	"github.com/thgossler/menv/internal/resolve"
	"github.com/thgossler/menv/internal/stores"
)

// Engine orchestrates all menv operations.
// It is the main API surface called by the CLI.
type Engine struct {
	set      *stores.Set
	resolver *resolve.Resolver
	settings *config.Settings
	dirCheck pathlist.DirChecker
	log      zerolog.Logger
}

// New creates a new Engine with the given dependencies. dirCheck may be nil
// to check directories against the real filesystem.
func New(
	set *stores.Set,
	resolver *resolve.Resolver,
	settings *config.Settings,
	dirCheck pathlist.DirChecker,
	log zerolog.Logger,
) *Engine {
	if dirCheck == nil {
		dirCheck = pathlist.OSDirChecker
	}
	return &Engine{
		set:      set,
		resolver: resolver,
		settings: settings,
		dirCheck: dirCheck,
		log:      log,
	}
}

// PathLike reports whether name is treated as a colon-delimited list. The
// CLI consults it before any store is touched to pick the interactive flow.
func (e *Engine) PathLike(name string) bool {
	return envname.IsPathLike(name, e.settings.PathVariables)
}

// validateName checks a variable name before any store is touched.
func (e *Engine) validateName(raw string) (string, error) {
	return envname.Validate(raw)
}

// executeOperation executes a single planned operation, returning the
// binding it displaced when the operation replaces the login agent's.
func (e *Engine) executeOperation(ctx context.Context, op planner.Operation) (*stores.Binding, error) {
	switch op.Type {
	case planner.OpSessionSet:
		return nil, e.set.Session.Write(ctx, op.Name, op.Value)
	case planner.OpSessionUnset:
		return nil, e.set.Session.Remove(ctx, op.Name)
	case planner.OpAgentBind:
		return e.set.LoginAgent.Bind(ctx, op.Name, op.Value)
	case planner.OpAgentRemove:
		return nil, e.set.LoginAgent.Remove(ctx, op.Name)
	case planner.OpProfileSet:
		return nil, e.set.Profiles.Write(ctx, op.Name, op.Value)
	case planner.OpProfileRemove:
		return nil, e.set.Profiles.Remove(ctx, op.Name)
	case planner.OpProfileRewrite:
		return nil, e.set.Profiles.Rewrite(ctx, op.File, op.Edits)
	case planner.OpLegacySet:
		return nil, e.set.Legacy.Write(ctx, op.Name, op.Value)
	case planner.OpLegacyRemove:
		return nil, e.set.Legacy.Remove(ctx, op.Name)
	default:
		return nil, fmt.Errorf("unknown operation type: %s", op.Type)
	}
}

// applyPlan executes a plan in order. With strictFirst set, a failure of
// the first operation aborts the command: it is the primary store and
// nothing should proceed without it. Later failures degrade to warnings so
// one broken store cannot strand the change half-applied in the others.
func (e *Engine) applyPlan(ctx context.Context, plan *planner.Plan, strictFirst bool) (applied []planner.Operation, displaced *stores.Binding, warnings []string, err error) {
	for i, op := range plan.Operations {
		previous, opErr := e.executeOperation(ctx, op)
		if opErr != nil {
			if i == 0 && strictFirst {
				return applied, displaced, warnings, fmt.Errorf("%w: %v", ErrStoreWrite, opErr)
			}
			e.log.Debug().Str("operation", op.Type).Err(opErr).Msg("store operation failed")
			warnings = append(warnings, fmt.Sprintf("%s: %v", op.Describe(), opErr))
			continue
		}
		applied = append(applied, op)
		if previous != nil {
			displaced = previous
		}
	}
	return applied, displaced, warnings, nil
}

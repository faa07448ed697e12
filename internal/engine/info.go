package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/thgossler/menv/internal/stores"
)

// Algorithm steps:
// 1. Resolve the reconciled record for the name
// 2. Probe every store, absent ones included, and attach its location
// 3. Collect shell profile declarations in probe order
func (e *Engine) Info(ctx context.Context, req *InfoRequest) (*InfoResult, error) {
	name, err := e.validateName(req.Name)
	if err != nil {
		return nil, err
	}

	record, err := e.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
	}

	decls, err := e.set.Profiles.Declarations(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to scan profile declarations: %w", err)
	}

	probes := append(e.set.Managed(), stores.Store(e.set.Process))
	statuses := make([]SourceStatus, 0, len(probes))
	for _, store := range probes {
		status, err := e.probeStatus(ctx, store, name, decls)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}

	return &InfoResult{
		Name:          name,
		Found:         record.Found,
		Value:         record.Value,
		PathLike:      e.PathLike(name),
		InheritedOnly: record.InheritedOnly(),
		Statuses:      statuses,
		Declarations:  decls,
	}, nil
}

// probeStatus reads one store's view of name, with its location attached.
func (e *Engine) probeStatus(ctx context.Context, store stores.Store, name string, decls []stores.Declaration) (SourceStatus, error) {
	status := SourceStatus{
		Kind:     store.Kind(),
		Location: e.storeLocation(store.Kind(), decls),
	}
	value, found, err := e.probeValue(ctx, store, name)
	if err != nil {
		return status, err
	}
	status.Present = found
	if found {
		status.Value = value
	}
	return status, nil
}

// storeLocation names the file or mechanism behind a store. The profile
// store's location is the file holding the winning declaration, or the
// configured target when none declares the name yet.
func (e *Engine) storeLocation(kind stores.SourceKind, decls []stores.Declaration) string {
	switch kind {
	case stores.KindSession:
		return "launchd"
	case stores.KindLoginAgent:
		return e.set.LoginAgent.Path()
	case stores.KindShellProfile:
		if len(decls) > 0 {
			return decls[0].File
		}
		return e.set.Profiles.Target()
	case stores.KindLegacy:
		return e.set.Legacy.Path()
	case stores.KindInherited:
		return "process environment"
	default:
		return ""
	}
}

// Visibility reports what each launch context would see for name.
// Applications inherit the launchd session environment, shells source the
// profile files, and the login agent feeds both at the next login. A name
// absent everywhere is an error.
func (e *Engine) Visibility(ctx context.Context, req *VisibilityRequest) (*VisibilityResult, error) {
	name, err := e.validateName(req.Name)
	if err != nil {
		return nil, err
	}

	record, err := e.resolver.Resolve(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
	}

	result := &VisibilityResult{Name: name, Value: record.Value}

	sessionValue, session, err := e.probeValue(ctx, e.set.Session, name)
	if err != nil {
		return nil, err
	}
	agentValue, agent, err := e.probeValue(ctx, e.set.LoginAgent, name)
	if err != nil {
		return nil, err
	}
	profileValue, profile, err := e.probeValue(ctx, e.set.Profiles, name)
	if err != nil {
		return nil, err
	}
	processValue, process, err := e.probeValue(ctx, e.set.Process, name)
	if err != nil {
		return nil, err
	}

	if session || agent {
		result.Apps = true
		result.AppValue = sessionValue
		if !session {
			result.AppValue = agentValue
		}
	}
	if profile || agent {
		result.Shells = true
		result.ShellValue = profileValue
		if !profile {
			result.ShellValue = agentValue
		}
	}
	if process {
		result.CurrentProcess = true
		result.ProcessValue = processValue
	}

	if !result.Apps && !result.Shells && !result.CurrentProcess && !record.Found {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return result, nil
}

// probeValue reads one store, degrading probe failures to absence the way
// the resolver does.
func (e *Engine) probeValue(ctx context.Context, store stores.Store, name string) (string, bool, error) {
	value, found, err := store.Read(ctx, name)
	if err != nil {
		if isContextErr(err) {
			return "", false, err
		}
		e.log.Debug().Stringer("store", store.Kind()).Err(err).Msg("store probe failed, treating as absent")
		return "", false, nil
	}
	return value, found, nil
}

// List reconciles every variable claimed by a managed store, sorted by
// name. Inherited-only variables are excluded.
func (e *Engine) List(ctx context.Context, _ *ListRequest) (*ListResult, error) {
	names, err := e.resolver.Names(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate variables: %w", err)
	}

	result := &ListResult{}
	for _, name := range names {
		record, err := e.resolver.Resolve(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve %s: %w", name, err)
		}
		if !record.Found {
			continue
		}
		entry := ListEntry{Name: name, Value: record.Value}
		for _, s := range record.Sources {
			entry.Sources = append(entry.Sources, s.Kind)
		}
		result.Entries = append(result.Entries, entry)
	}
	return result, nil
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

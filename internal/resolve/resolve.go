// Package resolve reconciles a variable's state across backing stores.
//
// A name can be claimed by several stores at once, with differing values.
// The resolver probes every managed store, records each claim, and derives
// the effective value by precedence. The inherited process environment is
// consulted only when no managed store claims the name: a variable that is
// merely inherited is visible but not managed, and the distinction drives
// what delete and info report.
package resolve

import (
	"context"
	"errors"
	"sort"

	"github.com/rs/zerolog"

	"github.com/thgossler/menv/internal/stores"
)

// SourceValue is one store's claim on a name.
type SourceValue struct {
	Kind  stores.SourceKind
	Value string
}

// Record is the reconciled state of one variable.
type Record struct {
	Name string

	// Value is the effective value: the first non-empty claim in store
	// precedence order, never taken from the legacy store, falling back
	// to the raw process environment when every claim is empty or nothing
	// manages the name.
	Value string

	// Found reports whether any store, inherited included, knows the name.
	Found bool

	// Sources lists the claims in precedence order. An inherited claim
	// appears only when it is the sole source.
	Sources []SourceValue
}

// Has reports whether kind is among the record's sources.
func (r *Record) Has(kind stores.SourceKind) bool {
	for _, s := range r.Sources {
		if s.Kind == kind {
			return true
		}
	}
	return false
}

// Managed reports whether any writable store claims the name.
func (r *Record) Managed() bool {
	for _, s := range r.Sources {
		if s.Kind != stores.KindInherited {
			return true
		}
	}
	return false
}

// InheritedOnly reports whether the name is visible solely through the
// process environment.
func (r *Record) InheritedOnly() bool {
	return r.Found && !r.Managed()
}

// Resolver probes stores and reconciles their claims.
type Resolver struct {
	managed   []stores.Store
	inherited stores.Store
	log       zerolog.Logger
}

// New returns a resolver over managed stores in precedence order plus the
// read-only inherited environment.
func New(managed []stores.Store, inherited stores.Store, log zerolog.Logger) *Resolver {
	return &Resolver{managed: managed, inherited: inherited, log: log}
}

// Resolve reconciles one name. Store probe failures degrade to absence with
// a debug log, so one broken store never hides the others; only context
// cancellation aborts the probe.
func (r *Resolver) Resolve(ctx context.Context, name string) (*Record, error) {
	record := &Record{Name: name}

	for _, store := range r.managed {
		value, found, err := store.Read(ctx, name)
		if err != nil {
			if isContextErr(err) {
				return nil, err
			}
			r.log.Debug().Stringer("store", store.Kind()).Err(err).Msg("store probe failed, treating as absent")
			continue
		}
		if !found {
			continue
		}
		record.Sources = append(record.Sources, SourceValue{Kind: store.Kind(), Value: value})
	}

	if len(record.Sources) > 0 {
		record.Found = true
		record.Value = effectiveValue(record.Sources)
		if record.Value == "" {
			record.Value = r.rawFallback(ctx, name)
		}
		return record, nil
	}

	value, found, err := r.inherited.Read(ctx, name)
	if err != nil {
		if isContextErr(err) {
			return nil, err
		}
		r.log.Debug().Err(err).Msg("inherited environment probe failed")
		return record, nil
	}
	if found {
		record.Found = true
		record.Value = value
		record.Sources = []SourceValue{{Kind: stores.KindInherited, Value: value}}
	}
	return record, nil
}

// Names enumerates every name claimed by a managed store, sorted. Inherited
// names are excluded: listing them would drown managed state in the
// hundreds of variables every process carries.
func (r *Resolver) Names(ctx context.Context) ([]string, error) {
	seen := make(map[string]bool)
	for _, store := range r.managed {
		names, err := store.Names(ctx)
		if err != nil {
			if isContextErr(err) {
				return nil, err
			}
			r.log.Debug().Stringer("store", store.Kind()).Err(err).Msg("store enumeration failed, skipping")
			continue
		}
		for _, name := range names {
			seen[name] = true
		}
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// rawFallback reads the process environment value for a name whose managed
// claims are all empty. The raw value does not become a source, it only fills
// in what the running system actually observes.
func (r *Resolver) rawFallback(ctx context.Context, name string) string {
	value, found, err := r.inherited.Read(ctx, name)
	if err != nil || !found {
		return ""
	}
	return value
}

// effectiveValue picks the first non-empty claim, skipping the legacy
// store: modern systems never apply its values, so reporting one as
// effective would be a lie. An all-empty claim set resolves to empty.
func effectiveValue(sources []SourceValue) string {
	for _, s := range sources {
		if s.Kind == stores.KindLegacy {
			continue
		}
		if s.Value != "" {
			return s.Value
		}
	}
	return ""
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

package stores

import (
	"context"
	"sort"
	"strings"
)

// ProcessStore is the environment this process inherited from its parent.
// It exists so the resolver can explain variables that are visible right
// now but managed by nothing menv controls, like values exported by the
// shell that launched it. It is strictly read-only.
type ProcessStore struct {
	env map[string]string
}

// NewProcessStore snapshots the given environ slice, as produced by
// os.Environ.
func NewProcessStore(environ []string) *ProcessStore {
	env := make(map[string]string, len(environ))
	for _, kv := range environ {
		if name, value, ok := strings.Cut(kv, "="); ok && name != "" {
			env[name] = value
		}
	}
	return &ProcessStore{env: env}
}

// Kind identifies the store.
func (s *ProcessStore) Kind() SourceKind { return KindInherited }

// Exists checks if the inherited environment holds name.
func (s *ProcessStore) Exists(_ context.Context, name string) (bool, error) {
	_, found := s.env[name]
	return found, nil
}

// Read returns the inherited value for name.
func (s *ProcessStore) Read(_ context.Context, name string) (string, bool, error) {
	value, found := s.env[name]
	return value, found, nil
}

// Write always fails: the inherited environment cannot be changed.
func (s *ProcessStore) Write(_ context.Context, _, _ string) error {
	return ErrReadOnly
}

// Remove always fails: the inherited environment cannot be changed.
func (s *ProcessStore) Remove(_ context.Context, _ string) error {
	return ErrReadOnly
}

// Names enumerates the inherited environment, sorted for stable output.
func (s *ProcessStore) Names(_ context.Context) ([]string, error) {
	names := make([]string, 0, len(s.env))
	for name := range s.env {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

package stores

import (
	"context"
	"fmt"
	"sort"

	"github.com/thgossler/menv/internal/launchctl"
)

// SessionStore is the launchd session environment. Variables written here
// are inherited by every application launched afterwards, GUI apps
// included, but are lost at reboot.
type SessionStore struct {
	client *launchctl.Client
}

// NewSessionStore returns a store over the given launchctl client.
func NewSessionStore(client *launchctl.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Kind identifies the store.
func (s *SessionStore) Kind() SourceKind { return KindSession }

// Exists checks if the session environment holds name.
func (s *SessionStore) Exists(ctx context.Context, name string) (bool, error) {
	_, found, err := s.client.Getenv(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to query session environment: %w", err)
	}
	return found, nil
}

// Read returns the session value for name.
func (s *SessionStore) Read(ctx context.Context, name string) (string, bool, error) {
	value, found, err := s.client.Getenv(ctx, name)
	if err != nil {
		return "", false, fmt.Errorf("failed to query session environment: %w", err)
	}
	return value, found, nil
}

// Write publishes name into the session environment.
func (s *SessionStore) Write(ctx context.Context, name, value string) error {
	if err := s.client.Setenv(ctx, name, value); err != nil {
		return fmt.Errorf("failed to set session variable: %w", err)
	}
	return nil
}

// Remove drops name from the session environment. launchd treats removing
// an absent name as a no-op, so no presence check is needed.
func (s *SessionStore) Remove(ctx context.Context, name string) error {
	if err := s.client.Unsetenv(ctx, name); err != nil {
		return fmt.Errorf("failed to unset session variable: %w", err)
	}
	return nil
}

// Names enumerates the session environment, sorted for stable output.
func (s *SessionStore) Names(ctx context.Context) ([]string, error) {
	env, err := s.client.Export(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list session environment: %w", err)
	}
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

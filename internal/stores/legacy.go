package stores

import (
	"context"
	"fmt"
	"os"
	"sort"

	"howett.net/plist"

	"github.com/thgossler/menv/internal/backup"
	"github.com/thgossler/menv/internal/fsutil"
)

// LegacyStore manages ~/.MacOSX/environment.plist, the environment
// mechanism of pre-launchd macOS. Modern systems ignore the file, but
// bindings lingering there confuse anyone auditing their setup, so menv
// reports and cleans them. Nothing ever writes new bindings here during
// normal operation.
type LegacyStore struct {
	fs      fsutil.FS
	backups *backup.Manager
	path    string
}

// NewLegacyStore returns a store over the property list at path. backups
// may be nil to disable snapshots.
func NewLegacyStore(fs fsutil.FS, backups *backup.Manager, path string) *LegacyStore {
	return &LegacyStore{fs: fs, backups: backups, path: path}
}

// Path returns the property list path.
func (s *LegacyStore) Path() string { return s.path }

// Kind identifies the store.
func (s *LegacyStore) Kind() SourceKind { return KindLegacy }

// Exists checks if the property list holds name.
func (s *LegacyStore) Exists(ctx context.Context, name string) (bool, error) {
	_, found, err := s.Read(ctx, name)
	return found, err
}

// Read returns the property list value for name.
func (s *LegacyStore) Read(_ context.Context, name string) (string, bool, error) {
	env, err := s.load()
	if err != nil {
		return "", false, err
	}
	value, found := env[name]
	return value, found, nil
}

// Write creates or replaces a binding in the property list.
func (s *LegacyStore) Write(_ context.Context, name, value string) error {
	env, err := s.load()
	if err != nil {
		return err
	}
	env[name] = value
	return s.save(env)
}

// Remove drops name from the property list. The file is kept, even when it
// ends up empty, so repeated cleanups stay idempotent.
func (s *LegacyStore) Remove(_ context.Context, name string) error {
	env, err := s.load()
	if err != nil {
		return err
	}
	if _, found := env[name]; !found {
		return nil
	}
	delete(env, name)
	return s.save(env)
}

// Names enumerates the property list, sorted for stable output.
func (s *LegacyStore) Names(_ context.Context) ([]string, error) {
	env, err := s.load()
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(env))
	for name := range env {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (s *LegacyStore) load() (map[string]string, error) {
	data, err := s.fs.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("failed to read legacy environment: %w", err)
	}

	env := map[string]string{}
	if _, err := plist.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode legacy environment: %w", err)
	}
	return env, nil
}

func (s *LegacyStore) save(env map[string]string) error {
	if s.backups != nil {
		if _, err := s.backups.Create(s.path); err != nil {
			return fmt.Errorf("failed to back up legacy environment: %w", err)
		}
	}

	data, err := plist.MarshalIndent(env, plist.XMLFormat, "\t")
	if err != nil {
		return fmt.Errorf("failed to encode legacy environment: %w", err)
	}
	if err := s.fs.AtomicWrite(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write legacy environment: %w", err)
	}
	return nil
}

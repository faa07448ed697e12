package stores

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"howett.net/plist"

	"github.com/thgossler/menv/internal/backup"
	"github.com/thgossler/menv/internal/fsutil"
)

// LaunchAgentStore manages the login agent descriptor, a per-user launchd
// agent that republishes one session variable at every login so bindings
// survive reboots.
//
// The descriptor holds exactly one binding. Writing a different variable
// name replaces the previous binding; Bind returns the displaced one so
// callers can tell the user what was lost.
type LaunchAgentStore struct {
	fs      fsutil.FS
	backups *backup.Manager
	dir     string
	label   string
}

// agentDescriptor is the property list layout of the login agent.
type agentDescriptor struct {
	Label            string   `plist:"Label"`
	ProgramArguments []string `plist:"ProgramArguments"`
	RunAtLoad        bool     `plist:"RunAtLoad"`
}

// NewLaunchAgentStore returns a store writing <dir>/<label>.plist. backups
// may be nil to disable snapshots.
func NewLaunchAgentStore(fs fsutil.FS, backups *backup.Manager, dir, label string) *LaunchAgentStore {
	return &LaunchAgentStore{fs: fs, backups: backups, dir: dir, label: label}
}

// Path returns the descriptor file path.
func (s *LaunchAgentStore) Path() string {
	return filepath.Join(s.dir, s.label+".plist")
}

// Kind identifies the store.
func (s *LaunchAgentStore) Kind() SourceKind { return KindLoginAgent }

// Exists checks if the descriptor binds name.
func (s *LaunchAgentStore) Exists(ctx context.Context, name string) (bool, error) {
	_, found, err := s.Read(ctx, name)
	return found, err
}

// Read returns the descriptor's value for name. Any other bound name, a
// missing descriptor, or a descriptor not in the expected shape reads as
// absent.
func (s *LaunchAgentStore) Read(_ context.Context, name string) (string, bool, error) {
	binding, err := s.binding()
	if err != nil {
		return "", false, err
	}
	if binding == nil || binding.Name != name {
		return "", false, nil
	}
	return binding.Value, true, nil
}

// Write replaces the descriptor binding, discarding any previous one.
func (s *LaunchAgentStore) Write(ctx context.Context, name, value string) error {
	_, err := s.Bind(ctx, name, value)
	return err
}

// Bind replaces the descriptor binding with name=value and returns the
// binding it displaced, nil when the descriptor was absent or already bound
// to the same name.
func (s *LaunchAgentStore) Bind(_ context.Context, name, value string) (*Binding, error) {
	previous, err := s.binding()
	if err != nil {
		return nil, err
	}

	if err := s.createBackup(); err != nil {
		return nil, err
	}

	desc := agentDescriptor{
		Label:            s.label,
		ProgramArguments: []string{"/bin/launchctl", "setenv", name, value},
		RunAtLoad:        true,
	}
	data, err := plist.MarshalIndent(desc, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("failed to encode agent descriptor: %w", err)
	}
	if err := s.fs.AtomicWrite(s.Path(), data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write agent descriptor: %w", err)
	}

	if previous == nil || previous.Name == name {
		return nil, nil
	}
	return previous, nil
}

// Remove deletes the descriptor when it binds name. A descriptor bound to
// another variable is left alone.
func (s *LaunchAgentStore) Remove(ctx context.Context, name string) error {
	found, err := s.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !found {
		return nil
	}
	if err := s.createBackup(); err != nil {
		return err
	}
	if err := s.fs.Remove(s.Path()); err != nil {
		return fmt.Errorf("failed to remove agent descriptor: %w", err)
	}
	return nil
}

// Names returns the bound name, if any.
func (s *LaunchAgentStore) Names(_ context.Context) ([]string, error) {
	binding, err := s.binding()
	if err != nil {
		return nil, err
	}
	if binding == nil {
		return nil, nil
	}
	return []string{binding.Name}, nil
}

// binding loads and decodes the current descriptor. A descriptor whose
// program arguments are not a launchctl setenv invocation belongs to
// something else and reads as unbound.
func (s *LaunchAgentStore) binding() (*Binding, error) {
	data, err := s.fs.ReadFile(s.Path())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read agent descriptor: %w", err)
	}

	var desc agentDescriptor
	if _, err := plist.Unmarshal(data, &desc); err != nil {
		return nil, fmt.Errorf("failed to decode agent descriptor: %w", err)
	}

	args := desc.ProgramArguments
	if len(args) != 4 || args[1] != "setenv" {
		return nil, nil
	}
	return &Binding{Name: args[2], Value: args[3]}, nil
}

func (s *LaunchAgentStore) createBackup() error {
	if s.backups == nil {
		return nil
	}
	if _, err := s.backups.Create(s.Path()); err != nil {
		return fmt.Errorf("failed to back up agent descriptor: %w", err)
	}
	return nil
}

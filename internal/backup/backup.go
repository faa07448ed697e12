// Package backup snapshots files before destructive rewrites.
//
// Every profile or descriptor rewrite is preceded by a timestamped copy next
// to the original, so a bad edit can always be undone by hand. A file whose
// content already matches its newest snapshot is not copied again.
package backup

import (
	"fmt"
	"sort"

	"github.com/thgossler/menv/internal/clock"
	"github.com/thgossler/menv/internal/fsutil"
	"github.com/thgossler/menv/internal/hash"
)

const (
	timestampLayout = "20060102-150405"
	backupInfix     = ".menv-backup."
)

// Manager creates backup copies of files about to be rewritten.
type Manager struct {
	fs     fsutil.FS
	clock  clock.Clock
	hasher hash.Hasher
}

// NewManager returns a manager using the system clock and SHA-256
// deduplication.
func NewManager(fs fsutil.FS) *Manager {
	return &Manager{fs: fs, clock: &clock.RealClock{}, hasher: hash.NewSHA256Hasher()}
}

// NewManagerWith returns a manager with caller-supplied time and digest
// sources for deterministic tests.
func NewManagerWith(fs fsutil.FS, clk clock.Clock, hasher hash.Hasher) *Manager {
	return &Manager{fs: fs, clock: clk, hasher: hasher}
}

// Create copies path to path.menv-backup.<timestamp> and returns the backup
// path. A missing source is not an error: there is nothing to preserve, and
// the empty path signals that no backup was made. When the newest existing
// backup already carries identical content its path is returned instead of
// writing a duplicate. Backups are written with owner-only permissions since
// profiles can carry credentials.
func (m *Manager) Create(path string) (string, error) {
	exists, err := m.fs.Exists(path)
	if err != nil {
		return "", fmt.Errorf("failed to check %s: %w", path, err)
	}
	if !exists {
		return "", nil
	}

	if prev, ok := m.latestBackup(path); ok && m.sameContent(path, prev) {
		return prev, nil
	}

	data, err := m.fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}

	backupPath, err := m.freePath(path)
	if err != nil {
		return "", err
	}
	if err := m.fs.AtomicWrite(backupPath, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write backup: %w", err)
	}
	return backupPath, nil
}

// freePath picks an unused backup name. Rewrites within the same second get
// a numeric suffix instead of clobbering the earlier copy.
func (m *Manager) freePath(path string) (string, error) {
	stamp := path + backupInfix + m.clock.Now().Format(timestampLayout)
	candidate := stamp
	for n := 2; ; n++ {
		exists, err := m.fs.Exists(candidate)
		if err != nil {
			return "", fmt.Errorf("failed to check %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", stamp, n)
	}
}

// latestBackup returns the newest existing snapshot of path. The timestamp
// layout sorts lexically, so the largest matching name is the newest.
func (m *Manager) latestBackup(path string) (string, bool) {
	matches, err := m.fs.Glob(path + backupInfix + "*")
	if err != nil || len(matches) == 0 {
		return "", false
	}
	sort.Strings(matches)
	return matches[len(matches)-1], true
}

// sameContent reports whether path and prev carry identical bytes. Digest
// failures report false so a fresh backup is still taken.
func (m *Manager) sameContent(path, prev string) bool {
	current, err := m.hasher.HashFile(path)
	if err != nil {
		return false
	}
	previous, err := m.hasher.HashFile(prev)
	if err != nil {
		return false
	}
	return current == previous
}

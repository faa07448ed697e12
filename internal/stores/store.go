// Package stores implements the backing stores a variable can live in.
//
// A variable set for login sessions is not one fact but several: a launchd
// session binding, a login agent that republishes it after reboot, shell
// profile declarations, and on old systems a legacy property list. Each
// location is modeled as a Store with uniform read, write, remove, and
// enumerate operations.
//
// Key components:
//   - SessionStore: launchd session environment via launchctl
//   - LaunchAgentStore: per-user login agent descriptor
//   - ProfileStore: shell startup files, POSIX and fish
//   - LegacyStore: the pre-launchd ~/.MacOSX/environment.plist
//   - ProcessStore: the inherited process environment, read-only
package stores

import (
	"context"
	"errors"
)

// ErrReadOnly is returned by stores that can report variables but never
// change them.
var ErrReadOnly = errors.New("store is read-only")

// SourceKind identifies a backing store. The declaration order is the
// precedence order used when several stores disagree about a value.
type SourceKind int

const (
	KindSession SourceKind = iota
	KindLoginAgent
	KindShellProfile
	KindLegacy
	KindInherited
)

// String returns the kind name used in output and logs.
func (k SourceKind) String() string {
	switch k {
	case KindSession:
		return "session"
	case KindLoginAgent:
		return "login-agent"
	case KindShellProfile:
		return "shell-profile"
	case KindLegacy:
		return "legacy"
	case KindInherited:
		return "inherited"
	default:
		return "unknown"
	}
}

// Description returns the human explanation shown by the info command.
func (k SourceKind) Description() string {
	switch k {
	case KindSession:
		return "launchd session environment (new apps inherit it)"
	case KindLoginAgent:
		return "login agent (reapplied at every login)"
	case KindShellProfile:
		return "shell profile declarations (new shells inherit it)"
	case KindLegacy:
		return "legacy environment.plist (ignored by modern macOS)"
	case KindInherited:
		return "inherited by this process from its parent"
	default:
		return "unknown source"
	}
}

// Store is one location a variable binding can live in.
type Store interface {
	// Kind identifies the store.
	Kind() SourceKind

	// Exists checks if the store holds a binding for name.
	Exists(ctx context.Context, name string) (bool, error)

	// Read returns the bound value and whether a binding exists.
	Read(ctx context.Context, name string) (string, bool, error)

	// Write creates or replaces the binding for name.
	Write(ctx context.Context, name, value string) error

	// Remove drops the binding for name. Removing an absent binding is
	// not an error.
	Remove(ctx context.Context, name string) error

	// Names enumerates every bound variable name.
	Names(ctx context.Context) ([]string, error)
}

// Binding is a name-value pair held by a store.
type Binding struct {
	Name  string
	Value string
}

// Set bundles every store menv knows about.
type Set struct {
	Session    *SessionStore
	LoginAgent *LaunchAgentStore
	Profiles   *ProfileStore
	Legacy     *LegacyStore
	Process    *ProcessStore
}

// Managed returns the writable stores in precedence order. The inherited
// process environment is not part of it: nothing menv does can change the
// current process's parentage.
func (s *Set) Managed() []Store {
	return []Store{s.Session, s.LoginAgent, s.Profiles, s.Legacy}
}

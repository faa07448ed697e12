// Package integration exercises the full store stack end to end: real
// profile and descriptor files under a scratch home directory, and a stub
// launchctl executable standing in for the launchd session.
package integration

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thgossler/menv/internal/backup"
	"github.com/thgossler/menv/internal/config"
	"github.com/thgossler/menv/internal/engine"
	"github.com/thgossler/menv/internal/fsutil"
	"github.com/thgossler/menv/internal/launchctl"
	"github.com/thgossler/menv/internal/logging"
	"github.com/thgossler/menv/internal/resolve"
	"github.com/thgossler/menv/internal/stores"
)

// launchctlStub implements the four subcommands menv issues, backed by a
// NAME=VALUE state file named by LAUNCHCTL_STATE. getenv prints nothing for
// unset names and exits zero, matching the real tool.
const launchctlStub = `#!/bin/sh
state="$LAUNCHCTL_STATE"
touch "$state"
case "$1" in
getenv)
	grep "^$2=" "$state" | head -n 1 | cut -d= -f2-
	;;
setenv)
	grep -v "^$2=" "$state" > "$state.next"
	printf '%s=%s\n' "$2" "$3" >> "$state.next"
	mv "$state.next" "$state"
	;;
unsetenv)
	grep -v "^$2=" "$state" > "$state.next"
	mv "$state.next" "$state"
	;;
export)
	while IFS= read -r line; do
		printf '%s="%s"; export %s;\n' "${line%%=*}" "${line#*=}" "${line%%=*}"
	done < "$state"
	;;
esac
`

// env is one isolated installation: a scratch home, a private session state
// file, and the stub launchctl first on PATH.
type env struct {
	t        *testing.T
	home     string
	paths    *config.Paths
	settings *config.Settings
	state    string
	environ  []string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	home := t.TempDir()
	bin := t.TempDir()

	if err := os.WriteFile(filepath.Join(bin, "launchctl"), []byte(launchctlStub), 0o755); err != nil {
		t.Fatal(err)
	}

	state := filepath.Join(t.TempDir(), "session.env")
	t.Setenv("LAUNCHCTL_STATE", state)
	t.Setenv("PATH", bin+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("HOME", home)
	t.Setenv("MENV_CONFIG", "")

	return &env{t: t, home: home, paths: config.PathsForHome(home), state: state}
}

// engine builds the engine the way the CLI does, loading config.yaml fresh
// so tests can write overrides before calling it.
func (e *env) engine() *engine.Engine {
	e.t.Helper()

	settings, err := config.Load(e.paths.Config)
	if err != nil {
		e.t.Fatalf("failed to load settings: %v", err)
	}
	e.settings = settings

	log := logging.New(false, true)
	fs := fsutil.NewRealFS()

	var backups *backup.Manager
	if settings.Backups {
		backups = backup.NewManager(fs)
	}

	set := &stores.Set{
		Session:    stores.NewSessionStore(launchctl.New()),
		LoginAgent: stores.NewLaunchAgentStore(fs, backups, e.paths.LaunchAgents, settings.AgentLabel),
		Profiles:   stores.NewProfileStore(fs, backups, e.paths.Home, settings.ProfileTarget, log),
		Legacy:     stores.NewLegacyStore(fs, backups, e.paths.LegacyPlist),
		Process:    stores.NewProcessStore(e.environ),
	}
	resolver := resolve.New(set.Managed(), set.Process, log)
	return engine.New(set, resolver, settings, nil, log)
}

// writeConfig writes config.yaml so the next engine() picks it up.
func (e *env) writeConfig(content string) {
	e.t.Helper()
	if err := os.MkdirAll(e.paths.Root, 0o755); err != nil {
		e.t.Fatal(err)
	}
	if err := os.WriteFile(e.paths.Config, []byte(content), 0o644); err != nil {
		e.t.Fatal(err)
	}
}

// seedSession plants a binding directly in the stub's state file.
func (e *env) seedSession(name, value string) {
	e.t.Helper()
	f, err := os.OpenFile(e.state, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		e.t.Fatal(err)
	}
	defer func() {
		_ = f.Close()
	}()
	if _, err := fmt.Fprintf(f, "%s=%s\n", name, value); err != nil {
		e.t.Fatal(err)
	}
}

// sessionValue reads a binding back out of the stub's state file.
func (e *env) sessionValue(name string) (string, bool) {
	data, err := os.ReadFile(e.state)
	if err != nil {
		return "", false
	}
	for _, line := range strings.Split(string(data), "\n") {
		if n, v, ok := strings.Cut(line, "="); ok && n == name {
			return v, true
		}
	}
	return "", false
}

// agentPlist is the login agent descriptor path under the last loaded
// settings. Call engine() first.
func (e *env) agentPlist() string {
	return filepath.Join(e.paths.LaunchAgents, e.settings.AgentLabel+".plist")
}

func (e *env) writeProfile(rel, content string) {
	e.t.Helper()
	path := filepath.Join(e.home, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		e.t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatal(err)
	}
}

func (e *env) readFile(rel string) string {
	e.t.Helper()
	data, err := os.ReadFile(filepath.Join(e.home, rel))
	if err != nil {
		e.t.Fatalf("failed to read %s: %v", rel, err)
	}
	return string(data)
}

func (e *env) fileExists(rel string) bool {
	_, err := os.Stat(filepath.Join(e.home, rel))
	return err == nil
}

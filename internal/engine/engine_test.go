package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/thgossler/menv/internal/config"
	"github.com/thgossler/menv/internal/fsutil"
	"github.com/thgossler/menv/internal/launchctl"
	"github.com/thgossler/menv/internal/resolve"
	"github.com/thgossler/menv/internal/stores"
)

// --- Shared engine test fixtures ---

// fakeLaunchd emulates the launchctl environment subcommands over an
// in-memory map, so engine tests exercise the real session store. Errors
// injected via fail are returned for the matching subcommand.
type fakeLaunchd struct {
	env   map[string]string
	fail  map[string]error
	calls []string
}

func newFakeLaunchd() *fakeLaunchd {
	return &fakeLaunchd{env: make(map[string]string), fail: make(map[string]error)}
}

func (f *fakeLaunchd) Run(_ context.Context, args ...string) (string, error) {
	f.calls = append(f.calls, strings.Join(args, " "))
	sub := args[0]
	if err := f.fail[sub]; err != nil {
		return "", err
	}
	switch sub {
	case "getenv":
		return f.env[args[1]] + "\n", nil
	case "setenv":
		f.env[args[1]] = args[2]
		return "", nil
	case "unsetenv":
		delete(f.env, args[1])
		return "", nil
	case "export":
		names := make([]string, 0, len(f.env))
		for name := range f.env {
			names = append(names, name)
		}
		sort.Strings(names)
		var b strings.Builder
		for _, name := range names {
			fmt.Fprintf(&b, "%s=%s; export %s;\n", name, f.env[name], name)
		}
		return b.String(), nil
	default:
		return "", fmt.Errorf("unexpected launchctl subcommand %q", sub)
	}
}

// calledWith reports whether any recorded launchctl invocation starts with
// prefix.
func (f *fakeLaunchd) calledWith(prefix string) bool {
	for _, call := range f.calls {
		if strings.HasPrefix(call, prefix) {
			return true
		}
	}
	return false
}

// testEnv wires a full engine over a scratch home directory and a fake
// launchd. Stores are the real implementations; only the launchctl binary
// and the process environment are substituted.
type testEnv struct {
	home     string
	launchd  *fakeLaunchd
	set      *stores.Set
	settings *config.Settings
	resolver *resolve.Resolver
	eng      *Engine
}

func newTestEnv(t *testing.T, environ []string) *testEnv {
	t.Helper()

	home := t.TempDir()
	launchd := newFakeLaunchd()
	fs := fsutil.NewRealFS()
	paths := config.PathsForHome(home)
	settings := config.Default()

	set := &stores.Set{
		Session:    stores.NewSessionStore(launchctl.NewWithRunner(launchd)),
		LoginAgent: stores.NewLaunchAgentStore(fs, nil, paths.LaunchAgents, settings.AgentLabel),
		Profiles:   stores.NewProfileStore(fs, nil, home, settings.ProfileTarget, zerolog.Nop()),
		Legacy:     stores.NewLegacyStore(fs, nil, paths.LegacyPlist),
		Process:    stores.NewProcessStore(environ),
	}
	resolver := resolve.New(set.Managed(), set.Process, zerolog.Nop())
	eng := New(set, resolver, settings, nil, zerolog.Nop())

	return &testEnv{
		home:     home,
		launchd:  launchd,
		set:      set,
		settings: settings,
		resolver: resolver,
		eng:      eng,
	}
}

// writeProfile creates a shell profile file under the test home.
func (e *testEnv) writeProfile(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(e.home, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", rel, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", rel, err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

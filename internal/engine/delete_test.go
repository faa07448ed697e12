package engine

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/thgossler/menv/internal/stores"
)

// TestDelete_RemovesFromEveryStore verifies that a variable claimed by all
// four managed stores is removed from each of them in one command.
func TestDelete_RemovesFromEveryStore(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.launchd.env["LANG"] = "en_US.UTF-8"
	if _, err := env.set.LoginAgent.Bind(ctx, "LANG", "en_US.UTF-8"); err != nil {
		t.Fatalf("seed agent: %v", err)
	}
	env.writeProfile(t, ".profile", "export LANG=\"en_US.UTF-8\"\n")
	if err := env.set.Legacy.Write(ctx, "LANG", "en_US.UTF-8"); err != nil {
		t.Fatalf("seed legacy: %v", err)
	}

	result, err := env.eng.Delete(ctx, &DeleteRequest{Name: "LANG"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []stores.SourceKind{
		stores.KindSession,
		stores.KindLoginAgent,
		stores.KindShellProfile,
		stores.KindLegacy,
	}
	if len(result.RemovedFrom) != len(want) {
		t.Fatalf("RemovedFrom = %v, want %v", result.RemovedFrom, want)
	}
	for i, kind := range want {
		if result.RemovedFrom[i] != kind {
			t.Errorf("RemovedFrom[%d] = %s, want %s", i, result.RemovedFrom[i], kind)
		}
	}

	if _, ok := env.launchd.env["LANG"]; ok {
		t.Error("session still holds LANG")
	}
	if fileExists(env.set.LoginAgent.Path()) {
		t.Error("agent descriptor still exists")
	}
	if profile := readFile(t, env.set.Profiles.Target()); strings.Contains(profile, "LANG") {
		t.Errorf("profile still declares LANG: %q", profile)
	}
	if _, found, _ := env.set.Legacy.Read(ctx, "LANG"); found {
		t.Error("legacy plist still holds LANG")
	}
}

// TestDelete_UnknownName verifies the not-found error for a variable no
// store knows.
func TestDelete_UnknownName(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.eng.Delete(context.Background(), &DeleteRequest{Name: "NOPE"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

// TestDelete_InheritedOnly verifies that a variable visible only through
// the process environment is rejected: there is nothing managed to remove.
func TestDelete_InheritedOnly(t *testing.T) {
	env := newTestEnv(t, []string{"EDITOR=vim"})

	_, err := env.eng.Delete(context.Background(), &DeleteRequest{Name: "EDITOR"})
	if !errors.Is(err, ErrNotManaged) {
		t.Fatalf("error = %v, want ErrNotManaged", err)
	}
	if !strings.Contains(err.Error(), "vim") {
		t.Errorf("error %q does not name the inherited value", err)
	}
}

// TestDelete_ContinuesPastStoreFailure verifies that one broken store does
// not stop removal from the others.
func TestDelete_ContinuesPastStoreFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.launchd.env["LANG"] = "C"
	env.writeProfile(t, ".profile", "export LANG=\"C\"\n")
	env.launchd.fail["unsetenv"] = errors.New("operation not permitted")

	result, err := env.eng.Delete(ctx, &DeleteRequest{Name: "LANG"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", result.Warnings)
	}
	if len(result.RemovedFrom) != 1 || result.RemovedFrom[0] != stores.KindShellProfile {
		t.Errorf("RemovedFrom = %v, want [shell-profile]", result.RemovedFrom)
	}
	if profile := readFile(t, env.set.Profiles.Target()); strings.Contains(profile, "LANG") {
		t.Errorf("profile still declares LANG: %q", profile)
	}
}

// TestDelete_ReportsInheritedValue verifies the result names the value the
// current process still carries after removal.
func TestDelete_ReportsInheritedValue(t *testing.T) {
	env := newTestEnv(t, []string{"TERM=screen"})
	ctx := context.Background()
	env.launchd.env["TERM"] = "xterm"

	result, err := env.eng.Delete(ctx, &DeleteRequest{Name: "TERM"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.InheritedValue != "screen" {
		t.Errorf("InheritedValue = %q, want %q", result.InheritedValue, "screen")
	}
	if _, ok := env.launchd.env["TERM"]; ok {
		t.Error("session still holds TERM")
	}
}

// TestDelete_RemovesEveryProfileDeclaration verifies declarations spread
// over several profile files all disappear.
func TestDelete_RemovesEveryProfileDeclaration(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	zshenv := env.writeProfile(t, ".zshenv", "export EDITOR=\"nano\"\nexport PAGER=\"less\"\n")
	bashrc := env.writeProfile(t, ".bashrc", "alias ll='ls -l'\nexport EDITOR=\"vi\"\n")

	result, err := env.eng.Delete(ctx, &DeleteRequest{Name: "EDITOR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.RemovedFrom) != 1 || result.RemovedFrom[0] != stores.KindShellProfile {
		t.Errorf("RemovedFrom = %v, want [shell-profile]", result.RemovedFrom)
	}

	if got := readFile(t, zshenv); strings.Contains(got, "EDITOR") || !strings.Contains(got, "PAGER") {
		t.Errorf(".zshenv = %q, want EDITOR gone and PAGER kept", got)
	}
	if got := readFile(t, bashrc); strings.Contains(got, "EDITOR") || !strings.Contains(got, "alias ll") {
		t.Errorf(".bashrc = %q, want EDITOR gone and the alias kept", got)
	}
}

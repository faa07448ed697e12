package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/thgossler/menv/internal/stores"
)

// TestInfo_ReportsEveryStore verifies one status per store in precedence
// order, absent stores included, each with its location.
func TestInfo_ReportsEveryStore(t *testing.T) {
	env := newTestEnv(t, []string{"EDITOR=inherited"})
	ctx := context.Background()

	env.launchd.env["EDITOR"] = "vim"
	zshrc := env.writeProfile(t, ".zshrc", "export EDITOR=\"nano\"\n")

	result, err := env.eng.Info(ctx, &InfoRequest{Name: "EDITOR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Found {
		t.Fatal("Found not set")
	}
	if result.Value != "vim" {
		t.Errorf("Value = %q, want the session value %q", result.Value, "vim")
	}
	if result.InheritedOnly {
		t.Error("InheritedOnly set although managed stores claim the name")
	}
	if result.PathLike {
		t.Error("EDITOR reported as PATH-like")
	}

	wantKinds := []stores.SourceKind{
		stores.KindSession,
		stores.KindLoginAgent,
		stores.KindShellProfile,
		stores.KindLegacy,
		stores.KindInherited,
	}
	if len(result.Statuses) != len(wantKinds) {
		t.Fatalf("got %d statuses, want %d", len(result.Statuses), len(wantKinds))
	}
	for i, kind := range wantKinds {
		if result.Statuses[i].Kind != kind {
			t.Errorf("Statuses[%d].Kind = %s, want %s", i, result.Statuses[i].Kind, kind)
		}
	}

	session, agent, profile, legacy, inherited := result.Statuses[0], result.Statuses[1], result.Statuses[2], result.Statuses[3], result.Statuses[4]
	if !session.Present || session.Value != "vim" || session.Location != "launchd" {
		t.Errorf("session status = %+v", session)
	}
	if agent.Present {
		t.Errorf("agent status = %+v, want absent", agent)
	}
	if agent.Location != env.set.LoginAgent.Path() {
		t.Errorf("agent location = %q, want %q", agent.Location, env.set.LoginAgent.Path())
	}
	if !profile.Present || profile.Value != "nano" || profile.Location != zshrc {
		t.Errorf("profile status = %+v", profile)
	}
	if legacy.Present {
		t.Errorf("legacy status = %+v, want absent", legacy)
	}
	if !inherited.Present || inherited.Value != "inherited" || inherited.Location != "process environment" {
		t.Errorf("inherited status = %+v", inherited)
	}

	if len(result.Declarations) != 1 {
		t.Fatalf("got %d declarations, want 1", len(result.Declarations))
	}
	if decl := result.Declarations[0]; decl.File != zshrc || decl.Value != "nano" {
		t.Errorf("declaration = %+v", decl)
	}
}

// TestInfo_InheritedOnly verifies a variable visible only through the
// process environment is reported as unmanaged.
func TestInfo_InheritedOnly(t *testing.T) {
	env := newTestEnv(t, []string{"SHELL=/bin/zsh"})

	result, err := env.eng.Info(context.Background(), &InfoRequest{Name: "SHELL"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Found {
		t.Fatal("Found not set")
	}
	if !result.InheritedOnly {
		t.Error("InheritedOnly not set")
	}
	if result.Value != "/bin/zsh" {
		t.Errorf("Value = %q, want %q", result.Value, "/bin/zsh")
	}
	for _, status := range result.Statuses {
		if status.Kind != stores.KindInherited && status.Present {
			t.Errorf("%s status present for an inherited-only variable", status.Kind)
		}
	}
}

// TestInfo_UnknownName verifies an unknown variable still yields a full
// status report, with nothing present.
func TestInfo_UnknownName(t *testing.T) {
	env := newTestEnv(t, nil)

	result, err := env.eng.Info(context.Background(), &InfoRequest{Name: "NOPE"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Found {
		t.Error("Found set for an unknown variable")
	}
	for _, status := range result.Statuses {
		if status.Present {
			t.Errorf("%s status present for an unknown variable", status.Kind)
		}
	}
}

// TestInfo_ProfileLocationFallsBackToTarget verifies the profile location
// names the write target when no file declares the variable yet.
func TestInfo_ProfileLocationFallsBackToTarget(t *testing.T) {
	env := newTestEnv(t, nil)

	result, err := env.eng.Info(context.Background(), &InfoRequest{Name: "EDITOR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	profile := result.Statuses[2]
	if profile.Location != env.set.Profiles.Target() {
		t.Errorf("profile location = %q, want %q", profile.Location, env.set.Profiles.Target())
	}
	if want := filepath.Join(env.home, ".profile"); profile.Location != want {
		t.Errorf("profile location = %q, want %q", profile.Location, want)
	}
}

// TestVisibility verifies the session drives application visibility and
// the profiles drive shell visibility, independently.
func TestVisibility(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.launchd.env["APP_ONLY"] = "a"
	env.writeProfile(t, ".profile", "export SHELL_ONLY=\"s\"\n")

	apps, err := env.eng.Visibility(ctx, &VisibilityRequest{Name: "APP_ONLY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !apps.Apps || apps.AppValue != "a" {
		t.Errorf("APP_ONLY apps = (%v, %q), want (true, \"a\")", apps.Apps, apps.AppValue)
	}
	if apps.Shells {
		t.Error("APP_ONLY visible to shells")
	}
	if apps.CurrentProcess {
		t.Error("APP_ONLY visible in the current process")
	}

	shells, err := env.eng.Visibility(ctx, &VisibilityRequest{Name: "SHELL_ONLY"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if shells.Apps {
		t.Error("SHELL_ONLY visible to apps")
	}
	if !shells.Shells || shells.ShellValue != "s" {
		t.Errorf("SHELL_ONLY shells = (%v, %q), want (true, \"s\")", shells.Shells, shells.ShellValue)
	}
}

// TestVisibility_AgentFeedsBothContexts verifies a variable held only by
// the login agent counts for apps and shells, which both see it after the
// next login.
func TestVisibility_AgentFeedsBothContexts(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	if _, err := env.set.LoginAgent.Bind(ctx, "EDITOR", "vim"); err != nil {
		t.Fatalf("seed agent: %v", err)
	}

	result, err := env.eng.Visibility(ctx, &VisibilityRequest{Name: "EDITOR"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Apps || result.AppValue != "vim" {
		t.Errorf("apps = (%v, %q), want (true, \"vim\")", result.Apps, result.AppValue)
	}
	if !result.Shells || result.ShellValue != "vim" {
		t.Errorf("shells = (%v, %q), want (true, \"vim\")", result.Shells, result.ShellValue)
	}
}

// TestVisibility_CurrentProcessOnly verifies an inherited variable shows in
// the process context and nowhere else.
func TestVisibility_CurrentProcessOnly(t *testing.T) {
	env := newTestEnv(t, []string{"TERM=xterm"})

	result, err := env.eng.Visibility(context.Background(), &VisibilityRequest{Name: "TERM"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Apps || result.Shells {
		t.Errorf("visibility = (apps=%v, shells=%v), want neither", result.Apps, result.Shells)
	}
	if !result.CurrentProcess || result.ProcessValue != "xterm" {
		t.Errorf("process = (%v, %q), want (true, \"xterm\")", result.CurrentProcess, result.ProcessValue)
	}
	if result.Value != "xterm" {
		t.Errorf("Value = %q, want the inherited value", result.Value)
	}
}

// TestVisibility_UnknownName verifies a name absent everywhere is an error.
func TestVisibility_UnknownName(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.eng.Visibility(context.Background(), &VisibilityRequest{Name: "NOPE"})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("error = %v, want ErrNotFound", err)
	}
}

// TestList verifies managed variables are listed sorted with their claim
// sources, and inherited-only variables stay out.
func TestList(t *testing.T) {
	env := newTestEnv(t, []string{"HOME=/Users/me", "TMPDIR=/tmp"})
	ctx := context.Background()

	env.launchd.env["PATH"] = "/usr/bin"
	env.launchd.env["EDITOR"] = "vim"
	env.writeProfile(t, ".profile", "export EDITOR=\"nano\"\n")

	result, err := env.eng.List(ctx, &ListRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(result.Entries) != 2 {
		t.Fatalf("got %d entries, want 2: %+v", len(result.Entries), result.Entries)
	}

	editor := result.Entries[0]
	if editor.Name != "EDITOR" || editor.Value != "vim" {
		t.Errorf("first entry = %+v, want EDITOR=vim", editor)
	}
	if len(editor.Sources) != 2 || editor.Sources[0] != stores.KindSession || editor.Sources[1] != stores.KindShellProfile {
		t.Errorf("EDITOR sources = %v, want [session shell-profile]", editor.Sources)
	}

	path := result.Entries[1]
	if path.Name != "PATH" || path.Value != "/usr/bin" {
		t.Errorf("second entry = %+v, want PATH=/usr/bin", path)
	}
	if len(path.Sources) != 1 || path.Sources[0] != stores.KindSession {
		t.Errorf("PATH sources = %v, want [session]", path.Sources)
	}
}

// TestList_Empty verifies an empty managed state lists nothing even when
// the process environment is full.
func TestList_Empty(t *testing.T) {
	env := newTestEnv(t, []string{"HOME=/Users/me", "PATH=/usr/bin"})

	result, err := env.eng.List(context.Background(), &ListRequest{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("entries = %+v, want none", result.Entries)
	}
}

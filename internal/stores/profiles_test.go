package stores

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/thgossler/menv/internal/fsutil"
	"github.com/thgossler/menv/internal/logging"
	"github.com/thgossler/menv/internal/profile"
)

// writeHome lays out profile files under a scratch home directory. Keys are
// paths relative to home.
func writeHome(t *testing.T, files map[string]string) string {
	t.Helper()
	home := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(home, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return home
}

func newProfileStore(t *testing.T, home string) *ProfileStore {
	t.Helper()
	return NewProfileStore(fsutil.NewRealFS(), nil, home, "~/.profile", logging.Nop())
}

func TestProfileReadPriorityOrder(t *testing.T) {
	home := writeHome(t, map[string]string{
		".zshenv":  "export EDITOR=emacs\n",
		".profile": "export EDITOR=vim\n",
	})
	store := newProfileStore(t, home)

	value, found, err := store.Read(context.Background(), "EDITOR")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !found || value != "emacs" {
		t.Errorf("Read = %q, %v; want the .zshenv declaration to win", value, found)
	}
}

func TestProfileReadFindsFishDeclarations(t *testing.T) {
	home := writeHome(t, map[string]string{
		".config/fish/config.fish": "set -gx EDITOR nano\n",
	})
	store := newProfileStore(t, home)

	value, found, err := store.Read(context.Background(), "EDITOR")
	if err != nil || !found || value != "nano" {
		t.Errorf("Read = %q, %v, %v; want fish declaration", value, found, err)
	}

	// Any POSIX candidate outranks fish.
	home2 := writeHome(t, map[string]string{
		".config/fish/config.fish": "set -gx EDITOR nano\n",
		".bashrc":                  "export EDITOR=vi\n",
	})
	value, _, _ = newProfileStore(t, home2).Read(context.Background(), "EDITOR")
	if value != "vi" {
		t.Errorf("Read = %q, want POSIX candidate to outrank fish", value)
	}
}

func TestProfileWriteAppendsToTarget(t *testing.T) {
	home := writeHome(t, map[string]string{
		".profile": "# existing content\n",
	})
	store := newProfileStore(t, home)

	if err := store.Write(context.Background(), "JAVA_HOME", "/opt/java"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(home, ".profile"))
	if err != nil {
		t.Fatal(err)
	}
	want := "# existing content\nexport JAVA_HOME=\"/opt/java\"\n"
	if string(data) != want {
		t.Errorf("target = %q, want %q", data, want)
	}
}

func TestProfileWriteCreatesMissingTarget(t *testing.T) {
	home := t.TempDir()
	store := newProfileStore(t, home)

	if err := store.Write(context.Background(), "EDITOR", "vim"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(home, ".profile"))
	if err != nil {
		t.Fatalf("target not created: %v", err)
	}
	if string(data) != "export EDITOR=\"vim\"\n" {
		t.Errorf("target = %q", data)
	}
}

func TestProfileWriteRewritesEveryDeclarationInTarget(t *testing.T) {
	home := writeHome(t, map[string]string{
		".profile": "export EDITOR='vi'\n# keep me\nexport EDITOR=nano\n",
	})
	store := newProfileStore(t, home)

	if err := store.Write(context.Background(), "EDITOR", "vim"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	data, _ := os.ReadFile(filepath.Join(home, ".profile"))
	want := "export EDITOR=\"vim\"\n# keep me\nexport EDITOR=\"vim\"\n"
	if string(data) != want {
		t.Errorf("target = %q, want %q", data, want)
	}
}

func TestProfileWriteLeavesOtherFilesAlone(t *testing.T) {
	home := writeHome(t, map[string]string{
		".zshenv":  "export EDITOR=emacs\n",
		".profile": "",
	})
	store := newProfileStore(t, home)

	if err := store.Write(context.Background(), "EDITOR", "vim"); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(filepath.Join(home, ".zshenv"))
	if string(data) != "export EDITOR=emacs\n" {
		t.Errorf(".zshenv disturbed by Write: %q", data)
	}
}

func TestProfileRemoveAcrossFiles(t *testing.T) {
	home := writeHome(t, map[string]string{
		".zshrc":                   "export GOPATH=/go\nalias ll='ls -l'\n",
		".profile":                 "export GOPATH=/old/go\n",
		".bashrc":                  "export EDITOR=vim\n",
		".config/fish/config.fish": "set -gx GOPATH /fish/go\n",
	})
	store := newProfileStore(t, home)

	if err := store.Remove(context.Background(), "GOPATH"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	if data, _ := os.ReadFile(filepath.Join(home, ".zshrc")); string(data) != "alias ll='ls -l'\n" {
		t.Errorf(".zshrc = %q", data)
	}
	if data, _ := os.ReadFile(filepath.Join(home, ".profile")); len(data) != 0 {
		t.Errorf(".profile = %q, want empty", data)
	}
	if data, _ := os.ReadFile(filepath.Join(home, ".config/fish/config.fish")); len(data) != 0 {
		t.Errorf("config.fish = %q, want empty", data)
	}
	// A file never declaring the name keeps its content.
	if data, _ := os.ReadFile(filepath.Join(home, ".bashrc")); string(data) != "export EDITOR=vim\n" {
		t.Errorf(".bashrc disturbed: %q", data)
	}
}

func TestProfileNamesUnion(t *testing.T) {
	home := writeHome(t, map[string]string{
		".zshenv":                  "export EDITOR=emacs\nexport GOPATH=/go\n",
		".profile":                 "export EDITOR=vim\nexport JAVA_HOME=/opt/java\n",
		".config/fish/config.fish": "set -gx FISH_ONLY 1\n",
	})
	store := newProfileStore(t, home)

	names, err := store.Names(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"EDITOR", "GOPATH", "JAVA_HOME", "FISH_ONLY"}
	if len(names) != len(want) {
		t.Fatalf("Names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestProfileDeclarations(t *testing.T) {
	home := writeHome(t, map[string]string{
		".zshenv":                  "export PATH=\"/usr/bin:/opt/x\"\n",
		".profile":                 "# header\nexport PATH=/usr/bin\n",
		".config/fish/config.fish": "set -gx PATH /usr/bin /opt/x\n",
	})
	store := newProfileStore(t, home)

	decls, err := store.Declarations(context.Background(), "PATH")
	if err != nil {
		t.Fatal(err)
	}
	if len(decls) != 3 {
		t.Fatalf("found %d declarations, want 3: %+v", len(decls), decls)
	}

	first := decls[0]
	if filepath.Base(first.File) != ".zshenv" || first.Line != 0 || first.Value != "/usr/bin:/opt/x" {
		t.Errorf("winning declaration = %+v", first)
	}
	second := decls[1]
	if filepath.Base(second.File) != ".profile" || second.Line != 1 {
		t.Errorf("second declaration = %+v", second)
	}
	third := decls[2]
	if third.Grammar != profile.Fish || third.Value != "/usr/bin:/opt/x" {
		t.Errorf("fish declaration = %+v", third)
	}
}

func TestProfileRewrite(t *testing.T) {
	home := writeHome(t, map[string]string{
		".zshrc": "export PATH=\"/usr/bin:/opt/x\"\n# note\nexport CDPATH=\"/opt/x\"\n",
	})
	store := newProfileStore(t, home)
	path := filepath.Join(home, ".zshrc")

	trimmed := "/usr/bin"
	err := store.Rewrite(context.Background(), path, []Edit{
		{Line: 0, NewValue: &trimmed},
		{Line: 2, NewValue: nil},
	})
	if err != nil {
		t.Fatalf("Rewrite failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	want := "export PATH=\"/usr/bin\"\n# note\n"
	if string(data) != want {
		t.Errorf("rewritten file = %q, want %q", data, want)
	}
}

func TestProfileSkipsUnreadableFiles(t *testing.T) {
	home := writeHome(t, map[string]string{
		".profile": "export EDITOR=vim\n",
	})
	// A directory where a profile file is expected fails the read without
	// being a missing file.
	if err := os.MkdirAll(filepath.Join(home, ".zshenv"), 0755); err != nil {
		t.Fatal(err)
	}
	store := newProfileStore(t, home)

	value, found, err := store.Read(context.Background(), "EDITOR")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !found || value != "vim" {
		t.Errorf("Read = %q, %v; want declaration behind the unreadable candidate", value, found)
	}
}

func TestProfileTargetExpansion(t *testing.T) {
	home := t.TempDir()
	store := NewProfileStore(fsutil.NewRealFS(), nil, home, "~/.zshenv", logging.Nop())
	if store.Target() != filepath.Join(home, ".zshenv") {
		t.Errorf("Target = %q", store.Target())
	}
}

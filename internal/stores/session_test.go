package stores

import (
	"context"
	"errors"
	"testing"

	"github.com/thgossler/menv/internal/launchctl"
)

// fakeLaunchd emulates the launchd session environment behind the
// launchctl command surface.
type fakeLaunchd struct {
	env  map[string]string
	fail error
}

func newFakeLaunchd() *fakeLaunchd {
	return &fakeLaunchd{env: make(map[string]string)}
}

func (f *fakeLaunchd) Run(_ context.Context, args ...string) (string, error) {
	if f.fail != nil {
		return "", f.fail
	}
	switch args[0] {
	case "getenv":
		return f.env[args[1]] + "\n", nil
	case "setenv":
		f.env[args[1]] = args[2]
		return "", nil
	case "unsetenv":
		delete(f.env, args[1])
		return "", nil
	case "export":
		out := ""
		for name, value := range f.env {
			out += name + `="` + value + `"; export ` + name + ";\n"
		}
		return out, nil
	}
	return "", errors.New("unknown subcommand")
}

func (f *fakeLaunchd) store() *SessionStore {
	return NewSessionStore(launchctl.NewWithRunner(f))
}

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newFakeLaunchd().store()

	if err := store.Write(ctx, "JAVA_HOME", "/opt/java"); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	value, found, err := store.Read(ctx, "JAVA_HOME")
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}
	if !found || value != "/opt/java" {
		t.Errorf("Read = %q, %v", value, found)
	}

	if err := store.Remove(ctx, "JAVA_HOME"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, found, _ := store.Read(ctx, "JAVA_HOME"); found {
		t.Error("variable still present after Remove")
	}
}

func TestSessionStoreRemoveAbsent(t *testing.T) {
	store := newFakeLaunchd().store()
	if err := store.Remove(context.Background(), "NEVER_SET"); err != nil {
		t.Errorf("Remove of absent variable failed: %v", err)
	}
}

func TestSessionStoreNamesSorted(t *testing.T) {
	fake := newFakeLaunchd()
	fake.env["ZED"] = "1"
	fake.env["ALPHA"] = "2"
	fake.env["MID"] = "3"

	names, err := fake.store().Names(context.Background())
	if err != nil {
		t.Fatalf("Names failed: %v", err)
	}
	want := []string{"ALPHA", "MID", "ZED"}
	if len(names) != len(want) {
		t.Fatalf("Names = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestSessionStorePropagatesErrors(t *testing.T) {
	fake := newFakeLaunchd()
	fake.fail = errors.New("launchd unreachable")
	store := fake.store()
	ctx := context.Background()

	if _, _, err := store.Read(ctx, "X"); !errors.Is(err, fake.fail) {
		t.Errorf("Read error = %v, want wrapped launchd failure", err)
	}
	if err := store.Write(ctx, "X", "1"); !errors.Is(err, fake.fail) {
		t.Errorf("Write error = %v", err)
	}
	if _, err := store.Names(ctx); !errors.Is(err, fake.fail) {
		t.Errorf("Names error = %v", err)
	}
}

func TestSessionStoreKind(t *testing.T) {
	if kind := newFakeLaunchd().store().Kind(); kind != KindSession {
		t.Errorf("Kind = %v", kind)
	}
}

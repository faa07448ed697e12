package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestDefaultLevelSuppressesDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, false, true)

	log.Debug().Msg("probe skipped")
	log.Warn().Msg("profile unreadable")

	out := buf.String()
	if strings.Contains(out, "probe skipped") {
		t.Error("debug message emitted at default level")
	}
	if !strings.Contains(out, "profile unreadable") {
		t.Error("warn message missing at default level")
	}
}

func TestVerboseEmitsDebug(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(&buf, true, true)

	log.Debug().Str("store", "session").Msg("probe skipped")

	out := buf.String()
	if !strings.Contains(out, "probe skipped") || !strings.Contains(out, "session") {
		t.Errorf("verbose output missing debug detail: %q", out)
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	// Must not panic and must swallow everything.
	log.Error().Msg("ignored")
}

package clock

import (
	"testing"
	"time"
)

func TestRealClockNow(t *testing.T) {
	c := &RealClock{}

	before := time.Now()
	got := c.Now()
	after := time.Now()

	if got.Before(before) || got.After(after) {
		t.Errorf("Now() = %v, want a time between %v and %v", got, before, after)
	}
}

func TestFakeClock(t *testing.T) {
	pinned := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	c := NewFakeClock(pinned)

	if got := c.Now(); !got.Equal(pinned) {
		t.Errorf("Now() = %v, want %v", got, pinned)
	}
	if got := c.Now(); !got.Equal(pinned) {
		t.Errorf("second Now() = %v, want the same pinned time", got)
	}

	c.Advance(90 * time.Second)
	if got, want := c.Now(), pinned.Add(90*time.Second); !got.Equal(want) {
		t.Errorf("after Advance, Now() = %v, want %v", got, want)
	}

	moved := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c.Set(moved)
	if got := c.Now(); !got.Equal(moved) {
		t.Errorf("after Set, Now() = %v, want %v", got, moved)
	}
}

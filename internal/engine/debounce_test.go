package engine

import (
	"testing"
	"time"
)

// TestGuardAcceptsFirstEvent verifies the first candidate always passes.
func TestGuardAcceptsFirstEvent(t *testing.T) {
	g := guard{minInterval: time.Second}
	if !g.accept(time.Unix(100, 0)) {
		t.Error("first candidate rejected")
	}
}

// TestGuardMinimumSpacing verifies no two accepted events are closer than
// the configured interval, for an arbitrary candidate sequence.
func TestGuardMinimumSpacing(t *testing.T) {
	g := guard{minInterval: time.Second}
	base := time.Unix(100, 0)
	offsets := []time.Duration{
		0,
		300 * time.Millisecond,
		900 * time.Millisecond,
		1100 * time.Millisecond,
		1500 * time.Millisecond,
		2100 * time.Millisecond,
		2200 * time.Millisecond,
	}

	var accepted []time.Time
	for _, off := range offsets {
		ts := base.Add(off)
		if g.accept(ts) {
			accepted = append(accepted, ts)
		}
	}

	if len(accepted) != 3 {
		t.Fatalf("accepted %d events, want 3", len(accepted))
	}
	for i := 1; i < len(accepted); i++ {
		if gap := accepted[i].Sub(accepted[i-1]); gap < time.Second {
			t.Errorf("gap %v between accepted events, want >= 1s", gap)
		}
	}
	if g.dropped != 4 {
		t.Errorf("dropped = %d, want 4", g.dropped)
	}
}

// TestGuardResetForgetsLastEvent verifies reset clears the last-accepted
// timestamp so the next candidate passes immediately.
func TestGuardResetForgetsLastEvent(t *testing.T) {
	g := guard{minInterval: time.Minute}
	g.accept(time.Unix(100, 0))
	g.reset()
	if !g.accept(time.Unix(100, 1)) {
		t.Error("candidate rejected after reset")
	}
}

package engine

import (
	"math"
	"testing"
)

// TestSmootherSeedsWithFirstSample verifies the first sample after a reset
// becomes the running value directly, with no ramp from zero.
func TestSmootherSeedsWithFirstSample(t *testing.T) {
	m := smoother{alpha: 0.8}
	if got := m.update(9.81); got != 9.81 {
		t.Errorf("first update = %v, want 9.81", got)
	}
}

// TestSmootherFormula verifies the exponential decay arithmetic.
func TestSmootherFormula(t *testing.T) {
	m := smoother{alpha: 0.6}
	m.update(1.0)
	got := m.update(0.0)
	want := 1.0*0.6 + 0.0*0.4
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("update = %v, want %v", got, want)
	}
	got = m.update(0.5)
	want = want*0.6 + 0.5*0.4
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("update = %v, want %v", got, want)
	}
}

// TestSmootherResetReseeds verifies reset discards the running value and
// the next sample seeds again.
func TestSmootherResetReseeds(t *testing.T) {
	m := smoother{alpha: 0.6}
	m.update(100)
	m.update(100)
	m.reset()
	if got := m.update(1); got != 1 {
		t.Errorf("update after reset = %v, want 1", got)
	}
}

// TestSmootherZeroAlphaPassesThrough verifies alpha 0 makes the smoother
// transparent.
func TestSmootherZeroAlphaPassesThrough(t *testing.T) {
	m := smoother{alpha: 0}
	m.update(5)
	if got := m.update(2); got != 2 {
		t.Errorf("update = %v, want 2", got)
	}
}

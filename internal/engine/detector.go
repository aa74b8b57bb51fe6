package engine

import "math"

// Phase is the engine's position in the rep-detection cycle.
type Phase int

const (
	PhaseNeutral Phase = iota
	PhaseDescending
	PhaseAscending
)

func (p Phase) String() string {
	switch p {
	case PhaseDescending:
		return "descending"
	case PhaseAscending:
		return "ascending"
	default:
		return "neutral"
	}
}

// detector is the rep phase state machine. It consumes the smoothed,
// calibrated signal and reports rep candidates using a three-phase cycle
// with peak tracking and an asymmetric double threshold: entering a descent
// requires the full threshold away from baseline, while closing the rep
// only requires returning within half of it. Demanding an exact baseline
// return on a noisy signal drops real reps when residual motion leaves the
// signal slightly off-center.
//
// The phase is the machine's only mutable state besides the tracked peak,
// and transitions depend on nothing but (phase, signal, baseline, peak).
type detector struct {
	threshold float64
	phase     Phase
	peak      float64
}

func newDetector(threshold float64) detector {
	return detector{threshold: threshold}
}

func (d *detector) reset() {
	d.phase = PhaseNeutral
	d.peak = 0
}

// step advances the phase machine with smoothed sample s against baseline b.
// It returns true when a rep candidate completes (ascending back to neutral).
// The signal convention is that descending movement decreases the value
// (adapters normalize for this).
func (d *detector) step(s, b float64) bool {
	switch d.phase {
	case PhaseNeutral:
		if b-s > d.threshold {
			d.phase = PhaseDescending
			d.peak = s
		}
	case PhaseDescending:
		if s < d.peak {
			// Still heading down: capture the true bottom regardless
			// of noise on the way.
			d.peak = s
		} else if s-d.peak >= d.threshold {
			// Confirmed reversal off the peak. Not a return to
			// baseline yet; this is what separates a real rep from
			// a partial dip.
			d.phase = PhaseAscending
		}
	case PhaseAscending:
		if math.Abs(s-b) <= d.threshold/2 {
			d.phase = PhaseNeutral
			d.peak = 0
			return true
		}
	}
	return false
}

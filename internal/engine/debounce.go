package engine

import "time"

// guard enforces the minimum spacing between accepted rep events. It is the
// sole safeguard against signal ringing crediting one physical repetition
// twice, layered on top of the phase machine's own hysteresis.
type guard struct {
	minInterval time.Duration
	last        time.Time
	dropped     int
}

// accept reports whether a candidate at time t clears the debounce
// interval. Premature candidates are dropped silently and counted.
func (g *guard) accept(t time.Time) bool {
	if !g.last.IsZero() && t.Sub(g.last) < g.minInterval {
		g.dropped++
		return false
	}
	g.last = t
	return true
}

func (g *guard) reset() {
	g.last = time.Time{}
	g.dropped = 0
}

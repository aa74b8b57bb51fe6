package engine

// smoother applies exponential smoothing to the incoming signal:
//
//	smoothed = smoothed*alpha + sample*(1-alpha)
//
// The first sample after a reset seeds the running value directly so the
// signal does not ramp up from zero. Callers must reject non-finite input
// before calling update; a single NaN would poison the running value for
// the rest of the session.
type smoother struct {
	alpha  float64
	value  float64
	seeded bool
}

func (m *smoother) update(v float64) float64 {
	if !m.seeded {
		m.value = v
		m.seeded = true
		return v
	}
	m.value = m.value*m.alpha + v*(1-m.alpha)
	return m.value
}

func (m *smoother) reset() {
	m.value = 0
	m.seeded = false
}

package engine

// calibrator establishes the session's neutral baseline. Pose sessions use
// a fixed reference (the known rest midpoint), accelerometer sessions
// average the first window samples to capture the gravity resting value.
// The baseline is read-only to the phase machine until the next session
// start; recalibration never happens mid-session.
type calibrator struct {
	window int     // 0 means fixed baseline
	fixed  float64 // used when window == 0

	n        int
	sum      float64
	baseline float64
	done     bool
}

func newCalibrator(window int, fixed float64) calibrator {
	c := calibrator{window: window, fixed: fixed}
	c.reset()
	return c
}

func (c *calibrator) reset() {
	c.n = 0
	c.sum = 0
	c.done = c.window == 0
	if c.done {
		c.baseline = c.fixed
	} else {
		c.baseline = 0
	}
}

// offer feeds one smoothed sample into the warmup window. It returns true
// once the baseline is established; the sample that completes the window is
// consumed by calibration and must not reach the phase machine.
func (c *calibrator) offer(v float64) bool {
	if c.done {
		return true
	}
	c.n++
	c.sum += v
	if c.n >= c.window {
		c.baseline = c.sum / float64(c.n)
		c.done = true
	}
	return false
}

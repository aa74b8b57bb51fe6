// Package engine turns a noisy, continuous motion or pose signal into
// discrete, debounced rep-completion events. Raw readings are normalized by
// a source adapter, exponentially smoothed, measured against a per-session
// calibrated baseline, and run through a three-phase state machine whose
// output is debounced before reaching the event sink.
package engine

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrInvalidSample is returned for non-finite sample values. The sample is
// dropped and the smoothing state is left untouched.
var ErrInvalidSample = errors.New("non-finite sample")

// ErrNotTracking is returned when samples arrive outside an active session.
var ErrNotTracking = errors.New("no active tracking session")

// Sink receives accepted rep-completion events. The engine never blocks on
// or inspects the result of delivery; counting, rewards, and persistence
// happen downstream.
type Sink interface {
	OnRepCompleted(kind Kind, at time.Time)
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(kind Kind, at time.Time)

func (f SinkFunc) OnRepCompleted(kind Kind, at time.Time) { f(kind, at) }

// Config holds the session tuning recognized by the engine. Zero fields are
// filled from the exercise kind's default profile at session start.
type Config struct {
	Kind   Kind
	Source SourceKind

	// Alpha is the smoothing decay in [0,1). Zero keeps the default.
	Alpha float64

	// Threshold is the descent-entry deviation from baseline.
	Threshold float64

	// MinRepInterval is the debounce floor between accepted reps.
	MinRepInterval time.Duration

	// CalibrationSamples overrides the accelerometer warmup window.
	// Ignored for pose and manual sessions, which use a fixed baseline.
	CalibrationSamples int

	// Baseline overrides the fixed baseline for pose sessions.
	Baseline float64
}

// resolve fills zero fields from the kind's profile and pins the
// calibration strategy to the source: pose rests at a known midpoint,
// accelerometer input averages a warmup window.
func (c Config) resolve() Config {
	p := DefaultProfile(c.Kind)
	if c.Alpha == 0 {
		c.Alpha = p.Alpha
	}
	if c.Threshold == 0 {
		c.Threshold = p.Threshold
	}
	if c.MinRepInterval == 0 {
		c.MinRepInterval = p.MinRepInterval
	}
	switch c.Source {
	case SourceAccelerometer:
		if c.CalibrationSamples == 0 {
			c.CalibrationSamples = p.CalibrationSamples
		}
	default:
		c.CalibrationSamples = 0
		if c.Baseline == 0 {
			c.Baseline = DefaultBaseline
		}
	}
	return c
}

// Counters are diagnostic totals for the current session. Dropped and
// invalid samples are never surfaced as errors to the surrounding system,
// so these are the only way to observe them.
type Counters struct {
	Samples   int // samples offered
	Invalid   int // non-finite samples dropped
	Accepted  int // reps delivered to the sink
	Debounced int // candidates dropped by the debounce guard
}

// Engine is one rep-detection pipeline instance. All session state is owned
// by the instance and touched synchronously from Offer; it is not safe for
// concurrent use. Deliver samples from a single goroutine in arrival order,
// or run one engine per stream and merge the debounced outputs downstream.
type Engine struct {
	base Config // as supplied by the caller
	cfg  Config // resolved against the kind profile
	sink Sink

	smooth   smoother
	cal      calibrator
	det      detector
	guard    guard
	tracking bool
	counters Counters
}

// New creates an engine for the given session configuration. Tracking does
// not begin until Start is called.
func New(cfg Config, sink Sink) (*Engine, error) {
	if sink == nil {
		return nil, errors.New("nil sink")
	}
	if !cfg.Kind.Valid() {
		return nil, fmt.Errorf("invalid exercise kind %q", cfg.Kind)
	}
	if cfg.Alpha < 0 || cfg.Alpha >= 1 {
		return nil, fmt.Errorf("smoothing decay %v outside [0,1)", cfg.Alpha)
	}
	if cfg.Threshold < 0 {
		return nil, fmt.Errorf("negative threshold %v", cfg.Threshold)
	}
	e := &Engine{base: cfg, sink: sink}
	e.apply(cfg)
	return e, nil
}

func (e *Engine) apply(base Config) {
	e.base = base
	e.cfg = base.resolve()
	e.smooth = smoother{alpha: e.cfg.Alpha}
	e.cal = newCalibrator(e.cfg.CalibrationSamples, e.cfg.Baseline)
	e.det = newDetector(e.cfg.Threshold)
	e.guard = guard{minInterval: e.cfg.MinRepInterval}
}

// Start begins a fresh tracking session, discarding any prior smoothed
// value, baseline, phase, peak, and debounce state. Calling Start on an
// active session is equivalent to stop-then-start.
func (e *Engine) Start() {
	e.smooth.reset()
	e.cal.reset()
	e.det.reset()
	e.guard.reset()
	e.counters = Counters{}
	e.tracking = true
}

// Stop ends the session and discards in-progress state. There is no
// partial-session resume.
func (e *Engine) Stop() {
	e.tracking = false
}

// Tracking reports whether a session is active.
func (e *Engine) Tracking() bool { return e.tracking }

// SetKind switches the exercise mid-flight. All session-scoped state is
// discarded and the kind's profile re-applied; the switch itself never
// emits an event.
func (e *Engine) SetKind(k Kind) error {
	if !k.Valid() {
		return fmt.Errorf("invalid exercise kind %q", k)
	}
	base := e.base
	base.Kind = k
	e.apply(base)
	if e.tracking {
		e.Start()
	}
	return nil
}

// Kind returns the exercise being tracked.
func (e *Engine) Kind() Kind { return e.cfg.Kind }

// Phase returns the current rep cycle phase.
func (e *Engine) Phase() Phase { return e.det.phase }

// Counters returns the session's diagnostic totals.
func (e *Engine) Counters() Counters {
	c := e.counters
	c.Debounced = e.guard.dropped
	return c
}

// Offer feeds one adapted sample through smoothing, calibration, and the
// phase machine. Samples arriving during the calibration window only feed
// the baseline; the machine sees nothing until calibration completes.
func (e *Engine) Offer(s Sample) error {
	if !e.tracking {
		return ErrNotTracking
	}
	e.counters.Samples++
	if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		e.counters.Invalid++
		return ErrInvalidSample
	}
	v := e.smooth.update(s.Value)
	if !e.cal.done {
		e.cal.offer(v)
		return nil
	}
	if e.det.step(v, e.cal.baseline) {
		e.emit(s.Time)
	}
	return nil
}

// ManualRep records a user tap. Manual input bypasses smoothing and phase
// tracking entirely and goes straight through the debounce guard. It
// reports whether the rep was accepted.
func (e *Engine) ManualRep(at time.Time) bool {
	if !e.tracking {
		return false
	}
	return e.emit(at)
}

func (e *Engine) emit(at time.Time) bool {
	if !e.guard.accept(at) {
		return false
	}
	e.counters.Accepted++
	e.sink.OnRepCompleted(e.cfg.Kind, at)
	return true
}

package engine

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SourceKind identifies the signal backend feeding a tracking session.
type SourceKind string

const (
	SourceAccelerometer SourceKind = "accelerometer"
	SourcePose          SourceKind = "pose"
	SourceManual        SourceKind = "manual"
)

// ParseSourceKind resolves a client-supplied source name.
func ParseSourceKind(s string) (SourceKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "accelerometer", "accel":
		return SourceAccelerometer, nil
	case "pose", "camera":
		return SourcePose, nil
	case "manual", "tap":
		return SourceManual, nil
	}
	return "", fmt.Errorf("unknown signal source %q", s)
}

func (s SourceKind) String() string { return string(s) }

// Axis selects one component of a 3-axis accelerometer reading.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// ErrSensorUnavailable is returned when the requested signal backend is not
// present on the device. Callers fall back to manual input.
var ErrSensorUnavailable = errors.New("signal source unavailable")

// ErrSourceMismatch is returned when a raw reading does not match the
// session's configured source.
var ErrSourceMismatch = errors.New("raw reading does not match session source")

// Capabilities reports which sensor backends the surrounding platform
// actually provides. It is probed once at startup and passed into session
// configuration, rather than kept as process-wide mutable state.
type Capabilities struct {
	Accelerometer bool
	Pose          bool
}

// Sample is one timestamped scalar signal value, consumed once by the
// engine and never retained beyond the smoothing window.
type Sample struct {
	Value float64
	Time  time.Time
}

// Raw is a source-specific reading before adapter normalization.
type Raw interface {
	at() time.Time
}

// AccelReading is one raw 3-axis accelerometer sample.
type AccelReading struct {
	X, Y, Z float64
	Time    time.Time
}

func (r AccelReading) at() time.Time { return r.Time }

// Landmark is a normalized pose landmark position. Coordinates run from
// (0,0) at the top-left of the frame to (1,1) at the bottom-right, so a
// lower Y means higher in frame.
type Landmark struct {
	X, Y float64
}

// PoseFrame carries the named landmarks relevant to rep tracking for one
// camera frame.
type PoseFrame struct {
	Shoulder Landmark
	Time     time.Time
}

func (f PoseFrame) at() time.Time { return f.Time }

// Adapter normalizes raw readings from one backend into the engine's scalar
// signal. Every variant emits a signal in which descending movement
// decreases the value, so the phase machine needs no per-source direction
// handling. The mapping is pure; an Adapter has no mutable state.
type Adapter struct {
	kind   Kind
	source SourceKind
	axis   Axis
}

// NewAdapter selects the signal variant for a session. It fails with
// ErrSensorUnavailable when the platform capabilities do not include the
// requested backend. Manual sessions get an adapter too, but manual taps
// bypass it entirely (Engine.ManualRep).
func NewAdapter(kind Kind, source SourceKind, caps Capabilities) (*Adapter, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid exercise kind %q", kind)
	}
	switch source {
	case SourceAccelerometer:
		if !caps.Accelerometer {
			return nil, fmt.Errorf("accelerometer: %w", ErrSensorUnavailable)
		}
	case SourcePose:
		if !caps.Pose {
			return nil, fmt.Errorf("pose: %w", ErrSensorUnavailable)
		}
	case SourceManual:
		// Always available.
	default:
		return nil, fmt.Errorf("unknown signal source %q", source)
	}
	return &Adapter{kind: kind, source: source, axis: DefaultProfile(kind).AccelAxis}, nil
}

// Source returns the backend variant this adapter was built for.
func (a *Adapter) Source() SourceKind { return a.source }

// Convert maps a raw reading to one scalar sample.
//
// Accelerometer readings contribute the exercise-relevant axis component.
// Pose frames contribute the shoulder's vertical position flipped to
// height-above-bottom, so dropping into a pushup lowers the value. Manual
// taps carry no signal and are rejected here; they go through
// Engine.ManualRep instead.
func (a *Adapter) Convert(raw Raw) (Sample, error) {
	switch r := raw.(type) {
	case AccelReading:
		if a.source != SourceAccelerometer {
			return Sample{}, ErrSourceMismatch
		}
		v := r.Z
		switch a.axis {
		case AxisX:
			v = r.X
		case AxisY:
			v = r.Y
		}
		return Sample{Value: v, Time: r.Time}, nil
	case PoseFrame:
		if a.source != SourcePose {
			return Sample{}, ErrSourceMismatch
		}
		return Sample{Value: 1 - r.Shoulder.Y, Time: r.Time}, nil
	}
	return Sample{}, ErrSourceMismatch
}

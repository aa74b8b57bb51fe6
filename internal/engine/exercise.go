package engine

import (
	"fmt"
	"strings"
	"time"
)

// Kind identifies the exercise being tracked. It selects the threshold
// profile and the dominant signal axis, and is immutable for the duration
// of a tracking session.
type Kind string

const (
	KindPushup Kind = "pushup"
	KindSitup  Kind = "situp"
)

// kindAliases maps lowercased spellings seen in client payloads and CSV
// exports to their canonical kinds.
var kindAliases = map[string]Kind{
	"pushup":   KindPushup,
	"push-up":  KindPushup,
	"push up":  KindPushup,
	"pushups":  KindPushup,
	"push-ups": KindPushup,
	"push ups": KindPushup,
	"situp":    KindSitup,
	"sit-up":   KindSitup,
	"sit up":   KindSitup,
	"situps":   KindSitup,
	"sit-ups":  KindSitup,
	"sit ups":  KindSitup,
}

// ParseKind resolves a user- or client-supplied exercise name to a Kind.
func ParseKind(s string) (Kind, error) {
	k, ok := kindAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return "", fmt.Errorf("unknown exercise kind %q", s)
	}
	return k, nil
}

func (k Kind) String() string { return string(k) }

// Valid reports whether k is a known exercise kind.
func (k Kind) Valid() bool {
	return k == KindPushup || k == KindSitup
}

// Profile holds the per-exercise tuning constants. The values are empirical:
// they shape sensitivity and noise rejection but not the structure of the
// detection cycle.
type Profile struct {
	// Alpha is the exponential smoothing decay in [0,1). Higher values
	// favor noise rejection over responsiveness.
	Alpha float64

	// Threshold is the signal deviation from baseline that starts a
	// descent. The closing threshold is half of it.
	Threshold float64

	// MinRepInterval is the debounce floor between accepted reps.
	MinRepInterval time.Duration

	// CalibrationSamples is the warmup window used to establish the
	// accelerometer resting baseline. Pose sessions use a fixed baseline
	// instead (see DefaultBaseline).
	CalibrationSamples int

	// AccelAxis is the accelerometer component that tracks the movement.
	AccelAxis Axis
}

// DefaultBaseline is the rest midpoint for normalized pose input. A shoulder
// at rest sits near the middle of the frame.
const DefaultBaseline = 0.5

// DefaultProfile returns the tuned constants for an exercise kind.
func DefaultProfile(k Kind) Profile {
	switch k {
	case KindSitup:
		return Profile{
			Alpha:              0.6,
			Threshold:          0.25,
			MinRepInterval:     1200 * time.Millisecond,
			CalibrationSamples: 20,
			AccelAxis:          AxisY,
		}
	default: // pushup
		return Profile{
			Alpha:              0.6,
			Threshold:          0.3,
			MinRepInterval:     800 * time.Millisecond,
			CalibrationSamples: 20,
			AccelAxis:          AxisZ,
		}
	}
}

package track

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/repcoin/repcoin/internal/engine"
)

// Recording is a sequence of raw sensor readings loaded from a CSV export,
// ready to replay through the detection engine.
type Recording struct {
	Source engine.SourceKind
	Raws   []engine.Raw
}

// ReadRecording parses a recorded sample CSV. The header row names the
// layout:
//
//	ts,x,y,z                  accelerometer readings
//	ts,shoulder_x,shoulder_y  pose landmark frames
//
// ts is unix milliseconds or RFC3339.
func ReadRecording(r io.Reader) (*Recording, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}
	for i := range header {
		header[i] = strings.ToLower(strings.TrimSpace(header[i]))
	}

	var rec Recording
	switch {
	case len(header) == 4 && header[0] == "ts" && header[1] == "x":
		rec.Source = engine.SourceAccelerometer
	case len(header) == 3 && header[0] == "ts" && header[1] == "shoulder_x":
		rec.Source = engine.SourcePose
	default:
		return nil, fmt.Errorf("unrecognized recording header %v", header)
	}

	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", line, err)
		}

		ts, err := parseTimestamp(row[0])
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		vals := make([]float64, len(row)-1)
		for i, cell := range row[1:] {
			if vals[i], err = strconv.ParseFloat(strings.TrimSpace(cell), 64); err != nil {
				return nil, fmt.Errorf("line %d: parsing %q: %w", line, cell, err)
			}
		}

		switch rec.Source {
		case engine.SourceAccelerometer:
			rec.Raws = append(rec.Raws, engine.AccelReading{X: vals[0], Y: vals[1], Z: vals[2], Time: ts})
		case engine.SourcePose:
			rec.Raws = append(rec.Raws, engine.PoseFrame{Shoulder: engine.Landmark{X: vals[0], Y: vals[1]}, Time: ts})
		}
	}

	if len(rec.Raws) == 0 {
		return nil, fmt.Errorf("recording has no samples")
	}
	return &rec, nil
}

// ReadRecordingFile opens and parses a recording CSV from disk.
func ReadRecordingFile(path string) (*Recording, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening recording: %w", err)
	}
	defer f.Close()
	return ReadRecording(f)
}

func parseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms).UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing timestamp %q: %w", s, err)
	}
	return t, nil
}

package segments

import (
	"fmt"

	"github.com/openbird/openbird/audio"
)

// Segment is one fixed-duration clip cut from a longer recording.
type Segment struct {
	// Start and End are the clip boundaries in seconds of the source.
	Start float64
	End   float64

	Buffer *audio.Buffer
}

// Split cuts buf into clips of the given duration (seconds), each starting
// overlap seconds before the previous one ends. A trailing remainder
// shorter than duration is dropped. overlap must be non-negative and less
// than duration.
func Split(buf *audio.Buffer, duration, overlap float64) ([]Segment, error) {
	if duration <= 0 {
		return nil, fmt.Errorf("segments: duration must be positive, got %g", duration)
	}
	if overlap < 0 || overlap >= duration {
		return nil, fmt.Errorf("segments: overlap %g must be in [0, duration %g)", overlap, duration)
	}

	step := duration - overlap
	total := buf.Duration()

	var out []Segment
	for start := 0.0; start+duration <= total+1e-9; start += step {
		end := start + duration
		out = append(out, Segment{
			Start:  start,
			End:    end,
			Buffer: buf.Trim(start, end),
		})
	}
	return out, nil
}

// internal/signal/segmenter.go
// Package signal segments a raw color-sample stream into closed intervals.
package signal

import "time"

// ColorClass is the hardware-agnostic color enumeration the decoder core
// operates on. Sensor adapters must map raw device codes onto these values
// before feeding the pipeline (see MapRawColor).
type ColorClass int

const (
	// Background is anything the track surface shows outside the signal lane.
	Background ColorClass = iota
	// SignalMark is the "key down" track color carrying dots and dashes.
	SignalMark
	// SignalGap is the "key up" track color separating marks.
	SignalGap
	// SteeringHint colors are consumed by the heading controller, not the decoder.
	SteeringHint
	// Ignored covers raw codes with no assigned meaning.
	Ignored
)

// String returns a human-readable name for the color class.
func (c ColorClass) String() string {
	switch c {
	case Background:
		return "background"
	case SignalMark:
		return "mark"
	case SignalGap:
		return "gap"
	case SteeringHint:
		return "steering"
	default:
		return "ignored"
	}
}

// Decodable reports whether intervals of this class participate in Morse
// classification. All other classes pass through the classifier untouched.
func (c ColorClass) Decodable() bool {
	return c == SignalMark || c == SignalGap
}

// ColorSample is one sensor reading: a mapped color class and the instant
// it was observed.
type ColorSample struct {
	Color     ColorClass
	Timestamp time.Time
}

// Interval is one maximal contiguous run of a single color class and the
// elapsed time it was continuously observed.
type Interval struct {
	Color    ColorClass
	Duration time.Duration
}

// Segmenter detects color transitions in the sample stream and emits one
// closed Interval per maximal run of identical consecutive colors.
//
// Durations are always derived from two sample timestamps, never from a
// free-running counter, so a slow or jittery polling loop cannot introduce
// drift. The first sample only seeds state.
type Segmenter struct {
	seeded        bool
	currentColor  ColorClass
	intervalStart time.Time
}

// NewSegmenter returns a segmenter ready for the first sample of a session.
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Observe consumes one sample. When the sample's color differs from the run
// currently being tracked, Observe closes that run and returns its interval
// with ok=true; otherwise ok is false. Debouncing identical consecutive
// readings is handled here so the classifier only ever sees transitions.
func (s *Segmenter) Observe(sample ColorSample) (Interval, bool) {
	if !s.seeded {
		s.seeded = true
		s.currentColor = sample.Color
		s.intervalStart = sample.Timestamp
		return Interval{}, false
	}

	if sample.Color == s.currentColor {
		return Interval{}, false
	}

	iv := Interval{
		Color:    s.currentColor,
		Duration: sample.Timestamp.Sub(s.intervalStart),
	}
	s.currentColor = sample.Color
	s.intervalStart = sample.Timestamp
	return iv, true
}

// CurrentColor returns the color class of the open run, if any.
func (s *Segmenter) CurrentColor() (ColorClass, bool) {
	return s.currentColor, s.seeded
}

// Reset clears the segmenter for a new decoding session.
func (s *Segmenter) Reset() {
	s.seeded = false
	s.currentColor = Background
	s.intervalStart = time.Time{}
}

// internal/morse/classifier.go
package morse

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/jwhitmore/colorcw/internal/signal"
)

// Timing boundary defaults. The two source variants of the track layout
// disagreed on the exact cutoffs, so all three are plain config-tunable
// ratios rather than structural constants.
const (
	// DefaultDotDashBoundary: a mark strictly shorter than this many unit
	// durations is a Dot, otherwise a Dash. A mark of exactly one unit
	// classifies as Dash.
	DefaultDotDashBoundary = 1.0
	// DefaultGapFloor: a gap shorter than this many units is intra-letter
	// spacing and emits no symbol.
	DefaultGapFloor = 1.0
	// DefaultWordGapBoundary: a gap of at least this many units is a word
	// boundary. Shorter gaps emit round(ratio) letter-boundary symbols.
	DefaultWordGapBoundary = 3.0
	// DefaultTerminationGapCount is the trailing run of SymbolGap symbols
	// (or the rounded unit length of a single silence) that marks the end
	// of the message.
	DefaultTerminationGapCount = 7
)

var (
	// ErrInvalidInterval indicates a non-positive interval duration, which
	// is a contract violation by the segmenter. The caller should skip the
	// interval; session state is left untouched.
	ErrInvalidInterval = errors.New("interval duration must be positive")
	// ErrInvalidDotDashBoundary indicates the boundary ratio must be positive
	ErrInvalidDotDashBoundary = errors.New("dot/dash boundary ratio must be positive")
	// ErrInvalidGapFloor indicates the gap floor ratio must be positive
	ErrInvalidGapFloor = errors.New("gap floor ratio must be positive")
	// ErrInvalidWordGapBoundary indicates the word gap boundary must exceed the gap floor
	ErrInvalidWordGapBoundary = errors.New("word gap boundary must exceed gap floor")
	// ErrInvalidTerminationGapCount indicates the termination count must be positive
	ErrInvalidTerminationGapCount = errors.New("termination gap count must be positive")
)

// Outcome is the classifier's per-interval verdict. The core never loops
// itself; the driving loop stops when it sees OutcomeTerminate.
type Outcome int

const (
	// OutcomeContinue: keep feeding samples.
	OutcomeContinue Outcome = iota
	// OutcomeCalibrating: the interval was consumed to set the unit
	// duration; no symbol was emitted. Informational, not an error.
	OutcomeCalibrating
	// OutcomeTerminate: the end-of-message silence was recognized.
	OutcomeTerminate
)

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeCalibrating:
		return "calibrating"
	case OutcomeTerminate:
		return "terminate"
	default:
		return "continue"
	}
}

// TimingReference holds the calibrated unit duration for one decoding
// session. It is set exactly once, from the first decodable interval, and
// is immutable until Reset. Deliberately not adaptive: the whole run is
// classified against the very first signal (known limitation; rolling
// calibration can replace this type without touching the classifier).
type TimingReference struct {
	unit time.Duration
}

// Calibrated reports whether the unit duration has been set.
func (r TimingReference) Calibrated() bool {
	return r.unit > 0
}

// Unit returns the calibrated unit duration (zero until calibrated).
func (r TimingReference) Unit() time.Duration {
	return r.unit
}

// Calibrate sets the unit duration. Once set, further calls are no-ops.
func (r *TimingReference) Calibrate(d time.Duration) {
	if r.unit == 0 && d > 0 {
		r.unit = d
	}
}

// Reset clears the reference for a new session.
func (r *TimingReference) Reset() {
	r.unit = 0
}

// ClassifierConfig holds the tunable timing ratios.
// All values come from the application config file.
type ClassifierConfig struct {
	// DotDashBoundary is the dot/dash cutoff in unit durations (from config: dot_dash_boundary)
	DotDashBoundary float64
	// GapFloor is the minimum gap length, in units, that emits a symbol (from config: gap_floor)
	GapFloor float64
	// WordGapBoundary is the letter/word gap cutoff in unit durations (from config: word_gap_boundary)
	WordGapBoundary float64
	// TerminationGapCount is the trailing gap run ending the session (from config: termination_gap_count)
	TerminationGapCount int
}

// DefaultClassifierConfig returns the reference timing policy.
func DefaultClassifierConfig() ClassifierConfig {
	return ClassifierConfig{
		DotDashBoundary:     DefaultDotDashBoundary,
		GapFloor:            DefaultGapFloor,
		WordGapBoundary:     DefaultWordGapBoundary,
		TerminationGapCount: DefaultTerminationGapCount,
	}
}

// Classifier turns color intervals into Morse symbols against a calibrated
// timing reference. It holds only configuration; all mutable session state
// (reference, symbol stream) is passed in by the owner, so one classifier
// can serve any number of sequential sessions.
type Classifier struct {
	config ClassifierConfig
}

// NewClassifier validates the timing policy and returns a classifier.
func NewClassifier(cfg ClassifierConfig) (*Classifier, error) {
	if cfg.DotDashBoundary <= 0 {
		return nil, ErrInvalidDotDashBoundary
	}
	if cfg.GapFloor <= 0 {
		return nil, ErrInvalidGapFloor
	}
	if cfg.WordGapBoundary <= cfg.GapFloor {
		return nil, ErrInvalidWordGapBoundary
	}
	if cfg.TerminationGapCount <= 0 {
		return nil, ErrInvalidTerminationGapCount
	}
	return &Classifier{config: cfg}, nil
}

// Config returns the active timing policy.
func (c *Classifier) Config() ClassifierConfig {
	return c.config
}

// Classify consumes one interval, mutating ref (at most once per session)
// and symbols (whenever the interval yields symbols).
//
// Intervals of non-decodable colors pass through untouched: they exist for
// the steering and obstacle collaborators and must not perturb timing
// state. The first decodable interval is consumed for calibration. After
// that, marks split into Dot/Dash on DotDashBoundary and gaps map to
// letter or word boundaries by their rounded unit ratio.
func (c *Classifier) Classify(iv signal.Interval, ref *TimingReference, symbols *SymbolStream) (Outcome, error) {
	if !iv.Color.Decodable() {
		return OutcomeContinue, nil
	}
	if iv.Duration <= 0 {
		return OutcomeContinue, fmt.Errorf("%w: %s for %v", ErrInvalidInterval, iv.Color, iv.Duration)
	}

	if !ref.Calibrated() {
		ref.Calibrate(iv.Duration)
		return OutcomeCalibrating, nil
	}

	unit := float64(ref.Unit())
	ratio := float64(iv.Duration) / unit

	switch iv.Color {
	case signal.SignalMark:
		if ratio < c.config.DotDashBoundary {
			symbols.Append(Dot)
		} else {
			symbols.Append(Dash)
		}

	case signal.SignalGap:
		if ratio < c.config.GapFloor {
			// Intra-letter spacing between dots and dashes, already
			// implied by the mark boundaries.
			break
		}
		gapUnits := int(math.Round(ratio))
		if ratio >= c.config.WordGapBoundary {
			symbols.Append(WordGap)
			// A silence as long as the termination run is the
			// end-of-message marker even though the word-gap branch
			// collapsed it into a single symbol.
			if gapUnits >= c.config.TerminationGapCount {
				return OutcomeTerminate, nil
			}
			break
		}
		for i := 0; i < gapUnits; i++ {
			symbols.Append(SymbolGap)
		}
	}

	if symbols.TrailingSymbolGaps() >= c.config.TerminationGapCount {
		return OutcomeTerminate, nil
	}
	return OutcomeContinue, nil
}

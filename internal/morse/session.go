// internal/morse/session.go
package morse

import "github.com/jwhitmore/colorcw/internal/signal"

// State is the decoding session's lifecycle phase.
type State int

const (
	// StateCalibrating: waiting for the first decodable interval to set
	// the unit duration.
	StateCalibrating State = iota
	// StateDecoding: unit duration set, symbols accumulating.
	StateDecoding
	// StateTerminated: end-of-message silence seen or externally stopped.
	StateTerminated
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateCalibrating:
		return "calibrating"
	case StateDecoding:
		return "decoding"
	default:
		return "terminated"
	}
}

// Session owns all mutable state for one decoding run: the segmenter, the
// timing reference and the symbol stream. It is strictly single-owner and
// synchronous. The driving loop feeds one sample at a time and stops when
// Feed reports OutcomeTerminate (or when an external event, such as the
// obstacle detector, calls Stop between samples).
type Session struct {
	classifier *Classifier
	segmenter  *signal.Segmenter
	reference  TimingReference
	symbols    SymbolStream
	state      State
}

// NewSession creates a fresh session driven by the given classifier.
func NewSession(classifier *Classifier) *Session {
	return &Session{
		classifier: classifier,
		segmenter:  signal.NewSegmenter(),
	}
}

// Feed pushes one sample through the segmenter and, when a color run
// closes, through the classifier. A terminated session ignores further
// samples and keeps reporting OutcomeTerminate.
//
// An ErrInvalidInterval from the classifier is returned to the caller with
// session state intact; skipping the sample and feeding the next one is
// the expected recovery.
func (s *Session) Feed(sample signal.ColorSample) (Outcome, error) {
	if s.state == StateTerminated {
		return OutcomeTerminate, nil
	}

	iv, ok := s.segmenter.Observe(sample)
	if !ok {
		return OutcomeContinue, nil
	}

	outcome, err := s.classifier.Classify(iv, &s.reference, &s.symbols)
	if err != nil {
		return outcome, err
	}

	switch {
	case outcome == OutcomeTerminate:
		s.state = StateTerminated
	case s.state == StateCalibrating && s.reference.Calibrated():
		s.state = StateDecoding
	}
	return outcome, nil
}

// Stop ends the session early, e.g. on an obstacle event. The partial
// symbol stream remains translatable.
func (s *Session) Stop() {
	s.state = StateTerminated
}

// State returns the session's lifecycle phase.
func (s *Session) State() State {
	return s.state
}

// Reference returns the session's timing reference.
func (s *Session) Reference() TimingReference {
	return s.reference
}

// Symbols returns a copy of the accumulated symbol stream.
func (s *Session) Symbols() SymbolStream {
	out := make(SymbolStream, len(s.symbols))
	copy(out, s.symbols)
	return out
}

// Message translates the accumulated stream through the standard table.
// Valid at any point, including after an early Stop.
func (s *Session) Message() string {
	return Translate(s.symbols, StandardTable)
}

// Reset clears all session state so the next first signal re-calibrates.
func (s *Session) Reset() {
	s.segmenter.Reset()
	s.reference.Reset()
	s.symbols = s.symbols[:0]
	s.state = StateCalibrating
}

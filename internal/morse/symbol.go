// internal/morse/symbol.go
// Package morse classifies color intervals into Morse symbols and
// translates the accumulated symbol stream into text.
package morse

import "strings"

// Symbol is one atomic unit of the decoded stream. The rune values match
// the on-wire notation used by the translator: '.' and '-' for the marks,
// ' ' for a letter boundary, '|' for a word boundary.
type Symbol rune

const (
	Dot       Symbol = '.'
	Dash      Symbol = '-'
	SymbolGap Symbol = ' '
	WordGap   Symbol = '|'
)

// SymbolStream is the ordered, append-only sequence of symbols accumulated
// during one decoding session. It is owned exclusively by the classifier
// while decoding and handed to the translator once the session terminates.
type SymbolStream []Symbol

// Append adds symbols to the end of the stream.
func (s *SymbolStream) Append(syms ...Symbol) {
	*s = append(*s, syms...)
}

// String returns the compact notation, e.g. ".- -... |".
func (s SymbolStream) String() string {
	var b strings.Builder
	b.Grow(len(s))
	for _, sym := range s {
		b.WriteRune(rune(sym))
	}
	return b.String()
}

// Spoken returns the stream in the announce-friendly long form the robot
// speaks before reading out the translation ("dot dash word gap ...").
func (s SymbolStream) Spoken() string {
	parts := make([]string, 0, len(s))
	for _, sym := range s {
		switch sym {
		case Dot:
			parts = append(parts, "dot")
		case Dash:
			parts = append(parts, "dash")
		case SymbolGap:
			parts = append(parts, "gap")
		case WordGap:
			parts = append(parts, "word gap")
		}
	}
	return strings.Join(parts, " ")
}

// TrailingSymbolGaps returns the length of the trailing run of SymbolGap
// symbols. The classifier uses it to detect the end-of-message silence.
func (s SymbolStream) TrailingSymbolGaps() int {
	n := 0
	for i := len(s) - 1; i >= 0 && s[i] == SymbolGap; i-- {
		n++
	}
	return n
}

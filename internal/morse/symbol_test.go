package morse

import "testing"

func TestSymbolStream_String(t *testing.T) {
	s := SymbolStream{Dot, Dash, SymbolGap, Dash, WordGap, Dot}
	if got := s.String(); got != ".- -|." {
		t.Errorf("String() = %q, want %q", got, ".- -|.")
	}
}

func TestSymbolStream_Spoken(t *testing.T) {
	s := SymbolStream{Dot, Dash, SymbolGap, WordGap}
	want := "dot dash gap word gap"
	if got := s.Spoken(); got != want {
		t.Errorf("Spoken() = %q, want %q", got, want)
	}
}

func TestSymbolStream_TrailingSymbolGaps(t *testing.T) {
	tests := []struct {
		name   string
		stream SymbolStream
		want   int
	}{
		{"empty", SymbolStream{}, 0},
		{"no trailing gaps", SymbolStream{Dot, Dash}, 0},
		{"run broken by a mark", SymbolStream{SymbolGap, SymbolGap, Dot}, 0},
		{"run broken by a word gap", SymbolStream{SymbolGap, WordGap, SymbolGap}, 1},
		{"all gaps", SymbolStream{SymbolGap, SymbolGap, SymbolGap}, 3},
		{"trailing run after marks", SymbolStream{Dot, SymbolGap, SymbolGap}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.stream.TrailingSymbolGaps(); got != tt.want {
				t.Errorf("TrailingSymbolGaps() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestSymbolStream_Append(t *testing.T) {
	var s SymbolStream
	s.Append(Dot)
	s.Append(Dash, SymbolGap)
	if s.String() != ".- " {
		t.Errorf("stream = %q, want %q", s.String(), ".- ")
	}
}

package morse

import "testing"

// streamOf builds a SymbolStream from its compact notation.
func streamOf(s string) SymbolStream {
	out := make(SymbolStream, 0, len(s))
	for _, r := range s {
		out = append(out, Symbol(r))
	}
	return out
}

func TestTranslate_SingleLetters(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{".-", "A"},
		{"--.", "G"},
		{"...", "S"},
		{".", "E"},
		{"-", "T"},
		{"-----", "0"},
		{"----.", "9"},
	}

	for _, tt := range tests {
		if got := Translate(streamOf(tt.code), StandardTable); got != tt.want {
			t.Errorf("Translate(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}

func TestTranslate_WordsAndLetters(t *testing.T) {
	tests := []struct {
		name   string
		stream string
		want   string
	}{
		{"two letters", "... ---", "SO"},
		{"two words", "... ---|... ---", "SO SO"},
		{"hi there", ".... ..|- .... . .-. .", "HI THERE"},
		{"empty stream", "", ""},
		{"only gaps", "   ", ""},
		{"trailing word gap trimmed", "... ---|", "SO"},
		{"leading gap trimmed", " ...", "S"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Translate(streamOf(tt.stream), StandardTable); got != tt.want {
				t.Errorf("Translate(%q) = %q, want %q", tt.stream, got, tt.want)
			}
		})
	}
}

func TestTranslate_UnknownCodeDegradesGracefully(t *testing.T) {
	// "......" is not a letter; the surrounding message must survive.
	got := Translate(streamOf("... ...... ---"), StandardTable)
	if got != "SO" {
		t.Errorf("Translate() = %q, want %q", got, "SO")
	}
}

func TestTranslate_IsPure(t *testing.T) {
	stream := streamOf(".... ..|- .... . .-. .")
	first := Translate(stream, StandardTable)
	second := Translate(stream, StandardTable)
	if first != second {
		t.Errorf("repeated translation differs: %q vs %q", first, second)
	}
}

func TestTable_Code(t *testing.T) {
	tests := []struct {
		ch     rune
		want   string
		wantOK bool
	}{
		{'A', ".-", true},
		{'a', ".-", true},
		{'5', ".....", true},
		{'#', "", false},
	}

	for _, tt := range tests {
		got, ok := StandardTable.Code(tt.ch)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("Code(%q) = %q, %v, want %q, %v", tt.ch, got, ok, tt.want, tt.wantOK)
		}
	}
}

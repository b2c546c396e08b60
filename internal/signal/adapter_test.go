package signal

import "testing"

func TestMapRawColor(t *testing.T) {
	tests := []struct {
		name string
		code int
		want ColorClass
	}{
		{"red is the mark lane", RawRed, SignalMark},
		{"yellow aliases to red", RawYellow, SignalMark},
		{"brown aliases to red", RawBrown, SignalMark},
		{"white is the gap lane", RawWhite, SignalGap},
		{"green steers", RawGreen, SteeringHint},
		{"black steers", RawBlack, SteeringHint},
		{"no color is background", RawNoColor, Background},
		{"blue is background", RawBlue, Background},
		{"out of range high", 42, Ignored},
		{"out of range negative", -1, Ignored},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MapRawColor(tt.code); got != tt.want {
				t.Errorf("MapRawColor(%d) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

// The aliasing invariant the track depends on: all three mark-ish reads
// land on the same class so a misread never splits a mark interval.
func TestMapRawColor_AliasesAgree(t *testing.T) {
	red := MapRawColor(RawRed)
	if MapRawColor(RawYellow) != red || MapRawColor(RawBrown) != red {
		t.Error("yellow/brown must map to the same class as red")
	}
}

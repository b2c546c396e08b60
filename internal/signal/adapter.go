// internal/signal/adapter.go
package signal

// Raw ev3dev color-sensor codes as reported over the sensor bridge.
const (
	RawNoColor = 0
	RawBlack   = 1
	RawBlue    = 2
	RawGreen   = 3
	RawYellow  = 4
	RawRed     = 5
	RawWhite   = 6
	RawBrown   = 7
)

// MapRawColor maps a raw sensor code onto the shared ColorClass enumeration.
//
// Yellow and brown are aliased to the mark class: on a glossy track the
// sensor frequently misreads the red signal lane as either, and treating
// them as red keeps the interval stream contiguous. Green and black are
// steering cues for the heading controller and carry no timing meaning.
// Codes outside the known range map to Ignored so that a glitching sensor
// can never perturb calibration.
func MapRawColor(code int) ColorClass {
	switch code {
	case RawRed, RawYellow, RawBrown:
		return SignalMark
	case RawWhite:
		return SignalGap
	case RawGreen, RawBlack:
		return SteeringHint
	case RawNoColor, RawBlue:
		return Background
	default:
		return Ignored
	}
}

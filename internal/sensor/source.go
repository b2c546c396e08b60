// internal/sensor/source.go
// Package sensor provides color-sample sources: the live serial bridge to
// the robot's color sensor and an offline replay source for recorded runs.
package sensor

import (
	"context"

	"github.com/jwhitmore/colorcw/internal/signal"
)

// Source delivers mapped color samples to the decoding loop. The channel
// closes when the underlying input ends or the context is cancelled.
type Source interface {
	// Samples returns the channel the source delivers on.
	Samples() <-chan signal.ColorSample
	// Start begins delivery. Delivery stops when ctx is cancelled.
	Start(ctx context.Context) error
	// Close releases the underlying input.
	Close() error
}

// internal/sensor/replay.go
package sensor

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/jwhitmore/colorcw/internal/signal"
)

// ReplaySource streams a recorded run from a CSV input. Each line is
// "elapsed_ms,color_code"; blank lines and lines starting with '#' are
// skipped. The recorded elapsed offsets are applied to a fixed base
// instant, so interval durations reproduce the recording exactly without
// the source having to sleep between samples.
type ReplaySource struct {
	r       io.Reader
	closer  io.Closer
	name    string
	running bool
	mu      sync.Mutex

	samples chan signal.ColorSample
}

// NewReplaySource reads recorded samples from r. name is used in errors.
func NewReplaySource(r io.Reader, name string) *ReplaySource {
	return &ReplaySource{
		r:       r,
		name:    name,
		samples: make(chan signal.ColorSample, 64),
	}
}

// OpenReplayFile opens a recorded run from a CSV file.
func OpenReplayFile(path string) (*ReplaySource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open replay file: %w", err)
	}
	src := NewReplaySource(f, path)
	src.closer = f
	return src, nil
}

// Samples returns the delivery channel.
func (s *ReplaySource) Samples() <-chan signal.ColorSample {
	return s.samples
}

// Start launches the reader goroutine. The sample channel closes at EOF,
// on a malformed line, or when ctx is cancelled.
func (s *ReplaySource) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	s.mu.Unlock()

	base := time.Now()

	go func() {
		defer close(s.samples)

		scanner := bufio.NewScanner(s.r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" || strings.HasPrefix(line, "#") {
				continue
			}

			sample, err := parseReplayLine(line, base)
			if err != nil {
				// A recording is a static artifact: a malformed line
				// means the file is broken, stop rather than skip.
				return
			}

			select {
			case s.samples <- sample:
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Close closes the underlying file, if the source owns one.
func (s *ReplaySource) Close() error {
	if s.closer != nil {
		return s.closer.Close()
	}
	return nil
}

func parseReplayLine(line string, base time.Time) (signal.ColorSample, error) {
	elapsedField, codeField, found := strings.Cut(line, ",")
	if !found {
		return signal.ColorSample{}, fmt.Errorf("malformed replay line %q", line)
	}
	elapsedMs, err := strconv.ParseFloat(strings.TrimSpace(elapsedField), 64)
	if err != nil {
		return signal.ColorSample{}, fmt.Errorf("bad elapsed value in %q: %w", line, err)
	}
	code, err := strconv.Atoi(strings.TrimSpace(codeField))
	if err != nil {
		return signal.ColorSample{}, fmt.Errorf("bad color code in %q: %w", line, err)
	}

	return signal.ColorSample{
		Color:     signal.MapRawColor(code),
		Timestamp: base.Add(time.Duration(elapsedMs * float64(time.Millisecond))),
	}, nil
}

// internal/sensor/serial.go
package sensor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/tarm/serial"

	"github.com/jwhitmore/colorcw/internal/recovery"
	"github.com/jwhitmore/colorcw/internal/signal"
)

var (
	ErrNotOpen        = errors.New("serial source not open")
	ErrAlreadyRunning = errors.New("serial source already running")
)

// SerialPort is the subset of the serial connection the source needs.
// Declared as an interface so tests can substitute an in-memory pipe.
type SerialPort interface {
	io.ReadWriteCloser
}

// SerialConfig holds the sensor bridge settings.
type SerialConfig struct {
	// Port is the device path, e.g. /dev/ttyACM0 (from config: serial_port)
	Port string
	// Baud is the line rate (from config: serial_baud)
	Baud int
	// ReadTimeout bounds each read so cancellation is honored promptly
	ReadTimeout time.Duration
}

// DefaultSerialConfig returns settings matching the ev3dev bridge script.
func DefaultSerialConfig() SerialConfig {
	return SerialConfig{
		Port:        "/dev/ttyACM0",
		Baud:        115200,
		ReadTimeout: 500 * time.Millisecond,
	}
}

// SerialSource reads raw color codes, one ASCII integer per line, from a
// serial-attached sensor bridge and emits mapped, receipt-timestamped
// samples. Unparseable lines are dropped, not fatal: a noisy line level
// during robot startup routinely corrupts the first few reads.
type SerialSource struct {
	config  SerialConfig
	conn    SerialPort
	running bool
	mu      sync.Mutex

	samples chan signal.ColorSample
}

// NewSerialSource creates an unopened serial source.
func NewSerialSource(cfg SerialConfig) *SerialSource {
	return &SerialSource{
		config:  cfg,
		samples: make(chan signal.ColorSample, 64),
	}
}

// Open connects to the configured port.
func (s *SerialSource) Open() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, err := serial.OpenPort(&serial.Config{
		Name:        s.config.Port,
		Baud:        s.config.Baud,
		ReadTimeout: s.config.ReadTimeout,
	})
	if err != nil {
		return fmt.Errorf("open serial port %s: %w", s.config.Port, err)
	}
	s.conn = conn
	return nil
}

// OpenWith attaches an already-open port, for tests and alternate bridges.
func (s *SerialSource) OpenWith(conn SerialPort) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conn = conn
}

// Samples returns the delivery channel.
func (s *SerialSource) Samples() <-chan signal.ColorSample {
	return s.samples
}

// Start launches the reader goroutine. The sample channel closes when the
// port reaches EOF or ctx is cancelled.
func (s *SerialSource) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.conn == nil {
		s.mu.Unlock()
		return ErrNotOpen
	}
	if s.running {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.running = true
	conn := s.conn
	s.mu.Unlock()

	go func() {
		defer recovery.HandlePanic()
		defer close(s.samples)

		scanner := bufio.NewScanner(conn)
		for scanner.Scan() {
			if ctx.Err() != nil {
				return
			}
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			code, err := strconv.Atoi(line)
			if err != nil {
				continue
			}
			sample := signal.ColorSample{
				Color:     signal.MapRawColor(code),
				Timestamp: time.Now(),
			}
			select {
			case s.samples <- sample:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Close the port on cancellation to unblock a pending read.
	go func() {
		<-ctx.Done()
		_ = s.Close()
	}()

	return nil
}

// Close closes the underlying port.
func (s *SerialSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil {
		return nil
	}
	err := s.conn.Close()
	s.conn = nil
	return err
}

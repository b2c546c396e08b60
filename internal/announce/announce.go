// internal/announce/announce.go
// Package announce renders the decoded message as a CW sidetone on an
// output audio device, taking over the speaker-announcement duty of the
// original robot.
package announce

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/gen2brain/malgo"

	"github.com/jwhitmore/colorcw/internal/morse"
)

var (
	ErrNotInitialized = errors.New("announcer not initialized")
	ErrAlreadyPlaying = errors.New("announcement already playing")
	// ErrInvalidToneFrequency indicates tone frequency must be positive and below Nyquist
	ErrInvalidToneFrequency = errors.New("tone frequency must be positive and below half the sample rate")
	// ErrInvalidWPM indicates WPM must be positive
	ErrInvalidWPM = errors.New("WPM must be positive")
	// ErrInvalidSampleRate indicates sample rate must be positive
	ErrInvalidSampleRate = errors.New("sample rate must be positive")
)

// Element timing in dit units (ITU): dah = 3 dits, one dit between
// elements, three between letters, seven between words.
const (
	dahUnits       = 3
	charSpaceUnits = 3
	wordSpaceUnits = 7
	msPerMinute    = 60000.0
	ditsPerWord    = 50.0 // "PARIS"
	toneAmplitude  = 0.6
)

// Config holds sidetone rendering and device settings.
type Config struct {
	// DeviceIndex selects the playback device, -1 for default (from config: announce_device_index)
	DeviceIndex int
	// SampleRate in Hz (from config: sample_rate)
	SampleRate uint32
	// ToneFrequency of the sidetone in Hz (from config: tone_frequency)
	ToneFrequency float64
	// WPM sets element timing via the PARIS rule (from config: wpm)
	WPM int
}

// DefaultConfig returns sensible defaults for announcing a short message.
func DefaultConfig() Config {
	return Config{
		DeviceIndex:   -1,
		SampleRate:    48000,
		ToneFrequency: 600,
		WPM:           15,
	}
}

// Announcer plays rendered sidetone audio through a malgo playback device.
type Announcer struct {
	config  Config
	ctx     *malgo.AllocatedContext
	playing bool
	mu      sync.Mutex
}

// New validates the configuration and returns an announcer.
func New(cfg Config) (*Announcer, error) {
	if cfg.SampleRate == 0 {
		return nil, ErrInvalidSampleRate
	}
	if cfg.ToneFrequency <= 0 || cfg.ToneFrequency >= float64(cfg.SampleRate)/2 {
		return nil, ErrInvalidToneFrequency
	}
	if cfg.WPM <= 0 {
		return nil, ErrInvalidWPM
	}
	return &Announcer{config: cfg}, nil
}

// Init initializes the audio backend.
func (a *Announcer) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	ctx, err := malgo.InitContext(nil, malgo.ContextConfig{}, nil)
	if err != nil {
		return fmt.Errorf("init audio context: %w", err)
	}
	a.ctx = ctx
	return nil
}

// ListDevices returns the available playback devices.
func (a *Announcer) ListDevices() ([]malgo.DeviceInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ctx == nil {
		return nil, ErrNotInitialized
	}
	infos, err := a.ctx.Devices(malgo.Playback)
	if err != nil {
		return nil, fmt.Errorf("enumerate devices: %w", err)
	}
	return infos, nil
}

// DitDuration returns the dit length in samples for the configured WPM.
func (a *Announcer) DitDuration() int {
	ditMs := msPerMinute / (float64(a.config.WPM) * ditsPerWord)
	return int(ditMs * float64(a.config.SampleRate) / 1000.0)
}

// RenderMessage renders text as sidetone samples using the same table the
// translator decodes with. Characters without a code contribute only
// their letter spacing.
func (a *Announcer) RenderMessage(msg string, table morse.Table) []float32 {
	dit := a.DitDuration()
	var out []float32

	appendTone := func(units int) {
		n := units * dit
		step := 2 * math.Pi * a.config.ToneFrequency / float64(a.config.SampleRate)
		for i := 0; i < n; i++ {
			out = append(out, float32(toneAmplitude*math.Sin(step*float64(i))))
		}
	}
	appendSilence := func(units int) {
		out = append(out, make([]float32, units*dit)...)
	}

	for _, ch := range msg {
		if ch == ' ' {
			// Letter spacing before the space already contributed 3 units.
			appendSilence(wordSpaceUnits - charSpaceUnits)
			continue
		}
		code, ok := table.Code(ch)
		if !ok {
			appendSilence(charSpaceUnits)
			continue
		}
		for i, sym := range code {
			if i > 0 {
				appendSilence(1)
			}
			if sym == '-' {
				appendTone(dahUnits)
			} else {
				appendTone(1)
			}
		}
		appendSilence(charSpaceUnits)
	}

	return out
}

// Play renders msg and plays it to completion, or until ctx is cancelled.
func (a *Announcer) Play(ctx context.Context, msg string, table morse.Table) error {
	a.mu.Lock()
	if a.ctx == nil {
		a.mu.Unlock()
		return ErrNotInitialized
	}
	if a.playing {
		a.mu.Unlock()
		return ErrAlreadyPlaying
	}
	a.playing = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.playing = false
		a.mu.Unlock()
	}()

	samples := a.RenderMessage(msg, table)
	if len(samples) == 0 {
		return nil
	}

	deviceConfig := malgo.DefaultDeviceConfig(malgo.Playback)
	deviceConfig.SampleRate = a.config.SampleRate
	deviceConfig.Playback.Format = malgo.FormatF32
	deviceConfig.Playback.Channels = 1

	if a.config.DeviceIndex >= 0 {
		devices, err := a.ListDevices()
		if err != nil {
			return err
		}
		if a.config.DeviceIndex >= len(devices) {
			return fmt.Errorf("device index %d out of range (have %d devices)",
				a.config.DeviceIndex, len(devices))
		}
		deviceConfig.Playback.DeviceID = devices[a.config.DeviceIndex].ID.Pointer()
	}

	done := make(chan struct{})
	pos := 0

	onSendFrames := func(outputSamples, inputSamples []byte, frameCount uint32) {
		remaining := samples[pos:]
		n := int(frameCount)
		if n > len(remaining) {
			n = len(remaining)
		}
		float32ToBytes(remaining[:n], outputSamples)
		pos += n
		if pos >= len(samples) {
			select {
			case <-done:
			default:
				close(done)
			}
		}
	}

	device, err := malgo.InitDevice(a.ctx.Context, deviceConfig, malgo.DeviceCallbacks{
		Data: onSendFrames,
	})
	if err != nil {
		return fmt.Errorf("init playback device: %w", err)
	}
	defer device.Uninit()

	if err := device.Start(); err != nil {
		return fmt.Errorf("start playback device: %w", err)
	}

	select {
	case <-done:
	case <-ctx.Done():
		return ctx.Err()
	}
	return device.Stop()
}

// Close releases all audio resources.
func (a *Announcer) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.ctx != nil {
		if err := a.ctx.Uninit(); err != nil {
			return fmt.Errorf("uninit context: %w", err)
		}
		a.ctx.Free()
		a.ctx = nil
	}
	return nil
}

// float32ToBytes writes samples into dst as little-endian IEEE 754.
func float32ToBytes(samples []float32, dst []byte) {
	for i, s := range samples {
		bits := math.Float32bits(s)
		offset := i * 4
		if offset+3 >= len(dst) {
			return
		}
		dst[offset] = byte(bits)
		dst[offset+1] = byte(bits >> 8)
		dst[offset+2] = byte(bits >> 16)
		dst[offset+3] = byte(bits >> 24)
	}
}

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// validSettings returns settings matching the shipped defaults
func validSettings() Settings {
	return Settings{
		SerialPort:          "/dev/ttyACM0",
		SerialBaud:          115200,
		Input:               "",
		SamplePeriodMs:      10,
		DotDashBoundary:     1.0,
		GapFloor:            1.0,
		WordGapBoundary:     3.0,
		TerminationGapCount: 7,
		Announce:            false,
		ToneFrequency:       600,
		SampleRate:          48000,
		WPM:                 15,
		AnnounceDeviceIndex: -1,
		Debug:               false,
	}
}

func TestValidate_Defaults(t *testing.T) {
	s := validSettings()
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() on defaults error = %v", err)
	}
}

func TestValidate_InputInsteadOfSerial(t *testing.T) {
	s := validSettings()
	s.SerialPort = ""
	s.Input = "run.csv"
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Settings)
		errorHas string
	}{
		{"no source at all", func(s *Settings) { s.SerialPort = ""; s.Input = "" }, "serial_port or input"},
		{"baud too low", func(s *Settings) { s.SerialBaud = 110 }, "serial_baud"},
		{"baud too high", func(s *Settings) { s.SerialBaud = 2000000 }, "serial_baud"},
		{"sample period zero", func(s *Settings) { s.SamplePeriodMs = 0 }, "sample_period_ms"},
		{"sample period too long", func(s *Settings) { s.SamplePeriodMs = 5000 }, "sample_period_ms"},
		{"dot/dash boundary zero", func(s *Settings) { s.DotDashBoundary = 0 }, "dot_dash_boundary"},
		{"gap floor negative", func(s *Settings) { s.GapFloor = -1 }, "gap_floor"},
		{"word gap below floor", func(s *Settings) { s.WordGapBoundary = 0.5 }, "word_gap_boundary"},
		{"termination count zero", func(s *Settings) { s.TerminationGapCount = 0 }, "termination_gap_count"},
		{"termination count huge", func(s *Settings) { s.TerminationGapCount = 99 }, "termination_gap_count"},
		{"sample rate too low", func(s *Settings) { s.SampleRate = 4000 }, "sample_rate"},
		{"tone too low", func(s *Settings) { s.ToneFrequency = 50 }, "tone_frequency"},
		{"tone too high", func(s *Settings) { s.ToneFrequency = 5000 }, "tone_frequency"},
		{"wpm too low", func(s *Settings) { s.WPM = 2 }, "wpm"},
		{"wpm too high", func(s *Settings) { s.WPM = 80 }, "wpm"},
		{"tone above Nyquist", func(s *Settings) { s.SampleRate = 8000; s.ToneFrequency = 5000 }, "Nyquist"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.mutate(&s)
			err := s.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if tt.errorHas != "" && !strings.Contains(err.Error(), tt.errorHas) {
				t.Errorf("error %q does not mention %q", err, tt.errorHas)
			}
		})
	}
}

func TestValidate_CollectsMultipleErrors(t *testing.T) {
	s := validSettings()
	s.SerialBaud = 0
	s.WPM = 0
	s.DotDashBoundary = 0

	err := s.Validate()
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	for _, want := range []string{"serial_baud", "wpm", "dot_dash_boundary"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("joined error missing %q: %v", want, err)
		}
	}
}

func TestInit_CreatesDefaultConfig(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	// Point both the CWD and the XDG config home at empty temp dirs so
	// Init has to create the default file.
	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	workDir := t.TempDir()
	if err := os.Chdir(workDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	created := filepath.Join(tmp, AppName, "config.yaml")
	if _, err := os.Stat(created); err != nil {
		t.Fatalf("default config not created at %s: %v", created, err)
	}

	settings, err := Get()
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if settings.SerialBaud != 115200 {
		t.Errorf("SerialBaud = %d, want 115200", settings.SerialBaud)
	}
	if settings.TerminationGapCount != 7 {
		t.Errorf("TerminationGapCount = %d, want 7", settings.TerminationGapCount)
	}
}

func TestGet_RejectsInvalidFile(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	tmp := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmp)

	configDir := filepath.Join(tmp, AppName)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	bad := "wpm: 500\n"
	if err := os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	cwd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	workDir := t.TempDir()
	if err := os.Chdir(workDir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = os.Chdir(cwd) })

	if err := Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	if _, err := Get(); err == nil {
		t.Error("Get() = nil error for wpm: 500, want validation failure")
	}
}

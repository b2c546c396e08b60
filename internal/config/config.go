// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	AppName       = "colorcw"
	ConfigType    = "yaml"
	DefaultConfig = `# colorcw configuration

# Sensor bridge
serial_port: "/dev/ttyACM0" # serial device the color-sensor bridge prints to
serial_baud: 115200         # line rate of the bridge
input: ""                   # path to a recorded run (CSV); empty = live serial
sample_period_ms: 10        # nominal sensor polling period (sanity bound only)

# Timing classification
# All three ratios are relative to the calibrated unit duration, which is
# taken from the first mark or gap interval of the run.
dot_dash_boundary: 1.0      # mark shorter than this many units = dot, else dash
gap_floor: 1.0              # gaps below this many units emit no symbol
word_gap_boundary: 3.0      # gaps at or above this many units are word gaps
termination_gap_count: 7    # trailing letter gaps that end the message

# Announcement (CW sidetone of the decoded message)
announce: false             # play the decoded message as a sidetone
tone_frequency: 600         # sidetone frequency in Hz
sample_rate: 48000          # playback sample rate in Hz
wpm: 15                     # sidetone speed (PARIS rule)
announce_device_index: -1   # -1 for the default playback device

# Output
debug: false                # enable debug logging
`
)

// Settings holds all application configuration
type Settings struct {
	// Sensor bridge
	SerialPort     string `mapstructure:"serial_port"`
	SerialBaud     int    `mapstructure:"serial_baud"`
	Input          string `mapstructure:"input"`
	SamplePeriodMs int    `mapstructure:"sample_period_ms"`

	// Timing classification
	DotDashBoundary     float64 `mapstructure:"dot_dash_boundary"`
	GapFloor            float64 `mapstructure:"gap_floor"`
	WordGapBoundary     float64 `mapstructure:"word_gap_boundary"`
	TerminationGapCount int     `mapstructure:"termination_gap_count"`

	// Announcement
	Announce            bool    `mapstructure:"announce"`
	ToneFrequency       float64 `mapstructure:"tone_frequency"`
	SampleRate          int     `mapstructure:"sample_rate"`
	WPM                 int     `mapstructure:"wpm"`
	AnnounceDeviceIndex int     `mapstructure:"announce_device_index"`

	// Output
	Debug bool `mapstructure:"debug"`
}

// Init initializes Viper with defaults and config file.
// Config file search order: current directory, then ~/.config/colorcw/
func Init() error {
	// Set defaults
	viper.SetDefault("serial_port", "/dev/ttyACM0")
	viper.SetDefault("serial_baud", 115200)
	viper.SetDefault("input", "")
	viper.SetDefault("sample_period_ms", 10)
	viper.SetDefault("dot_dash_boundary", 1.0)
	viper.SetDefault("gap_floor", 1.0)
	viper.SetDefault("word_gap_boundary", 3.0)
	viper.SetDefault("termination_gap_count", 7)
	viper.SetDefault("announce", false)
	viper.SetDefault("tone_frequency", 600)
	viper.SetDefault("sample_rate", 48000)
	viper.SetDefault("wpm", 15)
	viper.SetDefault("announce_device_index", -1)
	viper.SetDefault("debug", false)

	// Support both config.yaml and .config.yaml
	viper.SetConfigType(ConfigType)

	// Priority order: current directory first, then XDG config
	viper.AddConfigPath(".")

	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	viper.AddConfigPath(filepath.Join(configDir, AppName))

	// Try .config.yaml first (hidden file), then config.yaml
	viper.SetConfigName(".config")
	if err = viper.ReadInConfig(); err != nil {
		// Try config.yaml as fallback
		viper.SetConfigName("config")
		err = viper.ReadInConfig()
	}

	// Read config file - if not found, create default in XDG config dir
	if err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			// No config found - create default in ~/.config/colorcw/
			xdgConfigPath := filepath.Join(configDir, AppName)
			if err = ensureConfigExists(xdgConfigPath); err != nil {
				return err
			}
			// Read the newly created config
			if err = viper.ReadInConfig(); err != nil {
				return fmt.Errorf("read config: %w", err)
			}
		} else {
			return fmt.Errorf("read config: %w", err)
		}
	}

	return nil
}

func ensureConfigExists(configPath string) error {
	configFile := filepath.Join(configPath, "config.yaml")

	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		if err = os.MkdirAll(configPath, 0755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
		if err = os.WriteFile(configFile, []byte(DefaultConfig), 0644); err != nil {
			return fmt.Errorf("write default config: %w", err)
		}
	}
	return nil
}

// Get returns the current settings
func Get() (*Settings, error) {
	var s Settings
	if err := viper.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &s, nil
}

// Validate checks that all settings are within acceptable ranges
func (s *Settings) Validate() error {
	var errs []error

	// Sensor bridge
	if s.Input == "" && s.SerialPort == "" {
		errs = append(errs, errors.New("one of serial_port or input must be set"))
	}
	if s.SerialBaud < 300 || s.SerialBaud > 921600 {
		errs = append(errs, fmt.Errorf("serial_baud must be between 300 and 921600, got %d", s.SerialBaud))
	}
	if s.SamplePeriodMs < 1 || s.SamplePeriodMs > 1000 {
		errs = append(errs, fmt.Errorf("sample_period_ms must be between 1 and 1000, got %d", s.SamplePeriodMs))
	}

	// Timing classification
	if s.DotDashBoundary <= 0 {
		errs = append(errs, fmt.Errorf("dot_dash_boundary must be positive, got %v", s.DotDashBoundary))
	}
	if s.GapFloor <= 0 {
		errs = append(errs, fmt.Errorf("gap_floor must be positive, got %v", s.GapFloor))
	}
	if s.WordGapBoundary <= s.GapFloor {
		errs = append(errs, fmt.Errorf("word_gap_boundary (%v) must exceed gap_floor (%v)", s.WordGapBoundary, s.GapFloor))
	}
	if s.TerminationGapCount < 1 || s.TerminationGapCount > 50 {
		errs = append(errs, fmt.Errorf("termination_gap_count must be between 1 and 50, got %d", s.TerminationGapCount))
	}

	// Announcement
	if s.SampleRate < 8000 || s.SampleRate > 192000 {
		errs = append(errs, fmt.Errorf("sample_rate must be between 8000 and 192000 Hz, got %d", s.SampleRate))
	}
	if s.ToneFrequency < 100 || s.ToneFrequency > 3000 {
		errs = append(errs, fmt.Errorf("tone_frequency must be between 100 and 3000 Hz, got %v", s.ToneFrequency))
	}
	if s.WPM < 5 || s.WPM > 60 {
		errs = append(errs, fmt.Errorf("wpm must be between 5 and 60, got %d", s.WPM))
	}

	// Nyquist check: tone frequency must be less than half the sample rate
	if s.ToneFrequency >= float64(s.SampleRate)/2 {
		errs = append(errs, fmt.Errorf("tone_frequency (%v Hz) must be less than Nyquist frequency (%v Hz)", s.ToneFrequency, float64(s.SampleRate)/2))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

package cmd

import (
	"testing"

	"github.com/jwhitmore/colorcw/internal/config"
	"github.com/jwhitmore/colorcw/internal/sensor"
)

func TestSerialConfigFromSettings(t *testing.T) {
	settings := &config.Settings{
		SerialPort: "/dev/ttyUSB3",
		SerialBaud: 57600,
	}

	got := serialConfigFromSettings(settings)

	if got.Port != "/dev/ttyUSB3" {
		t.Errorf("Port = %q, want %q", got.Port, "/dev/ttyUSB3")
	}
	if got.Baud != 57600 {
		t.Errorf("Baud = %d, want 57600", got.Baud)
	}
	// Everything not covered by settings keeps the bridge defaults.
	if want := sensor.DefaultSerialConfig().ReadTimeout; got.ReadTimeout != want {
		t.Errorf("ReadTimeout = %v, want default %v", got.ReadTimeout, want)
	}
}

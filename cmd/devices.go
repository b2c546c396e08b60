// cmd/devices.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jwhitmore/colorcw/internal/announce"
	"github.com/jwhitmore/colorcw/internal/config"
)

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List playback devices available for announcements",
	RunE:  runDevices,
}

func init() {
	rootCmd.AddCommand(devicesCmd)
}

func runDevices(cmd *cobra.Command, args []string) error {
	settings, err := config.Get()
	if err != nil {
		return err
	}

	announcer, err := announce.New(announce.Config{
		DeviceIndex:   -1,
		SampleRate:    uint32(settings.SampleRate),
		ToneFrequency: settings.ToneFrequency,
		WPM:           settings.WPM,
	})
	if err != nil {
		return err
	}
	if err := announcer.Init(); err != nil {
		return err
	}
	defer announcer.Close()

	devices, err := announcer.ListDevices()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for i, dev := range devices {
		fmt.Fprintf(out, "%3d: %s\n", i, dev.Name())
	}
	return nil
}

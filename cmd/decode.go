// cmd/decode.go
package cmd

import (
	"context"
	"fmt"
	"os"
	ossignal "os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jwhitmore/colorcw/internal/announce"
	"github.com/jwhitmore/colorcw/internal/config"
	"github.com/jwhitmore/colorcw/internal/log"
	"github.com/jwhitmore/colorcw/internal/morse"
	"github.com/jwhitmore/colorcw/internal/sensor"
)

var decodeCmd = &cobra.Command{
	Use:   "decode",
	Short: "Run a decoding session against the configured sample source",
	Long: `Reads color samples from the serial sensor bridge (or a recorded run
with --input), decodes the Morse message and prints the translated text.`,
	RunE: runDecode,
}

func init() {
	rootCmd.AddCommand(decodeCmd)
}

func runDecode(cmd *cobra.Command, args []string) error {
	settings, err := config.Get()
	if err != nil {
		return err
	}
	if err := log.Init(settings.Debug); err != nil {
		return err
	}
	defer log.Sync()

	classifier, err := morse.NewClassifier(morse.ClassifierConfig{
		DotDashBoundary:     settings.DotDashBoundary,
		GapFloor:            settings.GapFloor,
		WordGapBoundary:     settings.WordGapBoundary,
		TerminationGapCount: settings.TerminationGapCount,
	})
	if err != nil {
		return err
	}
	session := morse.NewSession(classifier)

	ctx, stop := ossignal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	source, err := openSource(settings)
	if err != nil {
		return err
	}
	defer source.Close()

	if err := source.Start(ctx); err != nil {
		return err
	}

	for sample := range source.Samples() {
		outcome, err := session.Feed(sample)
		if err != nil {
			log.Warnf("skipping interval: %v", err)
			continue
		}
		switch outcome {
		case morse.OutcomeCalibrating:
			log.Infof("calibrated unit duration: %v", session.Reference().Unit())
		case morse.OutcomeTerminate:
			log.Infof("end of message detected")
		}
		if outcome == morse.OutcomeTerminate {
			break
		}
	}

	// Sample stream ended or an external stop arrived before the
	// termination silence; the partial stream still translates.
	if session.State() != morse.StateTerminated {
		session.Stop()
	}

	message := session.Message()
	log.Debugf("symbol stream: %s", session.Symbols().Spoken())
	fmt.Fprintln(cmd.OutOrStdout(), message)

	if settings.Announce {
		if err := playAnnouncement(ctx, settings, message); err != nil {
			log.Errorf("announcement failed: %v", err)
		}
	}
	return nil
}

func openSource(settings *config.Settings) (sensor.Source, error) {
	if settings.Input != "" {
		log.Infof("replaying recorded run from %s", settings.Input)
		return sensor.OpenReplayFile(settings.Input)
	}

	log.Infof("reading sensor bridge on %s at %d baud", settings.SerialPort, settings.SerialBaud)
	src := sensor.NewSerialSource(serialConfigFromSettings(settings))
	if err := src.Open(); err != nil {
		return nil, err
	}
	return src, nil
}

// serialConfigFromSettings overlays the configured port and baud on the
// bridge defaults.
func serialConfigFromSettings(settings *config.Settings) sensor.SerialConfig {
	cfg := sensor.DefaultSerialConfig()
	cfg.Port = settings.SerialPort
	cfg.Baud = settings.SerialBaud
	return cfg
}

func playAnnouncement(ctx context.Context, settings *config.Settings, message string) error {
	announcer, err := announce.New(announce.Config{
		DeviceIndex:   settings.AnnounceDeviceIndex,
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

	return announcer.Play(ctx, message, morse.StandardTable)
}

// cmd/root.go
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jwhitmore/colorcw/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "colorcw",
	Short: "Morse code decoder for a color-track line follower",
	Long: `Decodes a Morse message painted along a robot's track from the moving
color sensor's sample stream and translates it into text.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags (override config file)
	rootCmd.PersistentFlags().StringP("port", "p", "/dev/ttyACM0", "serial port of the sensor bridge")
	rootCmd.PersistentFlags().StringP("input", "i", "", "replay a recorded run from a CSV file")
	rootCmd.PersistentFlags().IntP("wpm", "w", 15, "sidetone speed for announcements")
	rootCmd.PersistentFlags().BoolP("announce", "a", false, "play the decoded message as a CW sidetone")
	rootCmd.PersistentFlags().BoolP("debug", "D", false, "enable debug output")

	// Bind flags to viper
	viper.BindPFlag("serial_port", rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag("input", rootCmd.PersistentFlags().Lookup("input"))
	viper.BindPFlag("wpm", rootCmd.PersistentFlags().Lookup("wpm"))
	viper.BindPFlag("announce", rootCmd.PersistentFlags().Lookup("announce"))
	viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
}

func initConfig() {
	if err := config.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
}

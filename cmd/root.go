// Package cmd implements the assetguy CLI commands using Cobra.
package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/schollz/progressbar/v3"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/assetguy/assetguy/internal/config"
	"github.com/assetguy/assetguy/internal/params"
)

// Version is set during build via -ldflags "-X github.com/assetguy/assetguy/cmd.Version=X.Y.Z"
var Version = "dev"

// Progress bar resolution in ticks
const progressTicks = 1000

var (
	jsonOutput     bool
	nonInteractive bool
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "assetguy",
	Short: "Unified CLI tool for optimizing, converting, and managing media assets",
	Long: `AssetGuy applies opinionated presets to drive ImageMagick and FFmpeg for
inspecting, optimizing, converting, and comparing image, GIF, and video assets.

Examples:
  $ assetguy inspect animation.gif
  $ assetguy optimize animation.gif --preset docs
  $ assetguy convert clip.mp4 --to gif --width 800 --fps 12
  $ assetguy compare before.gif after.gif --json`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()

		logrus.SetOutput(os.Stderr)
		logrus.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
		if verbose {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

// Execute runs the root command.
func Execute() {
	rootCmd.Version = Version
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&nonInteractive, "non-interactive", false, "Never prompt; missing parameters fall back to configured defaults")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// loadSettings loads the user configuration file.
func loadSettings() (*config.Settings, error) {
	return config.Load()
}

// prompter returns the interactive prompter, or a no-op one when prompting
// is disabled or stdin is not a terminal.
func prompter() params.Prompter {
	if nonInteractive || !term.IsTerminal(int(os.Stdin.Fd())) {
		return params.Nop{}
	}
	return params.NewTerminal(os.Stdin, os.Stderr)
}

// selectPreset resolves the preset to apply: the explicit flag value, else
// the configured default preset, else none.
func selectPreset(name string, settings *config.Settings) (*config.Preset, error) {
	if name == "" {
		name = settings.String(config.KeyDefaultPreset)
	}
	if name == "" {
		return nil, nil
	}
	p, err := config.GetPreset(name)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("Using preset %q", p.Name)
	return &p, nil
}

// progressFunc returns a media-seconds progress callback rendering a
// progress bar on stderr, plus a closer that clears the bar once the
// operation is over. The callback is nil when a bar would garble the output;
// the closer is always safe to call.
func progressFunc(description string) (func(done, total float64), func()) {
	if jsonOutput || !term.IsTerminal(int(os.Stderr.Fd())) {
		return nil, func() {}
	}
	var bar *progressbar.ProgressBar
	update := func(done, total float64) {
		if total <= 0 {
			return
		}
		if bar == nil {
			bar = progressbar.NewOptions(progressTicks,
				progressbar.OptionSetDescription(description),
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionClearOnFinish(),
			)
		}
		_ = bar.Set(int(done / total * progressTicks))
	}
	finish := func() {
		if bar != nil {
			_ = bar.Finish()
		}
	}
	return update, finish
}

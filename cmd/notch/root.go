package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/notch/internal/config"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

const appID = "io.github.jmylchreest.notch"

var (
	cfg        *config.Config
	globalOpts struct {
		verbose    bool
		configPath string
	}
	runOpts struct {
		clickThrough bool
	}
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "notch",
	Short: "A notch overlay for the top of the screen",
	Long: `notch draws a small rounded overlay at the top-center of the primary
display. Hover it to enlarge it, triple-click to expand it into folder
shortcuts or quick actions, and it announces the currently playing track
with a short scrolling banner.

Running notch without a subcommand starts the overlay.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		setupLogger()

		var err error
		cfg, err = config.Load(configPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
	RunE: runOverlay,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/notch/notch.toml)")

	rootCmd.Flags().BoolVar(&runOpts.clickThrough, "clickthrough", false,
		"Let every pointer event pass through the overlay")
}

func configPath() string {
	if globalOpts.configPath != "" {
		return config.ExpandPath(globalOpts.configPath)
	}
	return config.Path()
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := slog.LevelWarn
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	logger = slog.New(handler)
	slog.SetDefault(logger)
}

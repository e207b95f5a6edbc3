package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/notch/internal/config"
	"github.com/jmylchreest/notch/internal/theme"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the config file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		state := "not present, defaults in use"
		if _, err := os.Stat(path); err == nil {
			state = "present"
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", path, state)
		return err
	},
}

var configInitOpts struct {
	force bool
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path := configPath()
		if _, err := os.Stat(path); err == nil && !configInitOpts.force {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		} else if err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := config.Default().Save(path); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
		return err
	},
}

var themesCmd = &cobra.Command{
	Use:   "themes",
	Short: "List available themes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := theme.Dir()
		if err != nil {
			logger.Warn("failed to get themes directory", "error", err)
		}
		for _, name := range theme.Available(dir) {
			marker := " "
			if name == cfg.Appearance.Theme {
				marker = "*"
			}
			if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", marker, name); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd, themesCmd)

	configInitCmd.Flags().BoolVar(&configInitOpts.force, "force", false, "Overwrite an existing file")
}

package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/notch/internal/dbus"
)

const controlTimeout = 2 * time.Second

var toggleCmd = &cobra.Command{
	Use:   "toggle",
	Short: "Expand or collapse the running notch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return callControl("Toggle")
	},
}

var announceCmd = &cobra.Command{
	Use:   "announce <title> [detail]",
	Short: "Show a transient banner on the running notch",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		detail := cfg.Content.DefaultDetail
		if len(args) == 2 {
			detail = args[1]
		}
		return callControl("Announce", args[0], detail)
	},
}

var quitCmd = &cobra.Command{
	Use:   "quit",
	Short: "Stop the running notch",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return callControl("Quit")
	},
}

func init() {
	rootCmd.AddCommand(toggleCmd, announceCmd, quitCmd)
}

func callControl(method string, args ...any) error {
	session, err := dbus.Connect(logger)
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), controlTimeout)
	defer cancel()
	return dbus.CallControl(ctx, session, method, args...)
}

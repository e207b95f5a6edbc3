package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return writeVersion(cmd.OutOrStdout(), time.Now())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func writeVersion(w io.Writer, now time.Time) error {
	if _, err := fmt.Fprintf(w, "notch %s (commit: %s)\n", version, commit); err != nil {
		return err
	}
	built, err := time.Parse(time.RFC3339, buildTime)
	if err != nil {
		_, err = fmt.Fprintf(w, "built: %s\n", buildTime)
		return err
	}
	_, err = fmt.Fprintf(w, "built: %s (%s)\n", built.Format(time.DateTime), humanize.RelTime(built, now, "ago", "from now"))
	return err
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/notch/internal/geometry"
)

var geometryOpts struct {
	width  int
	height int
}

var geometryCmd = &cobra.Command{
	Use:   "geometry",
	Short: "Print the notch rectangles for a screen size",
	Long: `Print every rectangle the notch animates between for a screen of the
given size, without opening a window. Useful for checking placement on a
particular monitor.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if geometryOpts.width <= 0 || geometryOpts.height <= 0 {
			return fmt.Errorf("screen size must be positive, got %dx%d", geometryOpts.width, geometryOpts.height)
		}
		m := geometry.NewMetrics(geometryOpts.width, geometryOpts.height)
		_, err := fmt.Fprintln(cmd.OutOrStdout(), renderGeometry(m))
		return err
	},
}

func init() {
	rootCmd.AddCommand(geometryCmd)

	geometryCmd.Flags().IntVar(&geometryOpts.width, "width", 1920, "Screen width in pixels")
	geometryCmd.Flags().IntVar(&geometryOpts.height, "height", 1080, "Screen height in pixels")
}

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	nameStyle   = lipgloss.NewStyle().Width(22).Foreground(lipgloss.Color("8"))
	valueStyle  = lipgloss.NewStyle().Width(8).Align(lipgloss.Right)
)

func renderGeometry(m geometry.Metrics) string {
	rows := []struct {
		name string
		r    geometry.Rect
	}{
		{"base", m.Base},
		{"hover", m.Hover()},
		{"expanded", m.Expanded()},
		{"banner", m.Banner()},
		{"expand anticipation", m.Anticipation(m.Base, m.Expanded())},
		{"collapse anticipation", m.Anticipation(m.Expanded(), m.Base)},
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("screen %dx%d, corner radius %d", m.ScreenW, m.ScreenH, m.Radius)))
	b.WriteString("\n")
	b.WriteString(nameStyle.Render(""))
	for _, h := range []string{"x", "y", "w", "h"} {
		b.WriteString(valueStyle.Render(h))
	}
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(nameStyle.Render(row.name))
		for _, v := range []int{row.r.X, row.r.Y, row.r.W, row.r.H} {
			b.WriteString(valueStyle.Render(fmt.Sprint(v)))
		}
	}
	return b.String()
}

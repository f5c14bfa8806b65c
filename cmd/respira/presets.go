package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List breathing presets",
	Args:  cobra.NoArgs,
	RunE:  runPresets,
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}

func runPresets(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	rows := table.New().Headers("KEY", "NAME", "PATTERN", "MINUTES")
	for _, preset := range env.presets.All() {
		rows.Row(preset.Key, preset.Name, preset.Pattern(), formatMinutes(preset.Session))
	}
	fmt.Fprintln(cmd.OutOrStdout(), rows.Render())
	return nil
}

func formatMinutes(seconds int) string {
	if seconds%60 == 0 {
		return fmt.Sprintf("%d", seconds/60)
	}
	return fmt.Sprintf("%.1f", float64(seconds)/60)
}

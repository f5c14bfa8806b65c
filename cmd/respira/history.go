package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent sessions",
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var historyLimit int

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of sessions to show, 0 for all")
}

func runHistory(cmd *cobra.Command, args []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}

	journal, err := env.openJournal()
	if err != nil {
		return err
	}
	defer journal.Close()

	entries, err := journal.List(historyLimit)
	if err != nil {
		return err
	}
	stats, err := journal.Stats()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No sessions yet")
		return nil
	}

	rows := table.New().Headers("STARTED", "PRESET", "PATTERN", "BREATHED", "OUTCOME")
	for _, entry := range entries {
		rows.Row(
			entry.StartedAt.Local().Format("2006-01-02 15:04"),
			entry.PresetName,
			entry.Pattern,
			clock(entry.ElapsedSeconds),
			string(entry.Outcome),
		)
	}
	fmt.Fprintln(out, rows.Render())
	fmt.Fprintf(out, "%d sessions, %d completed, %s breathed\n", stats.Sessions, stats.Completed, clock(stats.ElapsedSeconds))
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-assistant/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent searches",
	Long:  `History lists the most recent recorded search runs, newest first.`,
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadAppConfig()

	store, err := history.Open(cfg.History)
	if err != nil {
		return fmt.Errorf("opening history: %w", err)
	}
	defer store.Close()

	runs, err := store.Recent(cmd.Context())
	if err != nil {
		return fmt.Errorf("reading history: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No recorded searches.")
		return nil
	}

	for _, run := range runs {
		fmt.Fprintf(out, "%s  %-40q  %d results\n",
			run.RanAt.Local().Format(time.DateTime), run.Params.Query, len(run.Briefs))
	}
	return nil
}

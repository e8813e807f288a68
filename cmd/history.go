package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/closer/internal/session"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show your own play history: total time, per-mode averages and recent runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		h, err := session.LoadHistory(cmd.Context(), env.store.RunRepo(), env.learnerID(), limit)
		if err != nil {
			return err
		}
		if h.TotalRuns == 0 {
			fmt.Println("No runs recorded yet. Play one with `closer play`.")
			return nil
		}

		fmt.Printf("Runs: %d   Total play time: %s\n\n", h.TotalRuns, h.PlayTime.Round(time.Second))

		fmt.Printf("%-16s  %5s  %8s  %8s\n", "Mode", "Runs", "Avg", "Best")
		fmt.Println(strings.Repeat("─", 44))
		for _, m := range h.Modes {
			fmt.Printf("%-16s  %5d  %8d  %8d\n", truncate(m.Mode, 16), m.Runs, m.AvgScore, m.Best)
		}

		fmt.Printf("\nRecent runs\n")
		fmt.Printf("%-16s  %-16s  %8s  %6s  %8s  %s\n", "Date", "Mode", "Score", "Acc", "Time", "Rank")
		fmt.Println(strings.Repeat("─", 72))
		for _, r := range h.Recent {
			rank := r.Rank
			if rank == "" {
				rank = "-"
			}
			fmt.Printf("%-16s  %-16s  %8d  %5.0f%%  %8s  %s\n",
				r.CreatedAt.Local().Format("2006-01-02 15:04"),
				truncate(r.Mode, 16),
				r.Score,
				r.CorrectRate*100,
				r.Elapsed.Round(100*time.Millisecond),
				rank,
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Recent runs to list (0 = all)")
}

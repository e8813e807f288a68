package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/closer/internal/session"
	"github.com/abhisek/closer/internal/survival"
)

var rankingCmd = &cobra.Command{
	Use:   "ranking",
	Short: "Show the leaderboard for a mode",
	RunE: func(cmd *cobra.Command, args []string) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		levelFlag, _ := cmd.Flags().GetString("level")
		limit, _ := cmd.Flags().GetInt("limit")

		mode, err := session.ParseMode(modeFlag)
		if err != nil {
			return err
		}
		level, err := survival.ParseLevel(levelFlag)
		if err != nil {
			return err
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		runMode := session.RunMode(mode, level)
		limit = env.cfg.Balance.Ranking.ClampLimit(limit)
		runs, err := env.store.RunRepo().Leaderboard(cmd.Context(), runMode, limit)
		if err != nil {
			return fmt.Errorf("load leaderboard: %w", err)
		}

		if len(runs) == 0 {
			fmt.Printf("No runs recorded for %s yet.\n", runMode)
			return nil
		}

		fmt.Printf("Ranking: %s (top %d)\n", runMode, limit)
		fmt.Printf("%-4s  %-16s  %8s  %5s  %6s  %8s  %-4s  %s\n",
			"#", "Player", "Score", "Combo", "Acc", "Time", "Rank", "Date")
		fmt.Println(strings.Repeat("─", 76))

		me := env.learnerID()
		for i, r := range runs {
			marker := " "
			if r.LearnerID == me {
				marker = "*"
			}
			rank := r.Rank
			if rank == "" {
				rank = "-"
			}
			fmt.Printf("%-3d%s  %-16s  %8d  %5d  %5.0f%%  %8s  %-4s  %s\n",
				i+1, marker,
				truncate(r.LearnerID, 16),
				r.Score,
				r.MaxCombo,
				r.CorrectRate*100,
				r.Elapsed.Round(100*time.Millisecond),
				rank,
				r.CreatedAt.Local().Format("2006-01-02"),
			)
		}
		return nil
	},
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

func init() {
	rankingCmd.Flags().StringP("mode", "m", "national", "Mode: national, forYou or survival")
	rankingCmd.Flags().StringP("level", "l", "rookie", "Survival level when --mode survival")
	rankingCmd.Flags().IntP("limit", "n", 0, "Rows to show, clamped to [10, 100] (default 20)")
}

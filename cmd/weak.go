package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var weakCmd = &cobra.Command{
	Use:   "weak",
	Short: "Show per-category accuracy and the categories For You will target",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		weak, stats, err := env.planner.WeakCategories(cmd.Context(), env.learnerID())
		if err != nil {
			return err
		}
		if len(stats) == 0 {
			fmt.Println("No answers logged yet. Play a National or Survival run first.")
			return nil
		}

		isWeak := make(map[string]bool, len(weak))
		for _, c := range weak {
			isWeak[c] = true
		}

		w := env.cfg.Balance.Weakness
		fmt.Printf("%-12s  %7s  %6s  %7s\n", "Category", "Correct", "Total", "Acc")
		fmt.Println(strings.Repeat("─", 40))
		for _, ca := range stats {
			flag := ""
			if isWeak[ca.Category] {
				flag = "  ◂ weak"
			}
			fmt.Printf("%-12s  %7d  %6d  %6.0f%%%s\n",
				ca.Category, ca.Correct, ca.Total, ca.Accuracy()*100, flag)
		}
		fmt.Println()
		if len(weak) == 0 {
			fmt.Printf("No weak categories (need %d+ answers below %.0f%%).\n",
				w.MinSamples, w.Threshold*100)
			return nil
		}
		fmt.Printf("For You focuses on: %s\n", strings.Join(weak, ", "))
		return nil
	},
}

package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the learner's progress and saved words; cards are kept",
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		learner := env.learnerID()
		if !yes {
			fmt.Printf("Delete all progress for learner %q? [y/N] ", learner)
			line, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(line)); a != "y" && a != "yes" {
				fmt.Println("Aborted.")
				return nil
			}
		}

		ctx := cmd.Context()
		steps := []struct {
			what string
			del  func() error
		}{
			{"answers", func() error { return env.store.AnswerRepo().DeleteAnswers(ctx, learner) }},
			{"reviews", func() error { return env.store.ReviewRepo().DeleteReviews(ctx, learner) }},
			{"runs", func() error { return env.store.RunRepo().DeleteRuns(ctx, learner) }},
			{"plays", func() error { return env.store.PlayRepo().DeletePlays(ctx, learner) }},
			{"saved words", func() error { return env.store.VocabularyRepo().DeleteWords(ctx, learner) }},
		}
		for _, s := range steps {
			if err := s.del(); err != nil {
				return fmt.Errorf("delete %s: %w", s.what, err)
			}
		}
		fmt.Printf("Progress for %q reset. Cards were kept.\n", learner)
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}

package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "List the words you saved during play",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		words, err := env.store.VocabularyRepo().ListWords(cmd.Context(), env.learnerID())
		if err != nil {
			return fmt.Errorf("list saved words: %w", err)
		}
		if len(words) == 0 {
			fmt.Println("No saved words. Press R on a vocabulary answer to save one.")
			return nil
		}
		for _, w := range words {
			fmt.Printf("%-20s  %s\n", w.Word, strings.Join(w.Meanings, " / "))
		}
		fmt.Printf("\n%d words; they are drilled in vocab mode.\n", len(words))
		return nil
	},
}

package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/abhisek/closer/internal/app"
)

var rootCmd = &cobra.Command{
	Use:   "closer",
	Short: "TOEIC Part 5 drill arcade",
	Long:  "Closer is a terminal arcade for TOEIC Part 5: fill the blank against the clock, review vocabulary on a forgetting curve and climb the local ranking.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.seed(cmd.Context()); err != nil {
			return err
		}
		return app.Run(app.Options{Home: env.homeDeps(0, false)})
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides CLOSER_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to a closer.yaml config file")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(rankingCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(wordsCmd)
	rootCmd.AddCommand(weakCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(scheduleCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(llmCmd)
}

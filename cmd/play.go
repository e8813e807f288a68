package cmd

import (
	"github.com/spf13/cobra"

	"github.com/abhisek/closer/internal/app"
	"github.com/abhisek/closer/internal/session"
	"github.com/abhisek/closer/internal/survival"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start a run directly, skipping the menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		modeFlag, _ := cmd.Flags().GetString("mode")
		levelFlag, _ := cmd.Flags().GetString("level")
		limit, _ := cmd.Flags().GetInt("limit")
		noQuota, _ := cmd.Flags().GetBool("no-quota")

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

		if err := env.seed(cmd.Context()); err != nil {
			return err
		}
		return app.Run(app.Options{
			Home:  env.homeDeps(limit, noQuota),
			Start: &app.StartRun{Mode: mode, Level: level},
		})
	},
}

func init() {
	playCmd.Flags().StringP("mode", "m", "national", "Game mode: national, forYou, vocab or survival")
	playCmd.Flags().StringP("level", "l", "rookie", "Survival level: rookie, ace or legend")
	playCmd.Flags().IntP("limit", "n", 0, "Questions per run, clamped to [10, 50] (default 20)")
	playCmd.Flags().Bool("no-quota", false, "Ignore the daily free-play limit")
	if err := playCmd.Flags().MarkHidden("no-quota"); err != nil {
		panic(err)
	}
}

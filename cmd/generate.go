package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/closer/internal/questiongen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Write new questions with the LLM, review them and add the keepers to the deck",
	RunE: func(cmd *cobra.Command, args []string) error {
		target, _ := cmd.Flags().GetInt("target")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		cfg := env.cfg.Pipeline
		if target > 0 {
			cfg.Target = target
		}
		pipeline, err := env.pipeline(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		start := time.Now()
		res, err := pipeline.Run(cmd.Context())
		if res != nil {
			fmt.Printf("Attempts: %d  Generated: %d  Invalid: %d  Passed: %d  Rejected: %d  Review errors: %d\n",
				res.Attempts, res.Generated, res.Invalid, res.Passed, res.Rejected, res.ReviewErrors)
		}
		if err != nil {
			return fmt.Errorf("pipeline: %w", err)
		}
		fmt.Printf("Saved %d new cards in %s.\n", res.Saved, time.Since(start).Round(time.Second))
		return nil
	},
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Run the question pipeline on a cron schedule until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		spec, _ := cmd.Flags().GetString("cron")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if spec == "" {
			spec = env.cfg.Pipeline.Schedule
		}
		pipeline, err := env.pipeline(cmd.Context(), env.cfg.Pipeline)
		if err != nil {
			return err
		}
		sched, err := questiongen.NewScheduler(spec, pipeline, time.Local, env.logger)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		fmt.Printf("Pipeline scheduled with %q. Press Ctrl+C to stop.\n", spec)
		return sched.Run(ctx)
	},
}

// pipeline wires the LLM writer and reviewer to the card store.
func (e *env) pipeline(ctx context.Context, cfg questiongen.Config) (*questiongen.Pipeline, error) {
	provider, err := e.provider(ctx)
	if err != nil {
		return nil, fmt.Errorf("LLM provider not configured: %w", err)
	}
	return questiongen.NewPipeline(
		questiongen.NewGenerator(provider, cfg),
		questiongen.NewReviewer(provider, cfg),
		e.store.CardRepo(),
		cfg,
		e.logger,
	), nil
}

func init() {
	generateCmd.Flags().IntP("target", "t", 0, "Questions to store this run (default from config)")
	scheduleCmd.Flags().String("cron", "", `Cron expression (default from config, "0 3 * * 1")`)
}

package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/closer/internal/llm"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Check the LLM provider and its usage",
}

var llmTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send one small request to the configured provider",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		provider, err := env.provider(cmd.Context())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		ctx := llm.WithPurpose(cmd.Context(), llm.PurposeHealthCheck)
		start := time.Now()
		resp, err := provider.Generate(ctx, llm.Request{
			System:    "Reply with the single word: ready",
			Messages:  []llm.Message{{Role: llm.RoleUser, Content: "Are you ready?"}},
			MaxTokens: 16,
		})
		if err != nil {
			return fmt.Errorf("request failed: %w", err)
		}

		fmt.Printf("Model:    %s\n", resp.Model)
		fmt.Printf("Latency:  %s\n", time.Since(start).Round(time.Millisecond))
		fmt.Printf("Tokens:   %d in / %d out\n", resp.Usage.InputTokens, resp.Usage.OutputTokens)
		fmt.Printf("Reply:    %s\n", strings.TrimSpace(string(resp.Content)))
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		days, _ := cmd.Flags().GetInt("days")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		since := time.Now().AddDate(0, 0, -days)
		usage, err := env.store.EventRepo().LLMUsageSince(cmd.Context(), since)
		if err != nil {
			return fmt.Errorf("query usage: %w", err)
		}
		if usage.Requests == 0 {
			fmt.Printf("No LLM usage in the last %d days.\n", days)
			return nil
		}

		fmt.Printf("Last %d days\n", days)
		fmt.Println(strings.Repeat("─", 40))
		fmt.Printf("Requests:  %d (%d failed)\n", usage.Requests, usage.Failures)
		fmt.Printf("Input:     %d tokens\n", usage.InputTokens)
		fmt.Printf("Output:    %d tokens\n", usage.OutputTokens)

		model := env.cfg.LLM.WithModelOverride()
		if cost, ok := llm.LookupCost(providerModel(model)); ok {
			fmt.Printf("Est. cost: %s (at %s prices)\n",
				formatCost(cost.Cost(usage.InputTokens, usage.OutputTokens)), providerModel(model))
		}
		return nil
	},
}

// providerModel returns the model of the selected provider.
func providerModel(cfg llm.Config) string {
	switch cfg.Provider {
	case llm.ProviderOpenAI:
		return cfg.OpenAI.Model
	case llm.ProviderGemini:
		return cfg.Gemini.Model
	case llm.ProviderOpenRouter:
		return cfg.OpenRouter.Model
	default:
		return cfg.Anthropic.Model
	}
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmStatsCmd.Flags().Int("days", 30, "Window to sum over")

	llmCmd.AddCommand(llmTestCmd)
	llmCmd.AddCommand(llmStatsCmd)
}

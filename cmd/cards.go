package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/closer/internal/content"
	"github.com/abhisek/closer/internal/store"
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Manage the question deck",
}

var cardsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the starter deck if the deck is empty",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		n, err := content.SeedIfEmpty(cmd.Context(), env.store.CardRepo(), time.Now())
		if err != nil {
			return fmt.Errorf("seed cards: %w", err)
		}
		if n == 0 {
			fmt.Println("Deck already has cards; nothing seeded.")
			return nil
		}
		fmt.Printf("Seeded %d cards.\n", n)
		return nil
	},
}

var cardsImportCmd = &cobra.Command{
	Use:   "import <file.json|file.xlsx>",
	Short: "Import cards from a JSON content pack or an XLSX sheet",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sheet, _ := cmd.Flags().GetString("sheet")

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("open %s: %w", args[0], err)
		}
		defer f.Close()

		now := time.Now()
		var cards []content.Card
		switch strings.ToLower(filepath.Ext(args[0])) {
		case ".json":
			pack, err := content.ReadPack(f)
			if err != nil {
				return err
			}
			cards = pack.Normalized(now)
		case ".xlsx":
			cfg := content.DefaultSheetConfig()
			cfg.SheetName = sheet
			res, err := content.ReadSheet(f, cfg, now)
			if err != nil {
				return err
			}
			for _, e := range res.Errors {
				fmt.Fprintln(os.Stderr, "skipped", e)
			}
			cards = res.Cards
		default:
			return fmt.Errorf("unsupported file type %q (want .json or .xlsx)", filepath.Ext(args[0]))
		}

		if len(cards) == 0 {
			fmt.Println("No cards found.")
			return nil
		}

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		if err := env.store.CardRepo().SaveCards(cmd.Context(), cards); err != nil {
			return fmt.Errorf("save cards: %w", err)
		}
		fmt.Printf("Imported %d cards.\n", len(cards))
		return nil
	},
}

var cardsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cards, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		typ, _ := cmd.Flags().GetString("type")
		category, _ := cmd.Flags().GetString("category")

		env, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer env.Close()

		q := store.CardQuery{Limit: limit, Type: content.CardType(typ)}
		if category != "" {
			q.Categories = []string{category}
		}
		cards, err := env.store.CardRepo().ListCards(cmd.Context(), q)
		if err != nil {
			return fmt.Errorf("list cards: %w", err)
		}
		total, err := env.store.CardRepo().CountCards(cmd.Context())
		if err != nil {
			return fmt.Errorf("count cards: %w", err)
		}

		fmt.Printf("%-10s  %-10s  %-8s  %4s  %s\n", "ID", "Type", "Category", "Diff", "Prompt")
		fmt.Println(strings.Repeat("─", 80))
		for _, c := range cards {
			fmt.Printf("%-10s  %-10s  %-8s  %4s  %s\n",
				truncate(c.ID, 10), c.Type, c.Category, c.Difficulty, truncate(c.Prompt, 44))
		}
		fmt.Printf("\n%d of %d cards shown.\n", len(cards), total)
		return nil
	},
}

func init() {
	cardsImportCmd.Flags().String("sheet", "", "Worksheet to read (default: first sheet)")

	cardsListCmd.Flags().IntP("limit", "n", 20, "Number of cards to show")
	cardsListCmd.Flags().StringP("type", "t", "", "Filter by type (vocabulary, grammar)")
	cardsListCmd.Flags().StringP("category", "c", "", "Filter by category")

	cardsCmd.AddCommand(cardsSeedCmd)
	cardsCmd.AddCommand(cardsImportCmd)
	cardsCmd.AddCommand(cardsListCmd)
}

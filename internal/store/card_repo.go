package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/closer/internal/content"
	"github.com/abhisek/closer/internal/scoring"
)

var cardColumns = []string{
	"id", "prompt", "options", "correct_index", "card_type", "category",
	"difficulty", "explanation", "vocab_map", "created_at",
}

type cardRepo struct {
	db *sql.DB
	b  *entsql.DialectBuilder
}

// SaveCards upserts cards by ID in a single transaction.
func (r *cardRepo) SaveCards(ctx context.Context, cards []content.Card) error {
	if len(cards) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, c := range cards {
		options, err := json.Marshal(c.Options)
		if err != nil {
			return fmt.Errorf("marshal options for %s: %w", c.ID, err)
		}
		vocab := c.VocabMap
		if vocab == nil {
			vocab = map[string][]string{}
		}
		vocabJSON, err := json.Marshal(vocab)
		if err != nil {
			return fmt.Errorf("marshal vocab map for %s: %w", c.ID, err)
		}

		query, args := r.b.Insert("cards").
			Columns(cardColumns...).
			Values(c.ID, c.Prompt, string(options), c.CorrectIndex, string(c.Type), c.Category,
				string(c.Difficulty), c.Explanation, string(vocabJSON), toMillis(c.CreatedAt)).
			OnConflict(
				entsql.ConflictColumns("id"),
				entsql.ResolveWithNewValues(),
			).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("save card %s: %w", c.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cards: %w", err)
	}
	return nil
}

func (r *cardRepo) CountCards(ctx context.Context) (int, error) {
	query, args := r.b.Select(entsql.Count("*")).
		From(entsql.Table("cards")).
		Query()
	var n int
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count cards: %w", err)
	}
	return n, nil
}

func (r *cardRepo) ListCards(ctx context.Context, q CardQuery) ([]content.Card, error) {
	var preds []*entsql.Predicate
	if len(q.Categories) > 0 {
		preds = append(preds, entsql.In("category", anySlice(q.Categories)...))
	}
	if len(q.ExcludeIDs) > 0 {
		preds = append(preds, entsql.NotIn("id", anySlice(q.ExcludeIDs)...))
	}
	if q.Type != "" {
		preds = append(preds, entsql.EQ("card_type", string(q.Type)))
	}

	sel := r.b.Select(cardColumns...).From(entsql.Table("cards"))
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if q.Oldest {
		sel.OrderExpr(entsql.Expr("created_at ASC"), entsql.Expr("id ASC"))
	} else {
		sel.OrderExpr(entsql.Expr("created_at DESC"), entsql.Expr("id ASC"))
	}
	if q.Limit > 0 {
		sel.Limit(q.Limit)
	}
	query, args := sel.Query()
	return r.query(ctx, query, args)
}

// GetCards returns the cards with the given IDs in the order the IDs were
// given. Unknown IDs are skipped.
func (r *cardRepo) GetCards(ctx context.Context, ids []string) ([]content.Card, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args := r.b.Select(cardColumns...).
		From(entsql.Table("cards")).
		Where(entsql.In("id", anySlice(ids)...)).
		Query()
	found, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]content.Card, len(found))
	for _, c := range found {
		byID[c.ID] = c
	}
	cards := make([]content.Card, 0, len(found))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			cards = append(cards, c)
			delete(byID, id)
		}
	}
	return cards, nil
}

func (r *cardRepo) query(ctx context.Context, query string, args []any) ([]content.Card, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query cards: %w", err)
	}
	defer rows.Close()

	var cards []content.Card
	for rows.Next() {
		var (
			c                    content.Card
			options, vocab       string
			cardType, difficulty string
			createdMs            int64
		)
		if err := rows.Scan(&c.ID, &c.Prompt, &options, &c.CorrectIndex, &cardType, &c.Category,
			&difficulty, &c.Explanation, &vocab, &createdMs); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		if err := json.Unmarshal([]byte(options), &c.Options); err != nil {
			return nil, fmt.Errorf("decode options for %s: %w", c.ID, err)
		}
		if vocab != "" && vocab != "{}" {
			if err := json.Unmarshal([]byte(vocab), &c.VocabMap); err != nil {
				return nil, fmt.Errorf("decode vocab map for %s: %w", c.ID, err)
			}
		}
		c.Type = content.CardType(cardType)
		c.Difficulty = scoring.Difficulty(difficulty)
		c.CreatedAt = fromMillis(createdMs)
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func anySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"

	"github.com/abhisek/closer/internal/content"
)

var wordColumns = []string{"learner_id", "word", "meanings", "source_card_id", "created_at"}

type vocabularyRepo struct {
	db *sql.DB
	b  *entsql.DialectBuilder
}

func (r *vocabularyRepo) RegisterWord(ctx context.Context, rec VocabularyRecord) error {
	word := content.NormalizeWord(rec.Word)
	meanings := content.CleanMeanings(rec.Meanings)
	if word == "" || len(meanings) == 0 {
		return errors.New("register word: word and at least one meaning are required")
	}
	raw, err := json.Marshal(meanings)
	if err != nil {
		return fmt.Errorf("encode meanings: %w", err)
	}

	// A repeat registration keeps its original position in the list.
	query, args := r.b.Insert("learner_words").
		Columns(wordColumns...).
		Values(rec.LearnerID, word, string(raw), rec.SourceCardID, toMillis(rec.CreatedAt)).
		OnConflict(
			entsql.ConflictColumns("learner_id", "word"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("meanings").SetExcluded("source_card_id")
			}),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("register word %q: %w", word, err)
	}
	return nil
}

func (r *vocabularyRepo) ListWords(ctx context.Context, learnerID string) ([]VocabularyRecord, error) {
	query, args := r.b.Select(wordColumns...).
		From(entsql.Table("learner_words")).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderExpr(entsql.Expr("created_at DESC"), entsql.Expr("word ASC")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query words: %w", err)
	}
	defer rows.Close()

	var recs []VocabularyRecord
	for rows.Next() {
		var (
			rec       VocabularyRecord
			raw       string
			createdMs int64
		)
		if err := rows.Scan(&rec.LearnerID, &rec.Word, &raw, &rec.SourceCardID, &createdMs); err != nil {
			return nil, fmt.Errorf("scan word: %w", err)
		}
		if err := json.Unmarshal([]byte(raw), &rec.Meanings); err != nil {
			return nil, fmt.Errorf("decode meanings of %q: %w", rec.Word, err)
		}
		rec.CreatedAt = fromMillis(createdMs)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *vocabularyRepo) DeleteWords(ctx context.Context, learnerID string) error {
	query, args := r.b.Delete("learner_words").
		Where(entsql.EQ("learner_id", learnerID)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete words: %w", err)
	}
	return nil
}

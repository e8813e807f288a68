package store

import (
	"context"
	"database/sql"
	"fmt"

	entsql "entgo.io/ent/dialect/sql"
)

var reviewColumns = []string{
	"learner_id", "card_id", "stage", "last_reviewed_at",
	"next_review_at", "memory_strength", "correct_count",
}

type reviewRepo struct {
	db *sql.DB
	b  *entsql.DialectBuilder
}

func (r *reviewRepo) GetReview(ctx context.Context, learnerID, cardID string) (*ReviewRecord, error) {
	query, args := r.b.Select(reviewColumns...).
		From(entsql.Table("review_states")).
		Where(entsql.And(
			entsql.EQ("learner_id", learnerID),
			entsql.EQ("card_id", cardID),
		)).
		Query()

	recs, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, nil
	}
	return recs[0], nil
}

func (r *reviewRepo) PutReview(ctx context.Context, rec *ReviewRecord) error {
	query, args := r.b.Insert("review_states").
		Columns(reviewColumns...).
		Values(rec.LearnerID, rec.CardID, rec.Stage, toMillis(rec.LastReviewedAt),
			toMillis(rec.NextReviewAt), rec.MemoryStrength, rec.CorrectCount).
		OnConflict(
			entsql.ConflictColumns("learner_id", "card_id"),
			entsql.ResolveWithNewValues(),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("put review %s/%s: %w", rec.LearnerID, rec.CardID, err)
	}
	return nil
}

func (r *reviewRepo) ListReviews(ctx context.Context, learnerID string) ([]*ReviewRecord, error) {
	query, args := r.b.Select(reviewColumns...).
		From(entsql.Table("review_states")).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderExpr(entsql.Expr("next_review_at ASC"), entsql.Expr("card_id ASC")).
		Query()
	return r.query(ctx, query, args)
}

func (r *reviewRepo) DeleteReviews(ctx context.Context, learnerID string) error {
	query, args := r.b.Delete("review_states").
		Where(entsql.EQ("learner_id", learnerID)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete reviews: %w", err)
	}
	return nil
}

func (r *reviewRepo) query(ctx context.Context, query string, args []any) ([]*ReviewRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	var recs []*ReviewRecord
	for rows.Next() {
		var (
			rec            ReviewRecord
			lastMs, nextMs int64
		)
		if err := rows.Scan(&rec.LearnerID, &rec.CardID, &rec.Stage, &lastMs,
			&nextMs, &rec.MemoryStrength, &rec.CorrectCount); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		rec.LastReviewedAt = fromMillis(lastMs)
		rec.NextReviewAt = fromMillis(nextMs)
		recs = append(recs, &rec)
	}
	return recs, rows.Err()
}

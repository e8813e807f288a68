package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type answerRepo struct {
	db  *sql.DB
	b   *entsql.DialectBuilder
	seq *sequenceCounter
}

func (r *answerRepo) AppendAnswer(ctx context.Context, rec AnswerRecord) error {
	seq, err := r.seq.Next(ctx)
	if err != nil {
		return err
	}

	query, args := r.b.Insert("answer_logs").
		Columns("seq", "learner_id", "card_id", "category", "correct",
			"response_time_ms", "answered_at").
		Values(seq, rec.LearnerID, rec.CardID, rec.Category, boolInt(rec.Correct),
			rec.ResponseTime.Milliseconds(), toMillis(rec.AnsweredAt)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("append answer: %w", err)
	}
	return nil
}

func (r *answerRepo) AnswerHistory(ctx context.Context, learnerID string, limit int) ([]AnswerRecord, error) {
	sel := r.b.Select("seq", "learner_id", "card_id", "category", "correct",
		"response_time_ms", "answered_at").
		From(entsql.Table("answer_logs")).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderExpr(entsql.Expr("seq DESC"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query answer history: %w", err)
	}
	defer rows.Close()

	var recs []AnswerRecord
	for rows.Next() {
		var (
			rec          AnswerRecord
			correct      int
			responseMs   int64
			answeredAtMs int64
		)
		if err := rows.Scan(&rec.Seq, &rec.LearnerID, &rec.CardID, &rec.Category,
			&correct, &responseMs, &answeredAtMs); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		rec.Correct = correct != 0
		rec.ResponseTime = time.Duration(responseMs) * time.Millisecond
		rec.AnsweredAt = fromMillis(answeredAtMs)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

func (r *answerRepo) DeleteAnswers(ctx context.Context, learnerID string) error {
	query, args := r.b.Delete("answer_logs").
		Where(entsql.EQ("learner_id", learnerID)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete answers: %w", err)
	}
	return nil
}

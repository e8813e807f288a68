package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
	"github.com/google/uuid"
)

var runColumns = []string{
	"id", "learner_id", "mode", "score", "max_combo",
	"correct_rate", "elapsed_ms", "run_rank", "created_at",
}

type runRepo struct {
	db *sql.DB
	b  *entsql.DialectBuilder
}

func (r *runRepo) SaveRun(ctx context.Context, rec RunRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	query, args := r.b.Insert("runs").
		Columns(runColumns...).
		Values(rec.ID, rec.LearnerID, rec.Mode, rec.Score, rec.MaxCombo,
			rec.CorrectRate, rec.Elapsed.Milliseconds(), rec.Rank, toMillis(rec.CreatedAt)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	return nil
}

func (r *runRepo) Leaderboard(ctx context.Context, mode string, limit int) ([]RunRecord, error) {
	sel := r.b.Select(runColumns...).
		From(entsql.Table("runs")).
		OrderExpr(
			entsql.Expr("score DESC"),
			entsql.Expr("elapsed_ms ASC"),
			entsql.Expr("created_at ASC"),
		)
	if mode != "" {
		sel.Where(entsql.EQ("mode", mode))
	}
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()
	return r.query(ctx, query, args)
}

func (r *runRepo) BestRun(ctx context.Context, learnerID, mode string) (*RunRecord, error) {
	query, args := r.b.Select(runColumns...).
		From(entsql.Table("runs")).
		Where(entsql.And(
			entsql.EQ("learner_id", learnerID),
			entsql.EQ("mode", mode),
		)).
		OrderExpr(entsql.Expr("score DESC"), entsql.Expr("elapsed_ms ASC")).
		Limit(1).
		Query()

	recs, err := r.query(ctx, query, args)
	if err != nil {
		return nil, err
	}
	if len(recs) == 0 {
		return nil, ErrNotFound
	}
	return &recs[0], nil
}

func (r *runRepo) History(ctx context.Context, learnerID string, limit int) ([]RunRecord, error) {
	sel := r.b.Select(runColumns...).
		From(entsql.Table("runs")).
		Where(entsql.EQ("learner_id", learnerID)).
		OrderExpr(entsql.Expr("created_at DESC"), entsql.Expr("id ASC"))
	if limit > 0 {
		sel.Limit(limit)
	}
	query, args := sel.Query()
	return r.query(ctx, query, args)
}

func (r *runRepo) DeleteRuns(ctx context.Context, learnerID string) error {
	query, args := r.b.Delete("runs").
		Where(entsql.EQ("learner_id", learnerID)).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete runs: %w", err)
	}
	return nil
}

func (r *runRepo) query(ctx context.Context, query string, args []any) ([]RunRecord, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		var (
			rec                  RunRecord
			elapsedMs, createdMs int64
		)
		if err := rows.Scan(&rec.ID, &rec.LearnerID, &rec.Mode, &rec.Score, &rec.MaxCombo,
			&rec.CorrectRate, &elapsedMs, &rec.Rank, &createdMs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rec.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		rec.CreatedAt = fromMillis(createdMs)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

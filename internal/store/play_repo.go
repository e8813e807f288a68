package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

type playRepo struct {
	db *sql.DB
	b  *entsql.DialectBuilder
}

func (r *playRepo) FirstUse(ctx context.Context, learnerID string, now time.Time) (time.Time, error) {
	insert, insertArgs := r.b.Insert("learners").
		Columns("learner_id", "first_use_at").
		Values(learnerID, toMillis(now)).
		OnConflict(entsql.ConflictColumns("learner_id"), entsql.DoNothing()).
		Query()
	if _, err := r.db.ExecContext(ctx, insert, insertArgs...); err != nil {
		return time.Time{}, fmt.Errorf("record first use: %w", err)
	}

	query, args := r.b.Select("first_use_at").
		From(entsql.Table("learners")).
		Where(entsql.EQ("learner_id", learnerID)).
		Query()
	var ms int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&ms); err != nil {
		return time.Time{}, fmt.Errorf("read first use: %w", err)
	}
	return fromMillis(ms), nil
}

func (r *playRepo) PlayCount(ctx context.Context, learnerID, day string) (int, error) {
	query, args := r.b.Select("plays").
		From(entsql.Table("daily_plays")).
		Where(entsql.And(
			entsql.EQ("learner_id", learnerID),
			entsql.EQ("day", day),
		)).
		Query()
	var n int
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&n)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read play count: %w", err)
	}
	return n, nil
}

func (r *playRepo) IncrementPlay(ctx context.Context, learnerID, day string) error {
	query, args := r.b.Insert("daily_plays").
		Columns("learner_id", "day", "plays").
		Values(learnerID, day, 1).
		OnConflict(
			entsql.ConflictColumns("learner_id", "day"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.Add("plays", 1)
			}),
		).
		Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("increment play count: %w", err)
	}
	return nil
}

func (r *playRepo) DeletePlays(ctx context.Context, learnerID string) error {
	for _, table := range []string{"daily_plays", "learners"} {
		query, args := r.b.Delete(table).
			Where(entsql.EQ("learner_id", learnerID)).
			Query()
		if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s: %w", table, err)
		}
	}
	return nil
}

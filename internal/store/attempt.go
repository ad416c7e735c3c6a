package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const attemptsTable = "attempts"

var attemptColumns = []string{
	"seq", "session_id", "question_id", "category", "question_text",
	"method", "answer", "score", "matched", "created_at_ms",
}

// attemptRepo implements AttemptRepo with ent's SQL builder over database/sql.
type attemptRepo struct {
	db      *sql.DB
	dialect string
}

func (r *attemptRepo) AppendAttempt(ctx context.Context, data AttemptData) error {
	at := data.At
	if at.IsZero() {
		at = time.Now()
	}

	query, args := entsql.Dialect(r.dialect).
		Insert(attemptsTable).
		Columns(attemptColumns[1:]...).
		Values(
			data.SessionID,
			data.QuestionID,
			data.Category,
			data.QuestionText,
			data.Method,
			data.Answer,
			nullFloat(data.Score),
			boolInt(data.Matched),
			at.UnixMilli(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (r *attemptRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptData, error) {
	b := entsql.Dialect(r.dialect)
	sel := b.Select(attemptColumns...).
		From(b.Table(attemptsTable)).
		OrderBy(entsql.Desc("seq"))

	var preds []*entsql.Predicate
	if opts.Category != "" {
		preds = append(preds, entsql.EQ("category", opts.Category))
	}
	if opts.SessionID != "" {
		preds = append(preds, entsql.EQ("session_id", opts.SessionID))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptData
	for rows.Next() {
		var (
			a       AttemptData
			score   sql.NullFloat64
			matched int64
			atMs    int64
		)
		if err := rows.Scan(&a.Seq, &a.SessionID, &a.QuestionID, &a.Category, &a.QuestionText,
			&a.Method, &a.Answer, &score, &matched, &atMs); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Score = floatPtr(score)
		a.Matched = matched != 0
		a.At = time.UnixMilli(atMs)
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *attemptRepo) AccuracyByCategory(ctx context.Context) ([]CategoryAccuracy, error) {
	b := entsql.Dialect(r.dialect)
	query, args := b.Select(
		"category",
		entsql.As(entsql.Count("*"), "total"),
		entsql.As(entsql.Sum("matched"), "correct"),
	).
		From(b.Table(attemptsTable)).
		GroupBy("category").
		OrderBy("category").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query accuracy: %w", err)
	}
	defer rows.Close()

	var out []CategoryAccuracy
	for rows.Next() {
		var (
			c       CategoryAccuracy
			total   int64
			correct sql.NullInt64
		)
		if err := rows.Scan(&c.Category, &total, &correct); err != nil {
			return nil, fmt.Errorf("scan accuracy: %w", err)
		}
		c.Total = int(total)
		c.Correct = int(correct.Int64)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *attemptRepo) Reset(ctx context.Context) error {
	query, args := entsql.Dialect(r.dialect).Delete(attemptsTable).Query()
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("reset attempts: %w", err)
	}
	return nil
}

func nullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func floatPtr(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

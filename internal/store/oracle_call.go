package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

const oracleCallsTable = "oracle_calls"

var oracleCallColumns = []string{
	"seq", "provider", "model", "latency_ms", "success", "error_message", "score", "created_at_ms",
}

type oracleCallRepo struct {
	db      *sql.DB
	dialect string
}

func (r *oracleCallRepo) AppendOracleCall(ctx context.Context, data OracleCallData) error {
	at := data.At
	if at.IsZero() {
		at = time.Now()
	}

	query, args := entsql.Dialect(r.dialect).
		Insert(oracleCallsTable).
		Columns(oracleCallColumns[1:]...).
		Values(
			data.Provider,
			data.Model,
			data.LatencyMs,
			boolInt(data.Success),
			data.ErrorMessage,
			nullFloat(data.Score),
			at.UnixMilli(),
		).
		Query()

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save oracle call: %w", err)
	}
	return nil
}

func (r *oracleCallRepo) QueryOracleCalls(ctx context.Context, opts QueryOpts) ([]OracleCallData, error) {
	b := entsql.Dialect(r.dialect)
	sel := b.Select(oracleCallColumns...).
		From(b.Table(oracleCallsTable)).
		OrderBy(entsql.Desc("seq"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}

	query, args := sel.Query()
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query oracle calls: %w", err)
	}
	defer rows.Close()

	var out []OracleCallData
	for rows.Next() {
		var (
			c       OracleCallData
			success int64
			score   sql.NullFloat64
			atMs    int64
		)
		if err := rows.Scan(&c.Seq, &c.Provider, &c.Model, &c.LatencyMs, &success,
			&c.ErrorMessage, &score, &atMs); err != nil {
			return nil, fmt.Errorf("scan oracle call: %w", err)
		}
		c.Success = success != 0
		c.Score = floatPtr(score)
		c.At = time.UnixMilli(atMs)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *oracleCallRepo) UsageByModel(ctx context.Context) ([]ModelUsage, error) {
	b := entsql.Dialect(r.dialect)
	query, args := b.Select(
		"provider",
		"model",
		entsql.As(entsql.Count("*"), "calls"),
		entsql.As(entsql.Sum("success"), "succeeded"),
		entsql.As(entsql.Sum("latency_ms"), "latency"),
	).
		From(b.Table(oracleCallsTable)).
		GroupBy("provider", "model").
		OrderBy("provider", "model").
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query oracle usage: %w", err)
	}
	defer rows.Close()

	var out []ModelUsage
	for rows.Next() {
		var (
			u         ModelUsage
			calls     int64
			succeeded sql.NullInt64
			latency   sql.NullInt64
		)
		if err := rows.Scan(&u.Provider, &u.Model, &calls, &succeeded, &latency); err != nil {
			return nil, fmt.Errorf("scan oracle usage: %w", err)
		}
		u.Calls = int(calls)
		u.Failures = int(calls - succeeded.Int64)
		u.TotalLatency = time.Duration(latency.Int64) * time.Millisecond
		out = append(out, u)
	}
	return out, rows.Err()
}

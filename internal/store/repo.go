package store

import (
	"context"
	"time"
)

// QueryOpts configures history queries with filtering and pagination.
type QueryOpts struct {
	Limit     int    // max results (0 = unlimited)
	Category  string // exact category match; empty = all
	SessionID string // exact session match; empty = all
}

// AttemptData captures one checked answer.
type AttemptData struct {
	Seq          int64 // assigned on insert
	SessionID    string
	QuestionID   string
	Category     string
	QuestionText string
	Method       string
	Answer       string
	Score        *float64
	Matched      bool
	At           time.Time
}

// CategoryAccuracy aggregates attempts for one category.
type CategoryAccuracy struct {
	Category string
	Total    int
	Correct  int
}

// Accuracy returns Correct/Total, or 0 when there are no attempts.
func (c CategoryAccuracy) Accuracy() float64 {
	if c.Total == 0 {
		return 0
	}
	return float64(c.Correct) / float64(c.Total)
}

// AttemptRepo persists answer attempts across sessions.
type AttemptRepo interface {
	// AppendAttempt records an attempt.
	AppendAttempt(ctx context.Context, data AttemptData) error

	// QueryAttempts returns attempts newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptData, error)

	// AccuracyByCategory returns per-category totals ordered by category.
	AccuracyByCategory(ctx context.Context) ([]CategoryAccuracy, error)

	// Reset deletes all attempts.
	Reset(ctx context.Context) error
}

// OracleCallData captures the data for a single similarity oracle call.
type OracleCallData struct {
	Seq          int64
	Provider     string
	Model        string
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	Score        *float64
	At           time.Time
}

// ModelUsage aggregates oracle calls per provider and model.
type ModelUsage struct {
	Provider     string
	Model        string
	Calls        int
	Failures     int
	TotalLatency time.Duration
}

// OracleCallRepo provides append and query access to oracle call events.
type OracleCallRepo interface {
	// AppendOracleCall records a similarity oracle call.
	AppendOracleCall(ctx context.Context, data OracleCallData) error

	// QueryOracleCalls returns calls newest first. Only Limit is honored.
	QueryOracleCalls(ctx context.Context, opts QueryOpts) ([]OracleCallData, error)

	// UsageByModel returns call counts grouped by provider and model.
	UsageByModel(ctx context.Context) ([]ModelUsage, error)
}

package oracle

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/interview-practice/internal/store"
)

// CallRecorder persists oracle call events.
type CallRecorder interface {
	AppendOracleCall(ctx context.Context, data store.OracleCallData) error
}

// LoggingOracle is a decorator that logs every call and records it through
// a CallRecorder when one is set.
type LoggingOracle struct {
	inner    Oracle
	provider string
	recorder CallRecorder
	log      *zap.Logger
}

// WithLogging wraps an Oracle with call logging. rec and log may be nil.
func WithLogging(o Oracle, provider string, rec CallRecorder, log *zap.Logger) Oracle {
	if log == nil {
		log = zap.NewNop()
	}
	return &LoggingOracle{inner: o, provider: provider, recorder: rec, log: log}
}

func (l *LoggingOracle) Similarity(ctx context.Context, a, b string) (float64, error) {
	start := time.Now()
	score, err := l.inner.Similarity(ctx, a, b)
	latency := time.Since(start)

	fields := []zap.Field{
		zap.String("provider", l.provider),
		zap.String("model", l.inner.ModelID()),
		zap.Duration("latency", latency),
	}
	if err != nil {
		l.log.Debug("oracle call failed", append(fields, zap.Error(err))...)
	} else {
		l.log.Debug("oracle call", append(fields, zap.Float64("score", score))...)
	}

	if l.recorder == nil {
		return score, err
	}

	data := store.OracleCallData{
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
		At:        start,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	} else {
		data.Score = &score
	}

	// Recording is best effort; the caller still gets the score.
	if recErr := l.recorder.AppendOracleCall(ctx, data); recErr != nil {
		l.log.Warn("failed to record oracle call", zap.Error(recErr))
	}

	return score, err
}

func (l *LoggingOracle) ModelID() string {
	return l.inner.ModelID()
}

package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

type scoredResult struct {
	score float64
	err   error
}

// scriptedOracle replays results in order and counts calls.
type scriptedOracle struct {
	results []scoredResult
	calls   int
}

func (s *scriptedOracle) Similarity(_ context.Context, _, _ string) (float64, error) {
	s.calls++
	if len(s.results) == 0 {
		return 0, &ErrProviderUnavailable{}
	}
	r := s.results[0]
	s.results = s.results[1:]
	return r.score, r.err
}

func (s *scriptedOracle) ModelID() string { return "scripted" }

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	inner := &scriptedOracle{results: []scoredResult{{score: 0.7}}}
	o := WithRetry(inner, retryConfig())

	got, err := o.Similarity(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.7 {
		t.Fatalf("score = %v, want 0.7", got)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 call, got %d", inner.calls)
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	inner := &scriptedOracle{results: []scoredResult{
		{err: &ErrProviderUnavailable{Err: errors.New("down")}},
		{score: 0.5},
	}}
	o := WithRetry(inner, retryConfig())

	got, err := o.Similarity(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 0.5 {
		t.Fatalf("score = %v, want 0.5", got)
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", inner.calls)
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	inner := &scriptedOracle{results: []scoredResult{
		{err: &ErrProviderUnavailable{Err: errors.New("down")}},
		{err: &ErrProviderUnavailable{Err: errors.New("down")}},
		{err: &ErrProviderUnavailable{Err: errors.New("down")}},
	}}
	o := WithRetry(inner, retryConfig())

	if _, err := o.Similarity(context.Background(), "a", "b"); err == nil {
		t.Fatal("expected error")
	}
	if inner.calls != 3 {
		t.Fatalf("expected 3 calls, got %d", inner.calls)
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	inner := &scriptedOracle{results: []scoredResult{
		{err: &ErrInvalidResponse{Content: json.RawMessage(`{}`), Err: errors.New("bad")}},
		{err: &ErrInvalidResponse{Content: json.RawMessage(`{}`), Err: errors.New("bad")}},
		{score: 1},
	}}
	o := WithRetry(inner, retryConfig())

	_, err := o.Similarity(context.Background(), "a", "b")
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if inner.calls != 2 {
		t.Fatalf("expected 2 calls, got %d", inner.calls)
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	inner := &scriptedOracle{results: []scoredResult{{err: context.Canceled}}}
	o := WithRetry(inner, retryConfig())

	_, err := o.Similarity(context.Background(), "a", "b")
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 call, got %d", inner.calls)
	}
}

func TestRetry_RateLimitRespectsRetryAfter(t *testing.T) {
	inner := &scriptedOracle{results: []scoredResult{
		{err: &ErrRateLimit{RetryAfter: 5 * time.Millisecond, Err: errors.New("slow down")}},
		{score: 0.9},
	}}
	o := WithRetry(inner, retryConfig())

	start := time.Now()
	if _, err := o.Similarity(context.Background(), "a", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Fatalf("expected to wait at least 5ms, waited %v", elapsed)
	}
}

func TestRetry_ZeroAttemptsStillCallsOnce(t *testing.T) {
	inner := &scriptedOracle{results: []scoredResult{{score: 0.1}}}
	o := WithRetry(inner, RetryConfig{})

	if _, err := o.Similarity(context.Background(), "a", "b"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 call, got %d", inner.calls)
	}
}

func TestTimeout_CancelsSlowCalls(t *testing.T) {
	slow := WithTimeout(blockingOracle{}, 5*time.Millisecond)

	_, err := slow.Similarity(context.Background(), "a", "b")
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if slow.ModelID() != "blocking" {
		t.Fatalf("unexpected model id %q", slow.ModelID())
	}
}

func TestTimeout_NonPositiveIsNoop(t *testing.T) {
	inner := &scriptedOracle{}
	if got := WithTimeout(inner, 0); got != Oracle(inner) {
		t.Fatal("expected the inner oracle back")
	}
}

// blockingOracle waits for its context to end.
type blockingOracle struct{}

func (blockingOracle) Similarity(ctx context.Context, _, _ string) (float64, error) {
	<-ctx.Done()
	return 0, ctx.Err()
}

func (blockingOracle) ModelID() string { return "blocking" }

func TestRetry_DimensionMismatchNotRetried(t *testing.T) {
	_, mismatch := Cosine([]float32{1, 2}, []float32{1, 2, 3})
	inner := &scriptedOracle{results: []scoredResult{{err: mismatch}, {score: 1}}}
	o := WithRetry(inner, retryConfig())

	_, err := o.Similarity(context.Background(), "a", "b")
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
	if inner.calls != 1 {
		t.Fatalf("expected 1 call, got %d", inner.calls)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want retryKind
	}{
		{"canceled", context.Canceled, retryNever},
		{"deadline", context.DeadlineExceeded, retryNever},
		{"dimension mismatch", ErrDimensionMismatch, retryNever},
		{"invalid response", &ErrInvalidResponse{Err: errors.New("bad")}, retryOnce},
		{"rate limit", &ErrRateLimit{Err: errors.New("429")}, retryTransient},
		{"unavailable", &ErrProviderUnavailable{Err: errors.New("down")}, retryTransient},
		{"plain", errors.New("connection reset"), retryTransient},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := classify(tt.err); got != tt.want {
				t.Fatalf("classify(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

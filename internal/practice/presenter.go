package practice

import (
	"context"

	"github.com/abhisek/interview-practice/internal/bank"
)

// Feedback is shown after each checked answer.
type Feedback struct {
	Question bank.Question
	Answer   string
	Method   Method
	Matched  bool
	Score    float64
}

// ShowScore reports whether the score is meaningful to display.
// Exact and substring scores are just the match bit.
func (f Feedback) ShowScore() bool {
	return f.Method == MethodSemantic
}

// Presenter renders practice output. It carries no return-value semantics.
type Presenter interface {
	ShowQuestion(q bank.Question)
	ShowFeedback(f Feedback)
	ShowSummary(s Summary)
}

// NopPresenter discards everything.
type NopPresenter struct{}

func (NopPresenter) ShowQuestion(bank.Question) {}
func (NopPresenter) ShowFeedback(Feedback)      {}
func (NopPresenter) ShowSummary(Summary)        {}

// Oracle scores the semantic similarity of two texts.
// oracle.Oracle implementations satisfy it.
type Oracle interface {
	Similarity(ctx context.Context, a, b string) (float64, error)
}

// Rand is the source of random choices. *rand.Rand from math/rand/v2
// satisfies it.
type Rand interface {
	IntN(n int) int
}

// Recorder persists attempts beyond the lifetime of the Manager.
type Recorder interface {
	RecordAttempt(ctx context.Context, a Attempt, q bank.Question) error
}

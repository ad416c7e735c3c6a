package practice

import (
	"context"
	"fmt"

	"github.com/abhisek/interview-practice/internal/bank"
)

// Check is an answer captured for scoring. Score touches no Manager state,
// so it may run on another goroutine while the Manager stays with its owner;
// the owner applies the result with Commit.
type Check struct {
	question  bank.Question
	answer    string
	method    Method
	threshold float64
	oracle    Oracle
}

// Question returns the question the answer was given for.
func (c *Check) Question() bank.Question {
	return c.question
}

// PrepareCheck validates the selection and method and captures userText.
// Nothing is recorded until Commit.
func (m *Manager) PrepareCheck(userText string, method Method, opts ...CheckOption) (*Check, error) {
	cfg := checkConfig{threshold: DefaultThreshold}
	for _, o := range opts {
		o(&cfg)
	}

	q, ok := m.Current()
	if !ok {
		return nil, ErrNoActiveQuestion
	}

	switch method {
	case MethodExact, MethodSubstring:
	case MethodSemantic:
		if m.oracle == nil {
			return nil, ErrOracleUnavailable
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedMethod, string(method))
	}

	return &Check{
		question:  q,
		answer:    userText,
		method:    method,
		threshold: cfg.threshold,
		oracle:    m.oracle,
	}, nil
}

// Score compares the answer with the reference. Only semantic checks block.
func (c *Check) Score(ctx context.Context) (Result, error) {
	var (
		matched bool
		score   float64
	)
	switch c.method {
	case MethodExact:
		matched = matchExact(c.answer, c.question.Answer)
		score = boolScore(matched)
	case MethodSubstring:
		matched = matchSubstring(c.answer, c.question.Answer)
		score = boolScore(matched)
	case MethodSemantic:
		s, err := c.oracle.Similarity(ctx, c.answer, c.question.Answer)
		if err != nil {
			return Result{}, fmt.Errorf("semantic similarity: %w", err)
		}
		score = s
		matched = score >= c.threshold
	}
	return Result{Matched: matched, Score: &score}, nil
}

// Commit appends the attempt for c, records it and presents feedback.
func (m *Manager) Commit(ctx context.Context, c *Check, res Result) {
	var score float64
	if res.Score != nil {
		score = *res.Score
	}
	q := c.question
	a := Attempt{
		QuestionID: q.ID,
		Category:   q.Category,
		Method:     c.method,
		Answer:     c.answer,
		Score:      &score,
		Matched:    res.Matched,
		At:         m.now(),
	}
	m.attempts[q.ID] = append(m.attempts[q.ID], a)
	m.record(ctx, a, q)

	m.presenter.ShowFeedback(Feedback{
		Question: q,
		Answer:   c.answer,
		Method:   c.method,
		Matched:  res.Matched,
		Score:    score,
	})
}

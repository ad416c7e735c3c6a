package store

import (
	"context"

	"github.com/abhisek/interview-practice/internal/bank"
	"github.com/abhisek/interview-practice/internal/practice"
)

// Recorder persists practice attempts for a single session.
type Recorder struct {
	repo      AttemptRepo
	sessionID string
}

// NewRecorder returns a practice.Recorder writing to repo under sessionID.
func NewRecorder(repo AttemptRepo, sessionID string) *Recorder {
	return &Recorder{repo: repo, sessionID: sessionID}
}

// SessionID returns the session the recorder writes under.
func (r *Recorder) SessionID() string {
	return r.sessionID
}

func (r *Recorder) RecordAttempt(ctx context.Context, a practice.Attempt, q bank.Question) error {
	return r.repo.AppendAttempt(ctx, AttemptData{
		SessionID:    r.sessionID,
		QuestionID:   a.QuestionID,
		Category:     a.Category,
		QuestionText: q.Question,
		Method:       a.Method.String(),
		Answer:       a.Answer,
		Score:        a.Score,
		Matched:      a.Matched,
		At:           a.At,
	})
}

var _ practice.Recorder = (*Recorder)(nil)

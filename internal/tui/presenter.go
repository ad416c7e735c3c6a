package tui

import (
	"github.com/abhisek/interview-practice/internal/bank"
	"github.com/abhisek/interview-practice/internal/practice"
)

// Presenter captures what the Manager presents so screens can render it.
// Pass it as practice.Options.Presenter.
type Presenter struct {
	question bank.Question
	feedback *practice.Feedback
	summary  *practice.Summary

	correct int
	total   int
}

// NewPresenter returns an empty capturing Presenter.
func NewPresenter() *Presenter {
	return &Presenter{}
}

func (p *Presenter) ShowQuestion(q bank.Question) {
	p.question = q
	p.feedback = nil
}

func (p *Presenter) ShowFeedback(f practice.Feedback) {
	p.feedback = &f
	p.total++
	if f.Matched {
		p.correct++
	}
}

func (p *Presenter) ShowSummary(s practice.Summary) {
	p.summary = &s
}

// Score returns the running correct and total counts.
func (p *Presenter) Score() (correct, total int) {
	return p.correct, p.total
}

package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interview-practice/internal/practice"
	"github.com/abhisek/interview-practice/internal/ui/components"
	"github.com/abhisek/interview-practice/internal/ui/layout"
)

type phase int

const (
	phaseAnswering phase = iota // waiting for input
	phaseChecking               // CheckAnswer in flight
	phaseFeedback               // showing the verdict
)

// Settings controls how answers are checked.
type Settings struct {
	Category  string
	Method    practice.Method
	Threshold float64
}

// practiceScreen serves random questions and checks answers.
type practiceScreen struct {
	ctx       context.Context
	manager   *practice.Manager
	presenter *Presenter
	settings  Settings
	input     components.AnswerInput
	phase     phase
	errMsg    string
	fatal     bool // no question can be selected

	cancel    context.CancelFunc // cancels the check in flight
	finishing bool               // esc pressed while checking
}

func newPracticeScreen(ctx context.Context, m *practice.Manager, p *Presenter, s Settings) *practiceScreen {
	if s.Threshold == 0 {
		s.Threshold = practice.DefaultThreshold
	}
	return &practiceScreen{
		ctx:       ctx,
		manager:   m,
		presenter: p,
		settings:  s,
		input:     components.NewAnswerInput("Type your answer...", 0),
	}
}

func (s *practiceScreen) Init() tea.Cmd {
	s.selectNext()
	return s.input.Init()
}

func (s *practiceScreen) Title() string {
	if s.settings.Category != "" {
		return "Practice · " + s.settings.Category
	}
	return "Practice"
}

func (s *practiceScreen) KeyHints() []layout.KeyHint {
	switch {
	case s.fatal:
		return []layout.KeyHint{{Key: "any key", Description: "Quit"}}
	case s.phase == phaseFeedback:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next question"},
			{Key: "Esc", Description: "Finish"},
		}
	case s.phase == phaseChecking && s.finishing:
		return []layout.KeyHint{{Key: "ctrl+c", Description: "Quit"}}
	case s.phase == phaseChecking:
		return []layout.KeyHint{{Key: "Esc", Description: "Cancel and finish"}}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Submit"},
		{Key: "Esc", Description: "Finish"},
	}
}

func (s *practiceScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case checkDoneMsg:
		return s.handleCheckDone(msg)
	case nextQuestionMsg:
		s.selectNext()
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.phase == phaseAnswering {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *practiceScreen) handleKey(msg tea.KeyMsg) (Screen, tea.Cmd) {
	if s.fatal {
		return s, tea.Quit
	}

	key := msg.String()
	if key == "esc" {
		if s.phase == phaseChecking {
			// The summary waits for checkDoneMsg so the Manager is only
			// touched from Update.
			s.finishing = true
			s.cancel()
			return s, nil
		}
		return s.finish()
	}

	switch s.phase {
	case phaseFeedback:
		if key == "enter" || key == "n" {
			return s, func() tea.Msg { return nextQuestionMsg{} }
		}
		return s, nil
	case phaseChecking:
		return s, nil
	}

	if key == "enter" {
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

// submit captures the typed answer and scores it asynchronously. The Cmd
// only runs the comparison; the attempt is committed in handleCheckDone.
func (s *practiceScreen) submit() (Screen, tea.Cmd) {
	if s.input.Blank() {
		return s, nil
	}
	c, err := s.manager.PrepareCheck(s.input.Value(), s.settings.Method, practice.WithThreshold(s.settings.Threshold))
	if err != nil {
		s.errMsg = err.Error()
		return s, nil
	}

	ctx, cancel := context.WithCancel(s.ctx)
	s.cancel = cancel
	s.phase = phaseChecking
	s.errMsg = ""

	return s, func() tea.Msg {
		res, err := c.Score(ctx)
		return checkDoneMsg{Check: c, Result: res, Err: err}
	}
}

func (s *practiceScreen) handleCheckDone(msg checkDoneMsg) (Screen, tea.Cmd) {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	if msg.Err == nil {
		s.manager.Commit(s.ctx, msg.Check, msg.Result)
	}
	if s.finishing {
		return s.finish()
	}
	if msg.Err != nil {
		// Let the user retry or switch strategy; nothing was recorded.
		s.errMsg = msg.Err.Error()
		s.phase = phaseAnswering
		return s, nil
	}
	s.phase = phaseFeedback
	return s, nil
}

func (s *practiceScreen) selectNext() {
	s.input.Reset()
	s.phase = phaseAnswering
	s.errMsg = ""
	if _, err := s.manager.SelectQuestion(practice.Random().In(s.settings.Category)); err != nil {
		s.errMsg = err.Error()
		s.fatal = true
	}
}

func (s *practiceScreen) finish() (Screen, tea.Cmd) {
	s.manager.Summary()
	next := newSummaryScreen(s.presenter)
	return next, next.Init()
}

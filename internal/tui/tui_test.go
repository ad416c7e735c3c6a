package tui

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/interview-practice/internal/bank"
	"github.com/abhisek/interview-practice/internal/practice"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(t *testing.T, scr Screen, text string) Screen {
	t.Helper()
	for _, r := range text {
		scr, _ = scr.Update(keyPress(r))
	}
	return scr
}

func testScreen(t *testing.T, qs ...bank.Question) *practiceScreen {
	t.Helper()
	if len(qs) == 0 {
		qs = []bank.Question{bank.New("q1", "What is a hash map?", "A structure mapping keys to values", "data-structures")}
	}
	p := NewPresenter()
	m := practice.New(practice.Options{Bank: qs, Presenter: p})
	s := newPracticeScreen(context.Background(), m, p, Settings{Method: practice.MethodSubstring})
	s.Init()
	return s
}

// run executes cmd and feeds its message back, as the program loop would.
func run(t *testing.T, scr Screen, cmd tea.Cmd) Screen {
	t.Helper()
	require.NotNil(t, cmd)
	scr, _ = scr.Update(cmd())
	return scr
}

func TestPracticeScreen_ShowsQuestion(t *testing.T) {
	s := testScreen(t)

	assert.Equal(t, "What is a hash map?", s.presenter.question.Question)
	view := s.View(80, 24)
	assert.Contains(t, view, "What is a hash map?")
	assert.Contains(t, view, "data-structures")
	assert.NotContains(t, view, "mapping keys to values")
}

func TestPracticeScreen_SubmitAndFeedback(t *testing.T) {
	s := testScreen(t)

	var scr Screen = s
	scr = typeText(t, scr, "mapping keys")
	assert.Equal(t, "mapping keys", s.input.Value())

	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	assert.Equal(t, phaseChecking, s.phase)
	scr = run(t, scr, cmd)

	assert.Equal(t, phaseFeedback, s.phase)
	require.NotNil(t, s.presenter.feedback)
	assert.True(t, s.presenter.feedback.Matched)
	correct, total := s.presenter.Score()
	assert.Equal(t, 1, correct)
	assert.Equal(t, 1, total)
	assert.Contains(t, scr.View(80, 24), "Reference Answer")

	// Enter moves on to the next question with a cleared input.
	scr, cmd = scr.Update(specialKey(tea.KeyEnter))
	run(t, scr, cmd)
	assert.Equal(t, phaseAnswering, s.phase)
	assert.Empty(t, s.input.Value())
	assert.Nil(t, s.presenter.feedback)
}

func TestPracticeScreen_BlankAnswerIgnored(t *testing.T) {
	s := testScreen(t)

	var scr Screen = s
	scr = typeText(t, scr, "   ")
	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)
	assert.Equal(t, phaseAnswering, s.phase)
}

func TestPracticeScreen_CheckErrorKeepsAnswering(t *testing.T) {
	s := testScreen(t)
	s.settings.Method = practice.MethodSemantic // no oracle configured

	var scr Screen = s
	scr = typeText(t, scr, "a map")
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	assert.Nil(t, cmd)

	assert.Equal(t, phaseAnswering, s.phase)
	assert.Contains(t, scr.View(80, 24), "oracle")
	assert.Empty(t, s.manager.Attempts("q1"))
}

func TestPracticeScreen_OracleErrorKeepsAnswering(t *testing.T) {
	s := gatedScreen(t, &gatedOracle{err: errors.New("quota exceeded")})

	var scr Screen = s
	scr = typeText(t, scr, "ans")
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	scr = run(t, scr, cmd)

	assert.Equal(t, phaseAnswering, s.phase)
	assert.Contains(t, scr.View(80, 24), "quota exceeded")
	assert.Empty(t, s.manager.Attempts("q1"))
}

// gatedOracle blocks until release is closed or ctx is done.
type gatedOracle struct {
	started chan struct{}
	release chan struct{}
	err     error
}

func newGatedOracle() *gatedOracle {
	return &gatedOracle{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (o *gatedOracle) Similarity(ctx context.Context, _, _ string) (float64, error) {
	if o.err != nil {
		return 0, o.err
	}
	o.started <- struct{}{}
	select {
	case <-o.release:
		return 0.9, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

func gatedScreen(t *testing.T, o practice.Oracle) *practiceScreen {
	t.Helper()
	p := NewPresenter()
	m := practice.New(practice.Options{
		Bank:      []bank.Question{bank.New("q1", "What is a hash map?", "A key-value store with O(1) average lookup", "data-structures")},
		Presenter: p,
		Oracle:    o,
	})
	s := newPracticeScreen(context.Background(), m, p, Settings{Method: practice.MethodSemantic})
	s.Init()
	return s
}

// startCheck submits an answer and runs the check Cmd on its own goroutine,
// as the Bubble Tea runtime does.
func startCheck(t *testing.T, s *practiceScreen, o *gatedOracle) <-chan tea.Msg {
	t.Helper()
	scr := typeText(t, s, "ans")
	_, cmd := scr.Update(specialKey(tea.KeyEnter))
	require.NotNil(t, cmd)
	require.Equal(t, phaseChecking, s.phase)

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- cmd() }()
	<-o.started
	return msgs
}

// Run the following with -race: the Cmd goroutine must not share state
// with Update and View.
func TestPracticeScreen_EscWhileCheckingCancels(t *testing.T) {
	o := newGatedOracle()
	s := gatedScreen(t, o)
	msgs := startCheck(t, s, o)

	var scr Screen = s
	scr, cmd := scr.Update(specialKey(tea.KeyEscape))
	assert.Nil(t, cmd)
	assert.Same(t, s, scr, "summary waits for the check to finish")
	assert.True(t, s.finishing)
	assert.Contains(t, scr.View(80, 24), "Checking answer")
	assert.Equal(t, "Quit", s.KeyHints()[0].Description)

	scr, _ = scr.Update(<-msgs)
	summary, ok := scr.(*summaryScreen)
	require.True(t, ok)
	require.NotNil(t, s.presenter.summary)
	assert.Equal(t, 0, s.presenter.summary.Total)
	assert.Empty(t, s.manager.Attempts("q1"))
	assert.Contains(t, summary.View(80, 24), "Total answered: 0")
}

func TestPracticeScreen_EscWhileCheckingKeepsCompletedAttempt(t *testing.T) {
	o := newGatedOracle()
	s := gatedScreen(t, o)
	msgs := startCheck(t, s, o)

	// The oracle answers before it sees the cancellation.
	close(o.release)
	msg := <-msgs

	var scr Screen = s
	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	scr, _ = scr.Update(msg)

	_, ok := scr.(*summaryScreen)
	require.True(t, ok)
	require.NotNil(t, s.presenter.summary)
	assert.Equal(t, 1, s.presenter.summary.Total)
	assert.Equal(t, 1, s.presenter.summary.Correct)
	assert.Len(t, s.manager.Attempts("q1"), 1)
}

func TestPracticeScreen_ViewDuringCheck(t *testing.T) {
	o := newGatedOracle()
	s := gatedScreen(t, o)
	msgs := startCheck(t, s, o)

	assert.Contains(t, s.View(80, 24), "Checking answer")
	correct, total := s.presenter.Score()
	assert.Zero(t, correct)
	assert.Zero(t, total)

	close(o.release)
	run(t, s, func() tea.Msg { return <-msgs })
	assert.Equal(t, phaseFeedback, s.phase)
	_, total = s.presenter.Score()
	assert.Equal(t, 1, total)
}

func TestPracticeScreen_EmptyCategory(t *testing.T) {
	p := NewPresenter()
	m := practice.New(practice.Options{
		Bank:      []bank.Question{bank.New("q1", "Q", "A", "")},
		Presenter: p,
	})
	s := newPracticeScreen(context.Background(), m, p, Settings{Category: "nonexistent", Method: practice.MethodExact})
	s.Init()

	assert.True(t, s.fatal)
	assert.Contains(t, s.View(80, 24), "nonexistent")
	_, cmd := s.Update(keyPress('x'))
	assert.NotNil(t, cmd)
}

func TestPracticeScreen_FinishShowsSummary(t *testing.T) {
	s := testScreen(t)

	var scr Screen = s
	scr = typeText(t, scr, "wrong")
	scr, cmd := scr.Update(specialKey(tea.KeyEnter))
	scr = run(t, scr, cmd)

	scr, _ = scr.Update(specialKey(tea.KeyEscape))
	summary, ok := scr.(*summaryScreen)
	require.True(t, ok, "esc should switch to the summary screen")
	assert.Equal(t, "Summary", summary.Title())

	view := summary.View(80, 24)
	assert.Contains(t, view, "Total answered: 1")
	assert.Contains(t, view, "Accuracy: 0.0%")

	_, cmd = summary.Update(keyPress('q'))
	assert.NotNil(t, cmd)
}

func TestPracticeScreen_KeyHints(t *testing.T) {
	s := testScreen(t)
	hints := s.KeyHints()
	require.NotEmpty(t, hints)
	assert.Equal(t, "Submit", hints[0].Description)

	s.phase = phaseFeedback
	assert.Equal(t, "Next question", s.KeyHints()[0].Description)
}

func TestModel_View(t *testing.T) {
	p := NewPresenter()
	m := practice.New(practice.Options{
		Bank:      []bank.Question{bank.New("q1", "What is a goroutine?", "A lightweight thread", "go")},
		Presenter: p,
	})
	model := NewModel(context.Background(), m, p, Settings{Method: practice.MethodExact, Category: "go"})
	model.Init()

	// No size yet: nothing to draw.
	assert.Empty(t, model.render())

	updated, _ := model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	content := updated.(Model).render()
	assert.Contains(t, content, "Interview Practice")
	assert.Contains(t, content, "0/0 correct")
	assert.Contains(t, content, "What is a goroutine?")

	small, _ := model.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	assert.True(t, strings.Contains(small.(Model).render(), "too small"))
}

func TestModel_CtrlCQuits(t *testing.T) {
	p := NewPresenter()
	m := practice.New(practice.Options{Bank: []bank.Question{bank.New("q1", "Q", "A", "")}, Presenter: p})
	model := NewModel(context.Background(), m, p, Settings{Method: practice.MethodExact})
	model.Init()

	_, cmd := model.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	_, isQuit := cmd().(tea.QuitMsg)
	assert.True(t, isQuit)
}

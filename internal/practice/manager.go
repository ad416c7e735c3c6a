// Package practice implements the interview practice session: a question
// bank, the current selection, answer checking and running accuracy.
package practice

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/interview-practice/internal/bank"
)

// Attempt is one checked answer for a question. Attempts are never mutated.
type Attempt struct {
	QuestionID string
	Category   string
	Method     Method
	Answer     string
	Score      *float64
	Matched    bool
	At         time.Time
}

// Result is the outcome of CheckAnswer.
type Result struct {
	Matched bool
	Score   *float64
}

// Options configures a Manager. Nil fields get defaults.
type Options struct {
	Bank      []bank.Question
	Oracle    Oracle // nil disables MethodSemantic
	Presenter Presenter
	Rand      Rand
	IDs       bank.IDGenerator
	Recorder  Recorder
	Logger    *zap.Logger
	Now       func() time.Time
}

// Manager owns the question bank and the state of one practice session.
// It is not safe for concurrent use.
type Manager struct {
	questions []bank.Question
	oracle    Oracle
	presenter Presenter
	rand      Rand
	ids       bank.IDGenerator
	recorder  Recorder
	log       *zap.Logger
	now       func() time.Time

	currentID string
	attempts  map[string][]Attempt
}

type globalRand struct{}

func (globalRand) IntN(n int) int { return rand.IntN(n) }

// New creates a Manager from opts.
func New(opts Options) *Manager {
	m := &Manager{
		questions: slices.Clone(opts.Bank),
		oracle:    opts.Oracle,
		presenter: opts.Presenter,
		rand:      opts.Rand,
		ids:       opts.IDs,
		recorder:  opts.Recorder,
		log:       opts.Logger,
		now:       opts.Now,
		attempts:  make(map[string][]Attempt),
	}
	if m.presenter == nil {
		m.presenter = NopPresenter{}
	}
	if m.rand == nil {
		m.rand = globalRand{}
	}
	if m.ids == nil {
		m.ids = bank.UUIDGenerator{}
	}
	if m.log == nil {
		m.log = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	return m
}

// SemanticAvailable reports whether MethodSemantic can be used.
func (m *Manager) SemanticAvailable() bool {
	return m.oracle != nil
}

// AddQuestion appends a new question with a fresh id and returns it.
// An empty category becomes bank.DefaultCategory.
func (m *Manager) AddQuestion(question, answer, category string) bank.Question {
	id := m.ids.NewID()
	for m.indexOf(id) >= 0 {
		id = m.ids.NewID()
	}
	q := bank.New(id, question, answer, category)
	m.questions = append(m.questions, q)
	return q
}

// ListQuestions returns the questions in category, or all of them when
// category is empty. The caller may modify the result.
func (m *Manager) ListQuestions(category string) []bank.Question {
	return bank.Filter(m.questions, category)
}

// SelectQuestion makes a question current and presents it.
func (m *Manager) SelectQuestion(sel Selection) (bank.Question, error) {
	if len(m.questions) == 0 {
		return bank.Question{}, ErrEmptyBank
	}

	candidates := bank.Filter(m.questions, sel.category)
	if len(candidates) == 0 {
		return bank.Question{}, fmt.Errorf("%w %q", ErrEmptyCategory, sel.category)
	}

	var q bank.Question
	switch {
	case sel.random:
		q = candidates[m.rand.IntN(len(candidates))]
	case !sel.hasIndex:
		return bank.Question{}, fmt.Errorf("%w: no index given", ErrInvalidIndex)
	case sel.index < 0 || sel.index >= len(candidates):
		return bank.Question{}, fmt.Errorf("%w: %d not in [0, %d)", ErrInvalidIndex, sel.index, len(candidates))
	default:
		q = candidates[sel.index]
	}

	m.currentID = q.ID
	m.presenter.ShowQuestion(q)
	return q, nil
}

// Current returns the selected question, if any.
func (m *Manager) Current() (bank.Question, bool) {
	if m.currentID == "" {
		return bank.Question{}, false
	}
	i := m.indexOf(m.currentID)
	if i < 0 {
		return bank.Question{}, false
	}
	return m.questions[i], true
}

// CheckOption tweaks a single CheckAnswer call.
type CheckOption func(*checkConfig)

type checkConfig struct {
	threshold float64
}

// WithThreshold sets the semantic match threshold. Default: DefaultThreshold.
func WithThreshold(t float64) CheckOption {
	return func(c *checkConfig) { c.threshold = t }
}

// CheckAnswer scores userText against the current question's reference
// answer, records the attempt and presents feedback. It is PrepareCheck,
// Check.Score and Commit run back to back.
func (m *Manager) CheckAnswer(ctx context.Context, userText string, method Method, opts ...CheckOption) (Result, error) {
	c, err := m.PrepareCheck(userText, method, opts...)
	if err != nil {
		return Result{}, err
	}
	res, err := c.Score(ctx)
	if err != nil {
		return Result{}, err
	}
	m.Commit(ctx, c, res)
	return res, nil
}

func (m *Manager) record(ctx context.Context, a Attempt, q bank.Question) {
	if m.recorder == nil {
		return
	}
	if err := m.recorder.RecordAttempt(ctx, a, q); err != nil {
		m.log.Warn("failed to record attempt",
			zap.String("question_id", q.ID),
			zap.Error(err),
		)
	}
}

// Attempts returns the attempts for questionID in submission order.
func (m *Manager) Attempts(questionID string) []Attempt {
	return slices.Clone(m.attempts[questionID])
}

// Summary totals the session's attempts and presents the result.
func (m *Manager) Summary() Summary {
	s := buildSummary(m.attempts)
	m.presenter.ShowSummary(s)
	return s
}

// Save writes the bank to path, overwriting any existing file.
func (m *Manager) Save(path string) error {
	return bank.Save(path, m.questions)
}

// Load replaces the bank with the contents of path. On failure the current
// bank is left untouched. The selection is cleared when its question is no
// longer in the bank; attempts are kept.
func (m *Manager) Load(path string) error {
	qs, err := bank.Load(path)
	if err != nil {
		return err
	}
	m.questions = qs
	if m.currentID != "" && m.indexOf(m.currentID) < 0 {
		m.currentID = ""
	}
	return nil
}

func (m *Manager) indexOf(id string) int {
	return slices.IndexFunc(m.questions, func(q bank.Question) bool { return q.ID == id })
}

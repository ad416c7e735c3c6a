//go:build cucumber

package practice

import (
	"context"
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/cucumber/godog"

	"github.com/abhisek/interview-practice/internal/bank"
)

// TestPracticeFeatures executes the practice session scenarios via godog.
func TestPracticeFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "practice",
		ScenarioInitializer: func(ctx *godog.ScenarioContext) { initializeScenario(ctx, t.TempDir()) },
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("testdata", "features")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

var namedErrors = map[string]error{
	"empty bank":         ErrEmptyBank,
	"empty category":     ErrEmptyCategory,
	"invalid index":      ErrInvalidIndex,
	"no active question": ErrNoActiveQuestion,
	"oracle unavailable": ErrOracleUnavailable,
	"unsupported method": ErrUnsupportedMethod,
}

type stubOracle float64

func (s stubOracle) Similarity(context.Context, string, string) (float64, error) {
	return float64(s), nil
}

// practiceState holds scenario state for the feature tests.
type practiceState struct {
	dir      string
	oracle   Oracle
	seed     []bank.Question
	manager  *Manager
	reloaded *Manager
	result   Result
	err      error
}

func initializeScenario(ctx *godog.ScenarioContext, dir string) {
	state := &practiceState{dir: dir}

	ctx.Step(`^a practice session$`, state.aPracticeSession)
	ctx.Step(`^the question "([^"]*)" with answer "([^"]*)" in category "([^"]*)"$`, state.theQuestion)
	ctx.Step(`^the similarity oracle returns (-?[\d.]+)$`, state.theOracleReturns)
	ctx.Step(`^I select question (\d+)$`, state.selectQuestion)
	ctx.Step(`^I select a random question in category "([^"]*)"$`, state.selectRandom)
	ctx.Step(`^I answer "([^"]*)" using "([^"]*)"$`, state.answer)
	ctx.Step(`^the answer is matched with score (-?[\d.]+)$`, state.matched)
	ctx.Step(`^the answer is not matched with score (-?[\d.]+)$`, state.notMatched)
	ctx.Step(`^the error is "([^"]*)"$`, state.theErrorIs)
	ctx.Step(`^the current question is "([^"]*)"$`, state.currentQuestionIs)
	ctx.Step(`^the summary shows (\d+) total, (\d+) correct and accuracy ([\d.]+)$`, state.summaryShows)
	ctx.Step(`^I save the bank and load it into a new session$`, state.saveAndLoad)
	ctx.Step(`^the new session has the same questions$`, state.sameQuestions)
}

func (s *practiceState) aPracticeSession() error {
	s.seed = nil
	s.oracle = nil
	s.err = nil
	s.manager = nil
	return nil
}

func (s *practiceState) theQuestion(question, answer, category string) error {
	s.seed = append(s.seed, bank.New(fmt.Sprintf("q%d", len(s.seed)+1), question, answer, category))
	return nil
}

func (s *practiceState) theOracleReturns(score float64) error {
	s.oracle = stubOracle(score)
	s.manager = nil
	return nil
}

// session builds the manager lazily so Given steps can configure it first.
func (s *practiceState) session() *Manager {
	if s.manager == nil {
		s.manager = New(Options{Bank: s.seed, Oracle: s.oracle})
	}
	return s.manager
}

func (s *practiceState) selectQuestion(i int) error {
	_, s.err = s.session().SelectQuestion(At(i))
	return s.err
}

func (s *practiceState) selectRandom(category string) error {
	_, s.err = s.session().SelectQuestion(Random().In(category))
	return nil
}

func (s *practiceState) answer(text, method string) error {
	s.result, s.err = s.session().CheckAnswer(context.Background(), text, Method(method))
	return nil
}

func (s *practiceState) expectResult(matched bool, score float64) error {
	if s.err != nil {
		return fmt.Errorf("unexpected error: %w", s.err)
	}
	if s.result.Matched != matched {
		return fmt.Errorf("matched = %v, want %v", s.result.Matched, matched)
	}
	if s.result.Score == nil || math.Abs(*s.result.Score-score) > 1e-9 {
		return fmt.Errorf("score = %v, want %v", s.result.Score, score)
	}
	return nil
}

func (s *practiceState) matched(score float64) error    { return s.expectResult(true, score) }
func (s *practiceState) notMatched(score float64) error { return s.expectResult(false, score) }

func (s *practiceState) theErrorIs(name string) error {
	want, ok := namedErrors[name]
	if !ok {
		return fmt.Errorf("unknown error name %q", name)
	}
	if !errors.Is(s.err, want) {
		return fmt.Errorf("error = %v, want %v", s.err, want)
	}
	return nil
}

func (s *practiceState) currentQuestionIs(text string) error {
	if s.err != nil {
		return s.err
	}
	q, ok := s.session().Current()
	if !ok {
		return errors.New("no current question")
	}
	if q.Question != text {
		return fmt.Errorf("current question = %q, want %q", q.Question, text)
	}
	return nil
}

func (s *practiceState) summaryShows(total, correct int, acc float64) error {
	sum := s.session().Summary()
	if sum.Total != total || sum.Correct != correct || math.Abs(sum.Accuracy-acc) > 1e-9 {
		return fmt.Errorf("summary = %d/%d (%.3f), want %d/%d (%.3f)",
			sum.Correct, sum.Total, sum.Accuracy, correct, total, acc)
	}
	return nil
}

func (s *practiceState) saveAndLoad() error {
	path := filepath.Join(s.dir, "questions.json")
	if err := s.session().Save(path); err != nil {
		return err
	}
	s.reloaded = New(Options{})
	return s.reloaded.Load(path)
}

func (s *practiceState) sameQuestions() error {
	want := s.session().ListQuestions("")
	got := s.reloaded.ListQuestions("")
	if !reflect.DeepEqual(want, got) {
		return fmt.Errorf("questions = %+v, want %+v", got, want)
	}
	return nil
}

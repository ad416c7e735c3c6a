package tui

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/interview-practice/internal/ui/console"
	"github.com/abhisek/interview-practice/internal/ui/layout"
	"github.com/abhisek/interview-practice/internal/ui/theme"
)

// summaryScreen shows the session summary until a key is pressed.
type summaryScreen struct {
	presenter *Presenter
}

func newSummaryScreen(p *Presenter) *summaryScreen {
	return &summaryScreen{presenter: p}
}

func (s *summaryScreen) Init() tea.Cmd { return nil }

func (s *summaryScreen) Title() string { return "Summary" }

func (s *summaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "any key", Description: "Quit"}}
}

func (s *summaryScreen) Update(msg tea.Msg) (Screen, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); ok {
		return s, tea.Quit
	}
	return s, nil
}

func (s *summaryScreen) View(width, height int) string {
	if s.presenter.summary == nil {
		return ""
	}
	return theme.Card.Width(max(width-4, 20)).Render(console.RenderSummary(*s.presenter.summary))
}

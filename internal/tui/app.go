package tui

import (
	"context"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/interview-practice/internal/practice"
	"github.com/abhisek/interview-practice/internal/ui/layout"
)

// Model is the root Bubble Tea model.
type Model struct {
	active    Screen
	presenter *Presenter
	width     int
	height    int
}

// NewModel creates the root model starting on the practice screen. m must
// have been created with p as its Presenter.
func NewModel(ctx context.Context, m *practice.Manager, p *Presenter, s Settings) Model {
	return Model{
		active:    newPracticeScreen(ctx, m, p, s),
		presenter: p,
	}
}

func (m Model) Init() tea.Cmd {
	return m.active.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.active, cmd = m.active.Update(msg)
	return m, cmd
}

func (m Model) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	v.SetContent(m.render())
	return v
}

// render draws the full frame, or nothing before the first size message.
func (m Model) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	correct, total := m.presenter.Score()
	header := layout.RenderHeader(m.active.Title(), correct, total, m.width)
	footer := layout.RenderFooter(m.active.KeyHints(), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.active.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(ctx context.Context, m *practice.Manager, p *Presenter, s Settings) error {
	prog := tea.NewProgram(NewModel(ctx, m, p, s), tea.WithContext(ctx))
	_, err := prog.Run()
	return err
}

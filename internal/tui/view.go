package tui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interview-practice/internal/ui/console"
	"github.com/abhisek/interview-practice/internal/ui/theme"
)

func (s *practiceScreen) View(width, height int) string {
	if s.fatal {
		return renderError(width, s.errMsg)
	}

	var b strings.Builder
	q := s.presenter.question

	b.WriteString(theme.Label.Render("  Category: ") + theme.Body.Render(q.Category))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", max(width-4, 0))))
	b.WriteString("\n\n")

	questionStyle := lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true)
	b.WriteString(questionStyle.Render(q.Question))
	b.WriteString("\n\n")

	switch s.phase {
	case phaseFeedback:
		if f := s.presenter.feedback; f != nil {
			b.WriteString(theme.Card.Width(max(width-4, 20)).Render(console.RenderFeedback(*f)))
		}
	case phaseChecking:
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render("Checking answer..."))
	default:
		b.WriteString("  " + s.input.View())
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(fmt.Sprintf("  method: %s", s.settings.Method)))
	}

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render("  " + s.errMsg))
	}

	return b.String()
}

func renderError(width int, msg string) string {
	return lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Error).
		Render("\n\n" + msg)
}

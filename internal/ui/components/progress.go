package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interview-practice/internal/ui/theme"
)

// AccuracyBar displays a ratio in [0, 1] as a horizontal bar.
type AccuracyBar struct {
	Label   string
	Percent float64
	Width   int
}

// NewAccuracyBar creates a new accuracy bar.
func NewAccuracyBar(label string, percent float64, width int) AccuracyBar {
	return AccuracyBar{
		Label:   label,
		Percent: percent,
		Width:   width,
	}
}

// View renders the bar followed by the percentage with one decimal.
func (p AccuracyBar) View() string {
	var result string

	if p.Label != "" {
		result += theme.Body.Render(p.Label) + "  "
	}

	const percentWidth = 8 // "  100.0%"
	barWidth := p.Width - lipgloss.Width(result) - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	filled = max(0, min(filled, barWidth))

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	result += lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("  %.1f%%", p.Percent*100))

	return result
}

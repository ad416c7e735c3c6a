// Package console renders practice output as styled text blocks.
package console

import (
	"fmt"
	"io"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/interview-practice/internal/bank"
	"github.com/abhisek/interview-practice/internal/practice"
	"github.com/abhisek/interview-practice/internal/ui/components"
	"github.com/abhisek/interview-practice/internal/ui/theme"
)

// barWidth is the width of the accuracy bars in the summary.
const barWidth = 40

// Presenter writes questions, feedback and summaries to w. Styling is
// downgraded to match what w supports, so plain buffers get plain text.
type Presenter struct {
	w io.Writer
}

// New returns a Presenter writing to w.
func New(w io.Writer) *Presenter {
	return &Presenter{w: w}
}

func (p *Presenter) ShowQuestion(q bank.Question) {
	p.print(RenderQuestion(q))
}

func (p *Presenter) ShowFeedback(f practice.Feedback) {
	p.print(RenderFeedback(f))
}

func (p *Presenter) ShowSummary(s practice.Summary) {
	p.print(RenderSummary(s))
}

func (p *Presenter) print(block string) {
	lipgloss.Fprintln(p.w, block)
}

// RenderQuestion renders the question block.
func RenderQuestion(q bank.Question) string {
	return theme.Heading.Render("? Question") + "\n" + theme.Body.Render(q.Question) + "\n"
}

// RenderFeedback renders the answer and reference followed by the verdict.
func RenderFeedback(f practice.Feedback) string {
	var b strings.Builder
	b.WriteString(theme.Heading.Render("Your Answer") + "\n")
	b.WriteString(theme.Body.Render(f.Answer) + "\n\n")
	b.WriteString(theme.Heading.Render("Reference Answer") + "\n")
	b.WriteString(theme.Body.Render(f.Question.Answer) + "\n\n")
	b.WriteString(theme.Label.Render("Category:") + " " + theme.Body.Render(f.Question.Category) + "\n")
	if f.ShowScore() {
		b.WriteString(theme.Label.Render("Semantic similarity score:") + " " +
			theme.Score.Render(fmt.Sprintf("%.2f", f.Score)) + "\n")
	}
	b.WriteString(theme.Label.Render("Result:") + " " + Verdict(f.Matched) + "\n")
	return b.String()
}

// Verdict renders the pass/fail marker.
func Verdict(matched bool) string {
	if matched {
		return theme.Correct.Render("✔ Correct")
	}
	return theme.Incorrect.Render("✘ Needs improvement")
}

// RenderSummary renders totals, overall accuracy and the per-category bars.
func RenderSummary(s practice.Summary) string {
	var b strings.Builder
	b.WriteString(theme.Title.Render("Performance Summary") + "\n")
	b.WriteString(fmt.Sprintf("- Total answered: %d\n", s.Total))
	b.WriteString(fmt.Sprintf("- Correct: %d\n", s.Correct))
	b.WriteString(fmt.Sprintf("- Accuracy: %.1f%%\n", s.Accuracy*100))

	if len(s.ByCategory) > 1 {
		b.WriteString("\n")
		width := 0
		for _, c := range s.ByCategory {
			width = max(width, lipgloss.Width(c.Category))
		}
		for _, c := range s.ByCategory {
			label := c.Category + strings.Repeat(" ", width-lipgloss.Width(c.Category))
			b.WriteString(components.NewAccuracyBar(label, c.Accuracy, barWidth+width).View() + "\n")
		}
	}
	return b.String()
}

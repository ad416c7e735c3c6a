package tui

import "github.com/abhisek/interview-practice/internal/practice"

// checkDoneMsg is sent when scoring an answer completes. The result is
// applied to the Manager by the screen, never by the Cmd.
type checkDoneMsg struct {
	Check  *practice.Check
	Result practice.Result
	Err    error
}

// nextQuestionMsg asks the practice screen to select another question.
type nextQuestionMsg struct{}

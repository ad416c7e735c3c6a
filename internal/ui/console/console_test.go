package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/abhisek/interview-practice/internal/bank"
	"github.com/abhisek/interview-practice/internal/practice"
)

var hashMap = bank.New("q1", "What is a hash map?", "A structure mapping keys to values", "data-structures")

func TestShowQuestion(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).ShowQuestion(hashMap)

	out := buf.String()
	assert.Contains(t, out, "Question")
	assert.Contains(t, out, "What is a hash map?")
	assert.NotContains(t, out, "mapping keys", "the reference answer must stay hidden")
}

func TestShowFeedback(t *testing.T) {
	tests := []struct {
		name      string
		fb        practice.Feedback
		want      []string
		wantAbsnt []string
	}{
		{
			name: "substring match",
			fb:   practice.Feedback{Question: hashMap, Answer: "mapping keys", Method: practice.MethodSubstring, Matched: true, Score: 1},
			want: []string{"Your Answer", "mapping keys", "Reference Answer", "A structure mapping keys to values",
				"Category:", "data-structures", "Correct"},
			wantAbsnt: []string{"Semantic similarity score", "Needs improvement"},
		},
		{
			name:      "semantic miss",
			fb:        practice.Feedback{Question: hashMap, Answer: "a list", Method: practice.MethodSemantic, Matched: false, Score: 0.4321},
			want:      []string{"Semantic similarity score:", "0.43", "Needs improvement"},
			wantAbsnt: []string{"✔"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			New(&buf).ShowFeedback(tt.fb)
			out := buf.String()
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.wantAbsnt {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestShowSummary(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).ShowSummary(practice.Summary{
		Total:    3,
		Correct:  2,
		Accuracy: 2.0 / 3.0,
		ByCategory: []practice.CategoryResult{
			{Category: "data-structures", Total: 2, Correct: 1, Accuracy: 0.5},
			{Category: "go", Total: 1, Correct: 1, Accuracy: 1},
		},
	})

	out := buf.String()
	assert.Contains(t, out, "Performance Summary")
	assert.Contains(t, out, "- Total answered: 3")
	assert.Contains(t, out, "- Correct: 2")
	assert.Contains(t, out, "- Accuracy: 66.7%")
	assert.Contains(t, out, "50.0%")
	assert.Contains(t, out, "100.0%")
}

func TestShowSummary_Empty(t *testing.T) {
	var buf bytes.Buffer
	New(&buf).ShowSummary(practice.Summary{})

	out := buf.String()
	assert.Contains(t, out, "- Accuracy: 0.0%")
	assert.Equal(t, 1, strings.Count(out, "%"), "no per-category bars without categories")
}

package bank

// DefaultCategory is assigned to questions added or loaded without a category.
const DefaultCategory = "general"

// Question is a single question/answer pair in the bank.
type Question struct {
	ID       string `json:"id" yaml:"id"`
	Question string `json:"question" yaml:"question"`
	Answer   string `json:"answer" yaml:"answer"`
	Category string `json:"category" yaml:"category"`
}

// New builds a Question, applying the default category when category is empty.
func New(id, question, answer, category string) Question {
	if category == "" {
		category = DefaultCategory
	}
	return Question{
		ID:       id,
		Question: question,
		Answer:   answer,
		Category: category,
	}
}

// Filter returns the questions whose category equals category, in order.
// An empty category matches every question. The result never aliases qs.
func Filter(qs []Question, category string) []Question {
	out := make([]Question, 0, len(qs))
	for _, q := range qs {
		if category == "" || q.Category == category {
			out = append(out, q)
		}
	}
	return out
}

// Categories returns the distinct categories in first-seen order.
func Categories(qs []Question) []string {
	seen := make(map[string]bool)
	var out []string
	for _, q := range qs {
		if !seen[q.Category] {
			seen[q.Category] = true
			out = append(out, q.Category)
		}
	}
	return out
}

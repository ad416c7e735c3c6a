package practice

// Selection describes which question SelectQuestion should make current.
// The zero value carries no index and is rejected with ErrInvalidIndex.
type Selection struct {
	index    int
	hasIndex bool
	random   bool
	category string
}

// At selects the question at index i of the (optionally filtered) bank.
func At(i int) Selection {
	return Selection{index: i, hasIndex: true}
}

// Random selects a uniformly random question.
func Random() Selection {
	return Selection{random: true}
}

// In restricts the candidates to category. An empty category means all.
func (s Selection) In(category string) Selection {
	s.category = category
	return s
}

// Category returns the category filter, if any.
func (s Selection) Category() string {
	return s.category
}

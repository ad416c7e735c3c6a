package practice

import "sort"

// Summary aggregates every attempt made in this session.
type Summary struct {
	Total      int
	Correct    int
	Accuracy   float64
	ByCategory []CategoryResult
}

// CategoryResult tracks per-category performance within a session.
type CategoryResult struct {
	Category string
	Total    int
	Correct  int
	Accuracy float64
}

func accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total)
}

// buildSummary totals all attempts, grouped by the category recorded on
// each attempt.
func buildSummary(attempts map[string][]Attempt) Summary {
	var s Summary
	per := make(map[string]*CategoryResult)
	for _, list := range attempts {
		for _, a := range list {
			s.Total++
			cr := per[a.Category]
			if cr == nil {
				cr = &CategoryResult{Category: a.Category}
				per[a.Category] = cr
			}
			cr.Total++
			if a.Matched {
				s.Correct++
				cr.Correct++
			}
		}
	}
	s.Accuracy = accuracy(s.Correct, s.Total)

	for _, cr := range per {
		cr.Accuracy = accuracy(cr.Correct, cr.Total)
		s.ByCategory = append(s.ByCategory, *cr)
	}
	sort.Slice(s.ByCategory, func(i, j int) bool {
		return s.ByCategory[i].Category < s.ByCategory[j].Category
	})
	return s
}

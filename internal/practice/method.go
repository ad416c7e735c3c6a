package practice

import (
	"fmt"
	"strings"
)

// Method selects how a submitted answer is compared to the reference.
type Method string

const (
	MethodExact     Method = "exact"
	MethodSubstring Method = "substring"
	MethodSemantic  Method = "semantic"
)

// DefaultThreshold is the minimum semantic similarity counted as a match.
const DefaultThreshold = 0.6

// ParseMethod converts a method name to a Method.
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case MethodExact, MethodSubstring, MethodSemantic:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedMethod, s)
	}
}

func (m Method) String() string {
	return string(m)
}

// matchExact reports whether the trimmed, lower-cased texts are equal.
func matchExact(answer, reference string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == strings.ToLower(strings.TrimSpace(reference))
}

// matchSubstring reports whether either lower-cased text contains the other.
// Whitespace is significant.
func matchSubstring(answer, reference string) bool {
	a, r := strings.ToLower(answer), strings.ToLower(reference)
	return strings.Contains(r, a) || strings.Contains(a, r)
}

func boolScore(ok bool) float64 {
	if ok {
		return 1.0
	}
	return 0.0
}

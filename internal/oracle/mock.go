package oracle

import (
	"context"
	"hash/fnv"
	"strings"
	"unicode"
)

// MockDimensions is the vector size produced by MockEmbedder.
const MockDimensions = 256

// MockEmbedder is a deterministic offline Embedder. Each text becomes a
// hashed bag of lower-cased words, so texts sharing vocabulary score higher.
// It is no substitute for a real model but keeps the semantic method usable
// without network access.
type MockEmbedder struct{}

// NewMockEmbedder returns a MockEmbedder.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

func (m *MockEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = hashedBagOfWords(t)
	}
	return out, nil
}

// ModelID returns "mock".
func (m *MockEmbedder) ModelID() string {
	return "mock"
}

func hashedBagOfWords(text string) []float32 {
	vec := make([]float32, MockDimensions)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		h := fnv.New32a()
		h.Write([]byte(w))
		vec[h.Sum32()%MockDimensions]++
	}
	return vec
}

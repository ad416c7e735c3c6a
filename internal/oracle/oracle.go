package oracle

import "context"

// Oracle scores how close two texts are in meaning.
//
// Scores are raw: embedding backends return cosine similarity in [-1, 1]
// and callers must not assume the value is clamped to [0, 1].
type Oracle interface {
	// Similarity returns the semantic closeness of a and b.
	Similarity(ctx context.Context, a, b string) (float64, error)

	// ModelID returns the model identifier backing this oracle.
	ModelID() string
}

// Embedder turns texts into dense vectors.
type Embedder interface {
	// Embed returns one vector per input text, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// ModelID returns the embedding model identifier.
	ModelID() string
}

package oracle

import (
	"context"
	"fmt"
	"math"
	"sync"
)

// EmbeddingOracle scores texts by the cosine similarity of their embeddings.
// Embeddings are cached by exact text, so repeated reference answers are
// embedded once per process.
type EmbeddingOracle struct {
	embedder Embedder

	mu    sync.Mutex
	cache map[string][]float32
}

// NewEmbeddingOracle wraps an Embedder as an Oracle.
func NewEmbeddingOracle(e Embedder) *EmbeddingOracle {
	return &EmbeddingOracle{
		embedder: e,
		cache:    make(map[string][]float32),
	}
}

func (o *EmbeddingOracle) Similarity(ctx context.Context, a, b string) (float64, error) {
	vecs, err := o.embed(ctx, a, b)
	if err != nil {
		return 0, err
	}
	return Cosine(vecs[0], vecs[1])
}

func (o *EmbeddingOracle) ModelID() string {
	return o.embedder.ModelID()
}

// embed returns vectors for texts, calling the embedder only for texts that
// are not cached yet.
func (o *EmbeddingOracle) embed(ctx context.Context, texts ...string) ([][]float32, error) {
	o.mu.Lock()
	var missing []string
	queued := make(map[string]bool)
	for _, t := range texts {
		if _, ok := o.cache[t]; !ok && !queued[t] {
			missing = append(missing, t)
			queued[t] = true
		}
	}
	o.mu.Unlock()

	if len(missing) > 0 {
		vecs, err := o.embedder.Embed(ctx, missing)
		if err != nil {
			return nil, err
		}
		if len(vecs) != len(missing) {
			return nil, &ErrInvalidResponse{
				Err: fmt.Errorf("embedder returned %d vectors for %d texts", len(vecs), len(missing)),
			}
		}
		o.mu.Lock()
		for i, t := range missing {
			o.cache[t] = vecs[i]
		}
		o.mu.Unlock()
	}

	o.mu.Lock()
	defer o.mu.Unlock()
	out := make([][]float32, len(texts))
	for i, t := range texts {
		out[i] = o.cache[t]
	}
	return out, nil
}

// Cosine returns the cosine similarity of a and b. A zero vector has no
// direction, so its similarity to anything is 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

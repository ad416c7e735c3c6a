package oracle

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// New creates an Oracle from configuration.
// The result is wrapped as caller → timeout → retry → logging → base;
// the mock provider skips retry.
// It returns ErrNotConfigured when cfg selects no provider.
func New(ctx context.Context, cfg Config, rec CallRecorder, log *zap.Logger) (Oracle, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Oracle
	switch cfg.Provider {
	case ProviderOpenAI:
		e, err := NewOpenAIEmbedder(cfg.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("initializing %s oracle: %w", cfg.Provider, err)
		}
		base = NewEmbeddingOracle(e)
	case ProviderOpenRouter:
		e, err := NewOpenRouterEmbedder(cfg.OpenRouter)
		if err != nil {
			return nil, fmt.Errorf("initializing %s oracle: %w", cfg.Provider, err)
		}
		base = NewEmbeddingOracle(e)
	case ProviderGemini:
		e, err := NewGeminiEmbedder(ctx, cfg.Gemini)
		if err != nil {
			return nil, fmt.Errorf("initializing %s oracle: %w", cfg.Provider, err)
		}
		base = NewEmbeddingOracle(e)
	case ProviderAnthropic:
		j, err := NewJudgeOracle(cfg.Anthropic)
		if err != nil {
			return nil, fmt.Errorf("initializing %s oracle: %w", cfg.Provider, err)
		}
		base = j
	case ProviderMock:
		// Local and deterministic: logged, but never retried.
		logged := WithLogging(NewEmbeddingOracle(NewMockEmbedder()), cfg.Provider, rec, log)
		return WithTimeout(logged, cfg.Timeout), nil
	default:
		return nil, fmt.Errorf("unknown oracle provider: %q", cfg.Provider)
	}

	logged := WithLogging(base, cfg.Provider, rec, log)
	retried := WithRetry(logged, cfg.Retry)
	return WithTimeout(retried, cfg.Timeout), nil
}

// TimeoutOracle bounds each Similarity call with a deadline.
type TimeoutOracle struct {
	inner   Oracle
	timeout time.Duration
}

// WithTimeout wraps o so each call is cancelled after d. A non-positive d
// returns o unchanged.
func WithTimeout(o Oracle, d time.Duration) Oracle {
	if d <= 0 {
		return o
	}
	return &TimeoutOracle{inner: o, timeout: d}
}

func (t *TimeoutOracle) Similarity(ctx context.Context, a, b string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.inner.Similarity(ctx, a, b)
}

func (t *TimeoutOracle) ModelID() string {
	return t.inner.ModelID()
}

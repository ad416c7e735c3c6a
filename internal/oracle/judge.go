package oracle

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

// anthropicModels maps friendly names to Anthropic model IDs.
var anthropicModels = map[string]string{
	"claude-sonnet": "claude-sonnet-4-20250514",
	"claude-haiku":  "claude-haiku-4-5-20251001",
}

const judgeSystemPrompt = `You grade answers to technical interview questions.
You are given a reference answer and a candidate answer. Rate how close the
candidate is in meaning to the reference on a scale from -1 to 1, where 1 means
the same meaning, 0 means unrelated and -1 means contradictory. Ignore wording,
spelling and length. Respond only with the requested JSON.`

// judgeSchema is the structured output requested from the model.
var judgeSchema = &Schema{
	Name: "similarity-judgement",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"similarity": map[string]any{
				"type":        "number",
				"description": "Semantic similarity between -1 and 1",
			},
		},
		"required":             []any{"similarity"},
		"additionalProperties": false,
	},
}

type judgement struct {
	Similarity float64 `json:"similarity"`
}

// JudgeOracle asks an Anthropic model to rate similarity directly. Anthropic
// has no embeddings endpoint, so this stands in for cosine similarity.
type JudgeOracle struct {
	client    *anthropic.Client
	model     string
	maxTokens int64
}

// NewJudgeOracle creates an Anthropic-backed oracle.
func NewJudgeOracle(cfg AnthropicConfig) (*JudgeOracle, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("anthropic API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	client := anthropic.NewClient(opts...)
	return &JudgeOracle{
		client:    &client,
		model:     resolveModel(cfg.Model, anthropicModels),
		maxTokens: 64,
	}, nil
}

func (j *JudgeOracle) Similarity(ctx context.Context, a, b string) (float64, error) {
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(j.model),
		MaxTokens: j.maxTokens,
		System: []anthropic.TextBlockParam{
			{Text: judgeSystemPrompt},
		},
		Messages: []anthropic.MessageParam{
			{
				Role: anthropic.MessageParamRoleUser,
				Content: []anthropic.ContentBlockParamUnion{
					anthropic.NewTextBlock(judgePrompt(a, b)),
				},
			},
		},
		OutputConfig: anthropic.OutputConfigParam{
			Format: anthropic.JSONOutputFormatParam{
				Schema: judgeSchema.Definition,
			},
		},
	}

	msg, err := j.client.Messages.New(ctx, params)
	if err != nil {
		return 0, mapAnthropicError(err)
	}

	content, err := extractAnthropicContent(msg)
	if err != nil {
		return 0, err
	}
	return parseJudgement(content)
}

func (j *JudgeOracle) ModelID() string {
	return j.model
}

func judgePrompt(candidate, reference string) string {
	return fmt.Sprintf("Reference answer:\n%s\n\nCandidate answer:\n%s", reference, candidate)
}

// parseJudgement validates the model output and extracts the score.
func parseJudgement(content json.RawMessage) (float64, error) {
	if err := validateResponse(judgeSchema, content); err != nil {
		return 0, err
	}
	var out judgement
	if err := json.Unmarshal(content, &out); err != nil {
		return 0, &ErrInvalidResponse{Content: content, Err: err}
	}
	if out.Similarity < -1 || out.Similarity > 1 {
		return 0, &ErrInvalidResponse{
			Content: content,
			Err:     fmt.Errorf("similarity %v outside [-1, 1]", out.Similarity),
		}
	}
	return out.Similarity, nil
}

func extractAnthropicContent(msg *anthropic.Message) (json.RawMessage, error) {
	for _, block := range msg.Content {
		if block.Type == "text" {
			return json.RawMessage(block.Text), nil
		}
	}
	return nil, &ErrInvalidResponse{
		Err: fmt.Errorf("no text content in Anthropic response"),
	}
}

func mapAnthropicError(err error) error {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.StatusCode == http.StatusTooManyRequests:
			return &ErrRateLimit{Err: err}
		case apiErr.StatusCode >= 500:
			return &ErrProviderUnavailable{Err: err}
		}
	}
	return &ErrProviderUnavailable{Err: err}
}

package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/genai"

	domain "github.com/credifyai/credify-api/internal/domain/analysis"
	"github.com/credifyai/credify-api/internal/infra/ai/prompt"
)

const defaultModel = "gemini-2.0-flash-lite"

type Client struct {
	client          *genai.Client
	model           string
	maxOutputTokens int32
	temperature     float32
}

func NewClient(ctx context.Context, apiKey, model string, maxOutputTokens int, temperature float64) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini api key is required")
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	if model == "" {
		model = defaultModel
	}
	return &Client{
		client:          cli,
		model:           model,
		maxOutputTokens: int32(maxOutputTokens),
		temperature:     float32(temperature),
	}, nil
}

// Analyze sends one synchronous completion request and returns the raw text.
// A 503/429 from the provider maps to the busy sentinel; everything else keeps
// its status code and embedded message.
func (c *Client) Analyze(ctx context.Context, text string) (string, error) {
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: c.maxOutputTokens,
		Temperature:     genai.Ptr(c.temperature),
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt.Credibility(text)), cfg)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			if apiErr.Code == http.StatusServiceUnavailable || apiErr.Code == http.StatusTooManyRequests {
				return "", domain.ErrModelBusy
			}
			return "", &domain.ModelError{StatusCode: apiErr.Code, Message: apiErr.Message}
		}
		return "", &domain.ModelError{Message: err.Error()}
	}
	return resp.Text(), nil
}

package openai

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/sashabaranov/go-openai"

	domain "github.com/credifyai/credify-api/internal/domain/analysis"
	"github.com/credifyai/credify-api/internal/infra/ai/prompt"
)

const defaultModel = "gpt-4o-mini"

type Client struct {
	*openai.Client
	Model       string
	MaxTokens   int
	Temperature float32
}

func NewClient(apiKey, model string, maxTokens int, temperature float64) *Client {
	return &Client{
		Client:      openai.NewClient(apiKey),
		Model:       model,
		MaxTokens:   maxTokens,
		Temperature: float32(temperature),
	}
}

func (c *Client) Analyze(ctx context.Context, text string) (string, error) {
	model := c.Model
	if model == "" {
		model = defaultModel
	}
	req := openai.ChatCompletionRequest{
		Model: model,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt.Credibility(text)},
		},
		Temperature: c.Temperature,
	}
	// For reasoning models (o1/o3/o4/gpt-5*) use MaxCompletionTokens instead of MaxTokens
	if strings.HasPrefix(model, "o1") || strings.HasPrefix(model, "o3") || strings.HasPrefix(model, "o4") || strings.HasPrefix(model, "gpt-5") {
		req.MaxCompletionTokens = c.MaxTokens
	} else {
		req.MaxTokens = c.MaxTokens
	}

	resp, err := c.CreateChatCompletion(ctx, req)
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			if apiErr.HTTPStatusCode == http.StatusServiceUnavailable || apiErr.HTTPStatusCode == http.StatusTooManyRequests {
				return "", domain.ErrModelBusy
			}
			return "", &domain.ModelError{StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return "", &domain.ModelError{Message: err.Error()}
	}
	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}

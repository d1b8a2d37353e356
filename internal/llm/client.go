package llm

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	defaultBaseURL = "https://api.openai.com/v1"
	defaultModel   = "gpt-4o"

	// Low but non-zero, matching the tone expected of the analysis output.
	temperature = 0.5

	requestTimeout = 60 * time.Second
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client sends a prompt to a text-generation provider and returns the single
// text response. One request, one response, no retries.
type Client interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

type openAIClient struct {
	http  *resty.Client
	model string
}

// NewOpenAIClient builds a client for an OpenAI-compatible chat completions
// API. Base URL and model can be overridden for self-hosted providers.
func NewOpenAIClient(apiKey, baseURL, model string) Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if model == "" {
		model = defaultModel
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(apiKey).
		SetTimeout(requestTimeout).
		SetHeader("Content-Type", "application/json")

	return &openAIClient{
		http:  httpClient,
		model: model,
	}
}

// NewOpenAIClientFromEnv reads OPENAI_API_KEY, OPENAI_BASE_URL and
// OPENAI_MODEL from the environment.
func NewOpenAIClientFromEnv() (Client, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	return NewOpenAIClient(apiKey, os.Getenv("OPENAI_BASE_URL"), os.Getenv("OPENAI_MODEL")), nil
}

func (c *openAIClient) Complete(ctx context.Context, messages []Message) (string, error) {
	var result chatResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(chatRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: temperature,
		}).
		SetResult(&result).
		SetError(&result).
		Post("/chat/completions")

	if err != nil {
		return "", fmt.Errorf("chat completion request: %w", err)
	}

	if resp.IsError() {
		if result.Error != nil {
			return "", fmt.Errorf("provider returned %s: %s", resp.Status(), result.Error.Message)
		}
		return "", fmt.Errorf("provider returned %s", resp.Status())
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("provider returned no choices")
	}

	return result.Choices[0].Message.Content, nil
}

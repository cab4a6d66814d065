package llm

import (
	"context"
	"fmt"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// ChatCompletionClient serves any OpenAI-compatible chat endpoint. Groq
// exposes one, so the same client covers both backends.
type ChatCompletionClient struct {
	client  *openai.Client
	model   string
	name    string
	timeout time.Duration
}

func NewOpenAIClient(apiKey string, timeout time.Duration) *ChatCompletionClient {
	return &ChatCompletionClient{
		client:  openai.NewClient(apiKey),
		model:   openai.GPT3Dot5Turbo,
		name:    "openai",
		timeout: timeout,
	}
}

func NewGroqClient(apiKey string, timeout time.Duration) *ChatCompletionClient {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = groqBaseURL
	return &ChatCompletionClient{
		client:  openai.NewClientWithConfig(cfg),
		model:   "llama3-70b-8192",
		name:    "groq",
		timeout: timeout,
	}
}

func (c *ChatCompletionClient) Name() string { return c.name }

func (c *ChatCompletionClient) GenerateContent(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.7,
		// The ReAct format requires the model to stop before inventing an
		// observation of its own.
		Stop: []string{"\nObservation:"},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("%s chat completion error: %w", c.name, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%s returned no choices", c.name)
	}
	return resp.Choices[0].Message.Content, nil
}

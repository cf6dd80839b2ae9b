package openai

import (
	"context"
	"fmt"
	"os"

	"AdvisoryAssistant/pkg/assistant"

	"github.com/sashabaranov/go-openai"
)

const Provider = "openai"

type chatCompletion struct {
	client       *openai.Client
	model        string
	systemPrompt assistant.Prompt
	apiKey       string
	endpoint     string
}

// NewChat builds a remote responder for any OpenAI-compatible chat
// completion endpoint. It reads AI_API_KEY, AI_API_ENDPOINT and AI_MODEL;
// with either of the first two missing the responder reports itself as
// unconfigured and is never called.
func NewChat(systemPrompt assistant.Prompt) assistant.RemoteResponder {
	apiKey := os.Getenv("AI_API_KEY")
	endpoint := os.Getenv("AI_API_ENDPOINT")
	model := os.Getenv("AI_MODEL")

	if model == "" {
		model = openai.GPT4oMini
	}

	cfg := openai.DefaultConfig(apiKey)
	if endpoint != "" {
		cfg.BaseURL = endpoint
	}

	return &chatCompletion{
		client:       openai.NewClientWithConfig(cfg),
		model:        model,
		systemPrompt: systemPrompt,
		apiKey:       apiKey,
		endpoint:     endpoint,
	}
}

func (c *chatCompletion) Name() string {
	return Provider
}

func (c *chatCompletion) Configured() bool {
	return c.apiKey != "" && c.endpoint != ""
}

func (c *chatCompletion) Complete(
	ctx context.Context,
	utterance string,
	history []assistant.Message,
) (string, error) {
	messages := []openai.ChatCompletionMessage{
		{
			Role:    openai.ChatMessageRoleSystem,
			Content: c.systemPrompt(),
		},
	}

	for _, msg := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role(),
			Content: msg.Content,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: utterance,
	})

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model:       c.model,
			Messages:    messages,
			Temperature: 0.3,
			MaxTokens:   400,
		},
	)
	if err != nil {
		return "", fmt.Errorf("chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", assistant.ErrEmptyCompletion
	}

	return resp.Choices[0].Message.Content, nil
}

package gemini

import (
	"context"
	"errors"
	"os"
	"strings"

	"AdvisoryAssistant/pkg/assistant"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const Provider = "gemini"

type IGemini interface {
	assistant.RemoteResponder
	Close()
}

type geminiClient struct {
	apiKey       string
	endpoint     string
	modelName    string
	systemPrompt assistant.Prompt
	client       *genai.Client
}

// NewGeminiClient reads the same AI_* variables as the OpenAI responder.
// No client is dialled unless both the key and the endpoint are set.
func NewGeminiClient(ctx context.Context, systemPrompt assistant.Prompt) (IGemini, error) {
	apiKey := os.Getenv("AI_API_KEY")
	endpoint := os.Getenv("AI_API_ENDPOINT")

	modelName := os.Getenv("AI_MODEL")
	if modelName == "" {
		modelName = "gemini-1.5-flash"
	}

	g := &geminiClient{
		apiKey:       apiKey,
		endpoint:     endpoint,
		modelName:    modelName,
		systemPrompt: systemPrompt,
	}
	if !g.Configured() {
		return g, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey), option.WithEndpoint(endpoint))
	if err != nil {
		return nil, err
	}
	g.client = client

	return g, nil
}

func (g *geminiClient) Name() string {
	return Provider
}

func (g *geminiClient) Configured() bool {
	return g.apiKey != "" && g.endpoint != ""
}

func (g *geminiClient) Complete(ctx context.Context, utterance string, history []assistant.Message) (string, error) {
	if g.client == nil {
		return "", errors.New("gemini client is not configured")
	}

	model := g.client.GenerativeModel(g.modelName)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(g.systemPrompt())},
	}

	session := model.StartChat()
	session.History = toContents(history)

	res, err := session.SendMessage(ctx, genai.Text(utterance))
	if err != nil {
		return "", err
	}

	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return "", assistant.ErrEmptyCompletion
	}

	var b strings.Builder
	for _, part := range res.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}

	return b.String(), nil
}

func (g *geminiClient) Close() {
	if g.client != nil {
		g.client.Close()
	}
}

func toContents(history []assistant.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		role := "user"
		if msg.Type == assistant.MessageBot {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}
	return contents
}

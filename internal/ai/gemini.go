package ai

import (
	"context"
	"fmt"
	"sync"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.0-flash"

// GeminiClient calls Google's Gemini API. The SDK client is created on first
// use so an unconfigured key never touches the network.
type GeminiClient struct {
	apiKey string
	model  string

	once    sync.Once
	client  *genai.Client
	initErr error
}

func NewGeminiClient(apiKey, model string) *GeminiClient {
	if model == "" {
		model = defaultGeminiModel
	}
	return &GeminiClient{apiKey: apiKey, model: model}
}

func (g *GeminiClient) Available() bool { return g.apiKey != "" }

func (g *GeminiClient) sdk() (*genai.Client, error) {
	g.once.Do(func() {
		g.client, g.initErr = genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey:  g.apiKey,
			Backend: genai.BackendGeminiAPI,
		})
	})
	return g.client, g.initErr
}

func (g *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	if !g.Available() {
		return "", ErrUnavailable
	}
	client, err := g.sdk()
	if err != nil {
		return "", fmt.Errorf("failed to create GenAI client: %w", err)
	}
	resp, err := client.Models.GenerateContent(ctx, g.model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(req.System, genai.RoleUser),
		MaxOutputTokens:   int32(req.MaxTokens),
		Temperature:       genai.Ptr(req.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}
	return text, nil
}

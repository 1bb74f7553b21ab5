package utils

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"roamio/internal/models/request_models"
)

// GeminiPlannerClient implements PlannerClientInterface using Google's
// Gemini models in JSON mode.
type GeminiPlannerClient struct {
	client *genai.Client
	model  string
}

func NewGeminiPlannerClient(apiKey, model string) (PlannerClientInterface, error) {
	if model == "" {
		model = "gemini-1.5-flash"
	}

	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiPlannerClient{
		client: client,
		model:  model,
	}, nil
}

func (c *GeminiPlannerClient) GenerateItineraryJSON(ctx context.Context, req request_models.TripRequest) (string, error) {
	m := c.client.GenerativeModel(c.model)
	// Force JSON-only output so brace-matching stays a fallback, not a crutch.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.2)
	m.SetTopP(0.5)
	m.SetTopK(20)
	m.SetMaxOutputTokens(8192)

	prompt := BuildItineraryPrompt(req)

	content, err := RetryWithBackoff(ctx, 3, func() (string, error) {
		return c.generate(ctx, m, prompt)
	})
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	content = CleanJSONResponse(content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini returned invalid JSON")
	}
	return content, nil
}

func (c *GeminiPlannerClient) GenerateReply(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.SetTemperature(0.7)
	m.SetTopP(0.9)

	prompt := fmt.Sprintf("%s\n\nUser: %s\n\nAssistant:", systemPrompt, userMessage)
	return c.generate(ctx, m, prompt)
}

func (c *GeminiPlannerClient) GenerateSuggestionsJSON(ctx context.Context, location string, preferences []string, hints map[string]string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.4)
	m.SetMaxOutputTokens(4096)

	content, err := c.generate(ctx, m, BuildSuggestionsPrompt(location, preferences, hints))
	if err != nil {
		return "", err
	}
	content = CleanJSONResponse(content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("gemini returned invalid JSON")
	}
	return content, nil
}

func (c *GeminiPlannerClient) generate(ctx context.Context, m *genai.GenerativeModel, prompt string) (string, error) {
	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", err
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no content generated")
	}
	return fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]), nil
}

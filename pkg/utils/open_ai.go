package utils

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"roamio/internal/models/request_models"
)

// OpenAIPlannerClient is the alternate provider behind the same planner
// interface; selected with AI_PROVIDER=openai.
type OpenAIPlannerClient struct {
	client *openai.Client
	model  string
}

func NewOpenAIPlannerClient(apiKey, model string) PlannerClientInterface {
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIPlannerClient{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (c *OpenAIPlannerClient) GenerateItineraryJSON(ctx context.Context, req request_models.TripRequest) (string, error) {
	content, err := RetryWithBackoff(ctx, 3, func() (string, error) {
		return c.complete(ctx, "You are an expert travel planner. Respond with JSON only.", BuildItineraryPrompt(req), true)
	})
	if err != nil {
		return "", fmt.Errorf("openai: %w", err)
	}
	content = CleanJSONResponse(content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("openai returned invalid JSON")
	}
	return content, nil
}

func (c *OpenAIPlannerClient) GenerateReply(ctx context.Context, systemPrompt, userMessage string) (string, error) {
	return c.complete(ctx, systemPrompt, userMessage, false)
}

func (c *OpenAIPlannerClient) GenerateSuggestionsJSON(ctx context.Context, location string, preferences []string, hints map[string]string) (string, error) {
	content, err := c.complete(ctx, "You are a travel assistant. Respond with a JSON array only.", BuildSuggestionsPrompt(location, preferences, hints), false)
	if err != nil {
		return "", err
	}
	content = CleanJSONResponse(content)
	if !json.Valid([]byte(content)) {
		return "", fmt.Errorf("openai returned invalid JSON")
	}
	return content, nil
}

func (c *OpenAIPlannerClient) complete(ctx context.Context, system, user string, jsonMode bool) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.model,
		Temperature: 0.2,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no content generated")
	}
	return resp.Choices[0].Message.Content, nil
}

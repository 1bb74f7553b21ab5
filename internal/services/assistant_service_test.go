package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roamio/internal/models/request_models"
)

func TestChatReturnsModelReply(t *testing.T) {
	planner := new(MockPlanner)
	planner.On("GenerateReply", mock.Anything, mock.Anything, "best beaches?").
		Return("Try Palolem early in the morning.", nil)

	svc := NewAssistantService(planner, nil, noopAnalytics{})
	reply, err := svc.Chat(context.Background(), request_models.ChatRequest{
		Message:   "best beaches?",
		SessionID: "sess-1",
	})

	require.NoError(t, err)
	assert.Equal(t, "sess-1", reply.SessionID)
	assert.Equal(t, "Try Palolem early in the morning.", reply.Reply)
	assert.NotEmpty(t, reply.Timestamp)
}

func TestChatGeneratesSessionID(t *testing.T) {
	planner := new(MockPlanner)
	planner.On("GenerateReply", mock.Anything, mock.Anything, mock.Anything).Return("hello", nil)

	svc := NewAssistantService(planner, nil, noopAnalytics{})
	reply, err := svc.Chat(context.Background(), request_models.ChatRequest{Message: "hi"})

	require.NoError(t, err)
	assert.NotEmpty(t, reply.SessionID)
}

func TestChatApologizesOnModelFailure(t *testing.T) {
	planner := new(MockPlanner)
	planner.On("GenerateReply", mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("quota exceeded"))

	svc := NewAssistantService(planner, nil, noopAnalytics{})
	reply, err := svc.Chat(context.Background(), request_models.ChatRequest{Message: "hi", SessionID: "sess-2"})

	require.NoError(t, err)
	assert.Equal(t, assistantApology, reply.Reply)
}

func TestChatKeepsHistoryWithoutRedis(t *testing.T) {
	var prompts []string
	planner := new(MockPlanner)
	planner.On("GenerateReply", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { prompts = append(prompts, args.String(1)) }).
		Return("noted", nil)

	svc := NewAssistantService(planner, nil, noopAnalytics{})
	_, err := svc.Chat(context.Background(), request_models.ChatRequest{Message: "I land in Kochi on Friday", SessionID: "sess-3"})
	require.NoError(t, err)
	_, err = svc.Chat(context.Background(), request_models.ChatRequest{Message: "what about day two?", SessionID: "sess-3"})
	require.NoError(t, err)

	require.Len(t, prompts, 2)
	assert.NotContains(t, prompts[0], "I land in Kochi on Friday")
	assert.Contains(t, prompts[1], "I land in Kochi on Friday")
}

func TestChatHistoryIsolatedPerSession(t *testing.T) {
	var prompts []string
	planner := new(MockPlanner)
	planner.On("GenerateReply", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { prompts = append(prompts, args.String(1)) }).
		Return("noted", nil)

	svc := NewAssistantService(planner, nil, noopAnalytics{})
	_, err := svc.Chat(context.Background(), request_models.ChatRequest{Message: "remember the houseboat", SessionID: "sess-a"})
	require.NoError(t, err)
	_, err = svc.Chat(context.Background(), request_models.ChatRequest{Message: "hello", SessionID: "sess-b"})
	require.NoError(t, err)

	require.Len(t, prompts, 2)
	assert.NotContains(t, prompts[1], "remember the houseboat")
}

func TestSuggestionsCappedAtFive(t *testing.T) {
	planner := new(MockPlanner)
	planner.On("GenerateSuggestionsJSON", mock.Anything, "Udaipur", mock.Anything, mock.Anything).
		Return(`[{"name":"1"},{"name":"2"},{"name":"3"},{"name":"4"},{"name":"5"},{"name":"6"},{"name":"7"}]`, nil)

	svc := NewAssistantService(planner, nil, noopAnalytics{})
	suggestions, err := svc.Suggestions(context.Background(), request_models.SuggestionsRequest{Location: "Udaipur"})

	require.NoError(t, err)
	assert.Len(t, suggestions, 5)
	assert.Equal(t, "1", suggestions[0].Name)
}

func TestSuggestionsEmptyOnModelFailure(t *testing.T) {
	planner := new(MockPlanner)
	planner.On("GenerateSuggestionsJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", errors.New("timeout"))

	svc := NewAssistantService(planner, nil, noopAnalytics{})
	suggestions, err := svc.Suggestions(context.Background(), request_models.SuggestionsRequest{Location: "Udaipur"})

	require.NoError(t, err)
	assert.NotNil(t, suggestions)
	assert.Empty(t, suggestions)
}

func TestSuggestionsEmptyOnBadJSON(t *testing.T) {
	planner := new(MockPlanner)
	planner.On("GenerateSuggestionsJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("sorry, I cannot do that", nil)

	svc := NewAssistantService(planner, nil, noopAnalytics{})
	suggestions, err := svc.Suggestions(context.Background(), request_models.SuggestionsRequest{Location: "Udaipur"})

	require.NoError(t, err)
	assert.Empty(t, suggestions)
}

func TestSuggestionsStripsCodeFences(t *testing.T) {
	planner := new(MockPlanner)
	planner.On("GenerateSuggestionsJSON", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("```json\n[{\"name\":\"City Palace\",\"category\":\"heritage\"}]\n```", nil)

	svc := NewAssistantService(planner, nil, noopAnalytics{})
	suggestions, err := svc.Suggestions(context.Background(), request_models.SuggestionsRequest{Location: "Udaipur"})

	require.NoError(t, err)
	require.Len(t, suggestions, 1)
	assert.Equal(t, "City Palace", suggestions[0].Name)
	assert.Equal(t, "heritage", suggestions[0].Category)
}

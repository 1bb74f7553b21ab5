package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roamio/internal/models/request_models"
	"roamio/internal/services"
	"roamio/pkg/utils"
)

type stubAssistantService struct {
	reply       *services.ChatReply
	suggestions []services.Suggestion
	err         error
}

func (s *stubAssistantService) Chat(ctx context.Context, req request_models.ChatRequest) (*services.ChatReply, error) {
	return s.reply, s.err
}

func (s *stubAssistantService) Suggestions(ctx context.Context, req request_models.SuggestionsRequest) ([]services.Suggestion, error) {
	return s.suggestions, s.err
}

func assistantRouter(svc services.AssistantServiceInterface) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ctrl := NewAssistantController(svc)
	r := gin.New()
	r.POST("/chat", ctrl.Chat)
	r.POST("/suggestions", ctrl.Suggestions)
	return r
}

func TestChatEndpointWrapsReply(t *testing.T) {
	svc := &stubAssistantService{
		reply: &services.ChatReply{SessionID: "sess-1", Reply: "Visit Hampi in winter."},
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{"message":"when to visit Hampi?"}`))
	req.Header.Set("Content-Type", "application/json")
	assistantRouter(svc).ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "success", envelope.Status)
	assert.Equal(t, http.StatusOK, envelope.Code)

	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "sess-1", data["session_id"])
	assert.Equal(t, "Visit Hampi in winter.", data["reply"])
}

func TestChatEndpointRejectsMissingMessage(t *testing.T) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/chat", strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	assistantRouter(&stubAssistantService{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuggestionsEndpointMapsUpstreamError(t *testing.T) {
	svc := &stubAssistantService{err: utils.ErrPlannerUnavailable}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/suggestions", strings.NewReader(`{"location":"Udaipur"}`))
	req.Header.Set("Content-Type", "application/json")
	assistantRouter(svc).ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadGateway, w.Code)

	var envelope utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.Equal(t, "error", envelope.Status)
}

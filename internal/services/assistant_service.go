package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"roamio/internal/models/request_models"
	"roamio/pkg/logger"
	"roamio/pkg/utils"
)

const (
	chatHistoryTTL = 24 * time.Hour
	chatHistoryMax = 20
)

const assistantApology = "I'm sorry, I'm having trouble responding right now. Please try again in a moment."

type ChatReply struct {
	SessionID string `json:"session_id"`
	Reply     string `json:"reply"`
	Timestamp string `json:"timestamp"`
}

type Suggestion struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Location        string   `json:"location"`
	DurationHours   float64  `json:"duration_hours"`
	CostEstimate    float64  `json:"cost_estimate"`
	DistanceKm      float64  `json:"distance_km"`
	Category        string   `json:"category"`
	WhyRecommended  string   `json:"why_recommended"`
	BookingRequired bool     `json:"booking_required"`
	BestTime        string   `json:"best_time"`
	Tips            []string `json:"tips"`
}

type AssistantServiceInterface interface {
	Chat(ctx context.Context, req request_models.ChatRequest) (*ChatReply, error)
	Suggestions(ctx context.Context, req request_models.SuggestionsRequest) ([]Suggestion, error)
}

type chatHistoryEntry struct {
	history   []utils.ChatExchange
	expiresAt time.Time
}

type assistantService struct {
	planner   utils.PlannerClientInterface
	cache     *redis.Client
	analytics AnalyticsServiceInterface

	// Process-local history used when no Redis client is configured.
	localMu sync.Mutex
	local   map[string]chatHistoryEntry
}

func NewAssistantService(planner utils.PlannerClientInterface, cache *redis.Client, analytics AnalyticsServiceInterface) AssistantServiceInterface {
	return &assistantService{
		planner:   planner,
		cache:     cache,
		analytics: analytics,
		local:     make(map[string]chatHistoryEntry),
	}
}

// Chat answers one user message with the trip context and the last few
// exchanges in the prompt. A model failure degrades to an apology rather
// than an error so the conversation can continue.
func (s *assistantService) Chat(ctx context.Context, req request_models.ChatRequest) (*ChatReply, error) {
	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	history := s.loadHistory(ctx, sessionID)
	systemPrompt := utils.BuildChatSystemPrompt(req.TripContext, history, req.UserLocation, req.Language)

	reply, err := s.planner.GenerateReply(ctx, systemPrompt, req.Message)
	if err != nil {
		logger.Log.WithError(err).Error("assistant reply failed")
		reply = assistantApology
	}

	now := time.Now()
	history = append(history, utils.ChatExchange{
		Timestamp:   now.Format(time.RFC3339),
		UserMessage: req.Message,
		AIResponse:  reply,
	})
	if len(history) > chatHistoryMax {
		history = history[len(history)-chatHistoryMax:]
	}
	s.storeHistory(ctx, sessionID, history)

	s.analytics.TrackEvent(ctx, "chat_message", map[string]any{
		"session_id": sessionID,
		"degraded":   reply == assistantApology,
	})

	return &ChatReply{
		SessionID: sessionID,
		Reply:     reply,
		Timestamp: now.Format(time.RFC3339),
	}, nil
}

// Suggestions returns up to five activity ideas. Errors collapse to an
// empty list so the widget renders without a failure state.
func (s *assistantService) Suggestions(ctx context.Context, req request_models.SuggestionsRequest) ([]Suggestion, error) {
	content, err := s.planner.GenerateSuggestionsJSON(ctx, req.Location, req.Preferences, req.Hints)
	if err != nil {
		logger.Log.WithError(err).Error("suggestions generation failed")
		return []Suggestion{}, nil
	}

	var suggestions []Suggestion
	if err := json.Unmarshal([]byte(utils.CleanJSONResponse(content)), &suggestions); err != nil {
		logger.Log.WithError(err).Error("suggestions parse failed")
		return []Suggestion{}, nil
	}
	if len(suggestions) > 5 {
		suggestions = suggestions[:5]
	}
	return suggestions, nil
}

func chatHistoryKey(sessionID string) string {
	return fmt.Sprintf("chat:history:%s", sessionID)
}

func (s *assistantService) loadHistory(ctx context.Context, sessionID string) []utils.ChatExchange {
	if s.cache == nil {
		s.localMu.Lock()
		defer s.localMu.Unlock()
		entry, ok := s.local[sessionID]
		if !ok || time.Now().After(entry.expiresAt) {
			delete(s.local, sessionID)
			return nil
		}
		return entry.history
	}
	raw, err := s.cache.Get(ctx, chatHistoryKey(sessionID)).Bytes()
	if err != nil {
		return nil
	}
	var history []utils.ChatExchange
	if json.Unmarshal(raw, &history) != nil {
		return nil
	}
	return history
}

func (s *assistantService) storeHistory(ctx context.Context, sessionID string, history []utils.ChatExchange) {
	if s.cache == nil {
		s.localMu.Lock()
		defer s.localMu.Unlock()
		s.local[sessionID] = chatHistoryEntry{history: history, expiresAt: time.Now().Add(chatHistoryTTL)}
		return
	}
	raw, err := json.Marshal(history)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, chatHistoryKey(sessionID), raw, chatHistoryTTL).Err(); err != nil {
		logger.Log.WithError(err).Warn("failed to store chat history")
	}
}

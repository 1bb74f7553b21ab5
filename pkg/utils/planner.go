package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"roamio/internal/models/request_models"
)

// PlannerClientInterface abstracts the generative model behind itinerary
// generation, chat assistance and activity suggestions. Implemented by the
// Gemini client and the OpenAI fallback.
type PlannerClientInterface interface {
	GenerateItineraryJSON(ctx context.Context, req request_models.TripRequest) (string, error)
	GenerateReply(ctx context.Context, systemPrompt, userMessage string) (string, error)
	GenerateSuggestionsJSON(ctx context.Context, location string, preferences []string, hints map[string]string) (string, error)
}

// BuildItineraryPrompt interpolates the trip parameters into the fixed
// template the model is expected to answer with matching JSON.
func BuildItineraryPrompt(req request_models.TripRequest) string {
	duration := req.DurationDays()
	if duration < 1 {
		duration = 1
	}
	budgetPerDay := req.Budget / float64(duration)
	travelers := req.TravelersCount
	if travelers < 1 {
		travelers = 1
	}
	themes := strings.Join(req.Themes, ", ")
	if themes == "" {
		themes = "general"
	}
	dietary := strings.Join(req.DietaryRestrictions, ", ")
	if dietary == "" {
		dietary = "None"
	}
	language := req.Language
	if language == "" {
		language = "English"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert travel planner specializing in personalized itineraries for India.\n")
	fmt.Fprintf(&b, "Create a detailed, practical %d-day travel itinerary.\n\n", duration)
	fmt.Fprintf(&b, "TRIP PARAMETERS:\n")
	fmt.Fprintf(&b, "- Destination: %s\n", req.Destination)
	fmt.Fprintf(&b, "- Travel Dates: %s to %s\n", req.StartDate, req.EndDate)
	fmt.Fprintf(&b, "- Duration: %d days\n", duration)
	fmt.Fprintf(&b, "- Total Budget: INR %.0f\n", req.Budget)
	fmt.Fprintf(&b, "- Daily Budget: INR %.0f\n", budgetPerDay)
	fmt.Fprintf(&b, "- Number of Travelers: %d\n", travelers)
	fmt.Fprintf(&b, "- Trip Themes: %s\n", themes)
	fmt.Fprintf(&b, "- Accommodation Preference: %s\n", orAny(req.AccommodationPreference))
	fmt.Fprintf(&b, "- Transport Preference: %s\n", orAny(req.TransportPreference))
	fmt.Fprintf(&b, "- Dietary Restrictions: %s\n", dietary)
	fmt.Fprintf(&b, "- Language Preference: %s\n", language)
	fmt.Fprintf(&b, "- Special Requirements: %s\n\n", orNone(req.SpecialRequirements))

	b.WriteString(`GUIDELINES:
1. Stay strictly within the total budget.
2. Focus on the stated themes; mix popular attractions and hidden gems.
3. Give specific timings, costs and locations for everything.
4. Account for realistic travel times between locations.
5. Include local food recommendations and practical tips.

`)
	fmt.Fprintf(&b, "RESPONSE FORMAT — return JSON only, exactly this structure:\n%s\n", itinerarySchema)
	fmt.Fprintf(&b, "\nExactly %d entries in \"daily_itineraries\", day_number 1..%d with no gaps.\n", duration, duration)
	fmt.Fprintf(&b, "Ensure total_estimated_cost does not exceed %.0f. JSON only, no comments, no markdown.\n", req.Budget)
	return b.String()
}

const itinerarySchema = `{
  "trip_summary": {"destination": "string", "duration_days": 3, "total_budget": 0, "themes": [], "key_highlights": []},
  "daily_itineraries": [
    {
      "day_number": 1,
      "date": "YYYY-MM-DD",
      "day_theme": "string",
      "activities": [
        {
          "time_slot": "09:00-11:00",
          "activity_name": "string",
          "description": "string",
          "location": {"name": "string", "address": "string", "area": "string", "coordinates": {"lat": 0.0, "lng": 0.0}},
          "duration_hours": 2.0,
          "cost_per_person": 0,
          "total_cost": 0,
          "category": "sightseeing|dining|shopping|adventure|cultural",
          "booking_required": false,
          "tips": []
        }
      ],
      "meals": [{"meal_type": "breakfast|lunch|dinner", "time": "08:00", "restaurant_name": "string", "cuisine_type": "string", "location": "string", "cost_estimate": 0, "must_try_dishes": []}],
      "accommodation": {"hotel_name": "string", "type": "hotel|hostel|resort|homestay", "area": "string", "cost_per_night": 0, "rating": 0},
      "transport": [{"from_location": "A", "to_location": "B", "mode": "taxi|auto|metro|bus|walk", "distance_km": 0, "duration_minutes": 0, "cost": 0}],
      "day_total_cost": 0
    }
  ],
  "accommodation_summary": {},
  "transport_summary": {},
  "cost_breakdown": {"accommodation": 0, "meals": 0, "activities": 0, "transport": 0, "miscellaneous": 0},
  "packing_essentials": [],
  "local_tips": [],
  "emergency_contacts": {"police": "100", "ambulance": "108", "tourist_helpline": "1363"},
  "total_estimated_cost": 0,
  "buffer_amount": 0
}`

// BuildChatSystemPrompt embeds trip context and recent history into the
// assistant's system prompt.
func BuildChatSystemPrompt(tripContext map[string]any, history []ChatExchange, userLocation, language string) string {
	if userLocation == "" {
		userLocation = "India"
	}
	if language == "" {
		language = "English"
	}
	ctxJSON, _ := json.Marshal(tripContext)
	if len(history) > 5 {
		history = history[len(history)-5:]
	}
	histJSON, _ := json.Marshal(history)

	var b strings.Builder
	b.WriteString(`You are an expert AI travel assistant for India with deep knowledge of destinations, budget optimization, local transport, accommodation, food, safety and booking procedures.

`)
	fmt.Fprintf(&b, "User Context:\n%s\n\n", string(ctxJSON))
	fmt.Fprintf(&b, "Conversation History (last 5 messages):\n%s\n\n", string(histJSON))
	b.WriteString(`Guidelines:
1. Provide specific, actionable advice with costs in INR.
2. Consider the user's stated preferences and reference the itinerary context when discussing a trip.
3. Include safety tips and emergency contacts when relevant.
4. Be friendly, helpful and encouraging.

`)
	fmt.Fprintf(&b, "Current Date: %s\nUser Location: %s\nLanguage Preference: %s\n", time.Now().Format("2006-01-02"), userLocation, language)
	return b.String()
}

// ChatExchange is one user/assistant turn kept in conversation history.
type ChatExchange struct {
	Timestamp   string `json:"timestamp"`
	UserMessage string `json:"user_message"`
	AIResponse  string `json:"ai_response"`
}

// BuildSuggestionsPrompt asks for 5 activity suggestions as a JSON array.
func BuildSuggestionsPrompt(location string, preferences []string, hints map[string]string) string {
	now := time.Now()
	var b strings.Builder
	fmt.Fprintf(&b, "Suggest 5 activities for someone currently in %s at %s on %s.\n\n",
		location, now.Format("15:04"), now.Weekday().String())
	fmt.Fprintf(&b, "User Preferences: %s\n", strings.Join(preferences, ", "))
	for _, k := range []string{"weather", "budget_range", "group_size"} {
		if v, ok := hints[k]; ok && v != "" {
			fmt.Fprintf(&b, "%s: %s\n", strings.Title(strings.ReplaceAll(k, "_", " ")), v)
		}
	}
	b.WriteString(`
Return a JSON array of exactly 5 objects ordered by relevance, each with:
{"name":"","description":"","location":"","duration_hours":2,"cost_estimate":500,"distance_km":5,"category":"","why_recommended":"","booking_required":false,"best_time":"","tips":[]}
JSON only, no markdown.`)
	return b.String()
}

// CleanJSONResponse strips markdown fences and any prose surrounding the
// first balanced JSON value in a model reply.
func CleanJSONResponse(content string) string {
	content = strings.TrimSpace(content)
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(content, "```")
	content = strings.TrimSpace(content)

	objStart := strings.Index(content, "{")
	arrStart := strings.Index(content, "[")
	start := objStart
	end := strings.LastIndex(content, "}")
	if arrStart != -1 && (objStart == -1 || arrStart < objStart) {
		start = arrStart
		end = strings.LastIndex(content, "]")
	}
	if start == -1 || end == -1 || end < start {
		return content
	}
	return content[start : end+1]
}

// RetryWithBackoff retries the model call only: 3 attempts, exponential
// wait between 4s and 10s, honoring context cancellation.
func RetryWithBackoff(ctx context.Context, attempts int, fn func() (string, error)) (string, error) {
	var lastErr error
	backoff := 4 * time.Second
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
			if backoff > 10*time.Second {
				backoff = 10 * time.Second
			}
		}
		out, err := fn()
		if err == nil {
			return out, nil
		}
		lastErr = err
	}
	return "", lastErr
}

func orAny(s string) string {
	if s == "" {
		return "Any"
	}
	return s
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"roamio/internal/models/db_models"
	"roamio/internal/models/request_models"
	"roamio/internal/models/response_models"
	"roamio/internal/repositories"
	"roamio/pkg/logger"
	"roamio/pkg/utils"
)

const itineraryCacheTTL = time.Hour

type TripServiceInterface interface {
	CreateTrip(ctx context.Context, req request_models.TripRequest) (*response_models.TripResponse, error)
	GetTrip(ctx context.Context, tripID string) (*response_models.TripResponse, error)
	UpdateTrip(ctx context.Context, tripID string, update request_models.TripUpdateRequest) (*response_models.TripResponse, error)
	GetTripSummary(ctx context.Context, tripID string) (*response_models.TripShareSummary, error)
}

type tripService struct {
	planner   utils.PlannerClientInterface
	router    RouteService
	tripRepo  repositories.TripRepository
	cache     *redis.Client
	analytics AnalyticsServiceInterface
}

func NewTripService(
	planner utils.PlannerClientInterface,
	router RouteService,
	tripRepo repositories.TripRepository,
	cache *redis.Client,
	analytics AnalyticsServiceInterface,
) TripServiceInterface {
	return &tripService{
		planner:   planner,
		router:    router,
		tripRepo:  tripRepo,
		cache:     cache,
		analytics: analytics,
	}
}

func (s *tripService) CreateTrip(ctx context.Context, req request_models.TripRequest) (*response_models.TripResponse, error) {
	if _, _, err := req.Dates(); err != nil {
		return nil, utils.ErrInvalidDateRange
	}
	if req.TravelersCount < 1 {
		req.TravelersCount = 1
	}

	itinerary := s.generateItinerary(ctx, req)

	s.router.OptimizeItinerary(ctx, itinerary, req.TransportPreference)

	trip, err := s.persistTrip(ctx, req, itinerary)
	if err != nil {
		return nil, err
	}

	s.analytics.TrackEvent(ctx, "trip_created", map[string]any{
		"trip_id":       trip.ID.String(),
		"destination":   req.Destination,
		"duration_days": req.DurationDays(),
		"budget":        req.Budget,
		"fallback_mode": itinerary.FallbackMode,
	})

	return &response_models.TripResponse{
		TripID:    trip.ID.String(),
		Status:    string(trip.Status),
		Itinerary: itinerary,
		CreatedAt: utils.FormatRFC3339IST(utils.FromUnixSecondsIST(trip.CreatedAt)),
	}, nil
}

// generateItinerary tries the cache, then the model, then the static
// fallback plan. It never returns nil.
func (s *tripService) generateItinerary(ctx context.Context, req request_models.TripRequest) *response_models.Itinerary {
	cacheKey := itineraryCacheKey(req)
	if s.cache != nil {
		if raw, err := s.cache.Get(ctx, cacheKey).Bytes(); err == nil {
			var cached response_models.Itinerary
			if json.Unmarshal(raw, &cached) == nil {
				logger.Log.WithField("destination", req.Destination).Info("itinerary cache hit")
				return &cached
			}
		}
	}

	content, err := s.planner.GenerateItineraryJSON(ctx, req)
	if err != nil {
		logger.Log.WithError(err).Error("itinerary generation failed, serving fallback plan")
		return BuildFallbackItinerary(req)
	}

	itinerary, err := ParseAndValidateItinerary(content, req)
	if err != nil {
		logger.Log.WithError(err).Error("itinerary parse failed, serving fallback plan")
		return BuildFallbackItinerary(req)
	}

	AdjustForBudget(itinerary, req.Budget)

	if s.cache != nil {
		if raw, err := json.Marshal(itinerary); err == nil {
			s.cache.Set(ctx, cacheKey, raw, itineraryCacheTTL)
		}
	}
	return itinerary
}

func itineraryCacheKey(req request_models.TripRequest) string {
	return fmt.Sprintf("itinerary:%s:%.0f:%d:%s",
		strings.ToLower(req.Destination), req.Budget, req.DurationDays(),
		strings.ToLower(strings.Join(req.Themes, ",")))
}

// ParseAndValidateItinerary decodes a model reply and enforces the
// minimum shape: daily_itineraries present and sized to the trip,
// cost_breakdown and total present, every activity carrying an id.
func ParseAndValidateItinerary(content string, req request_models.TripRequest) (*response_models.Itinerary, error) {
	var itinerary response_models.Itinerary
	if err := json.Unmarshal([]byte(utils.CleanJSONResponse(content)), &itinerary); err != nil {
		return nil, fmt.Errorf("itinerary decode: %w", err)
	}

	if len(itinerary.DailyItineraries) == 0 {
		return nil, fmt.Errorf("itinerary has no daily plans")
	}

	duration := req.DurationDays()
	if len(itinerary.DailyItineraries) > duration {
		itinerary.DailyItineraries = itinerary.DailyItineraries[:duration]
	}

	start, _, err := req.Dates()
	if err != nil {
		return nil, err
	}
	for i := range itinerary.DailyItineraries {
		day := &itinerary.DailyItineraries[i]
		if day.DayNumber == 0 {
			day.DayNumber = i + 1
		}
		if day.Date == "" {
			day.Date = start.AddDate(0, 0, i).Format("2006-01-02")
		}
		for j := range day.Activities {
			if day.Activities[j].ActivityID == "" {
				day.Activities[j].ActivityID = uuid.NewString()
			}
		}
	}

	if itinerary.CostBreakdown == nil {
		itinerary.CostBreakdown = map[string]float64{
			"accommodation": 0, "meals": 0, "activities": 0, "transport": 0, "miscellaneous": 0,
		}
	}
	if itinerary.TotalEstimatedCost == 0 {
		for _, d := range itinerary.DailyItineraries {
			itinerary.TotalEstimatedCost += d.DayTotalCost
		}
	}
	if itinerary.TripSummary.Destination == "" {
		itinerary.TripSummary = response_models.TripSummaryInfo{
			Destination:  req.Destination,
			DurationDays: duration,
			TotalBudget:  req.Budget,
			Themes:       req.Themes,
		}
	}

	return &itinerary, nil
}

// AdjustForBudget scales every cost by budget/total when the plan
// overshoots, then pins the total to the budget.
func AdjustForBudget(itinerary *response_models.Itinerary, budget float64) {
	if itinerary.TotalEstimatedCost <= budget || itinerary.TotalEstimatedCost == 0 {
		return
	}
	ratio := budget / itinerary.TotalEstimatedCost

	for k, v := range itinerary.CostBreakdown {
		itinerary.CostBreakdown[k] = roundTo(v*ratio, 0)
	}
	for i := range itinerary.DailyItineraries {
		day := &itinerary.DailyItineraries[i]
		day.DayTotalCost = roundTo(day.DayTotalCost*ratio, 0)
		for j := range day.Activities {
			day.Activities[j].CostPerPerson = roundTo(day.Activities[j].CostPerPerson*ratio, 0)
			day.Activities[j].TotalCost = roundTo(day.Activities[j].TotalCost*ratio, 0)
		}
		for j := range day.Meals {
			day.Meals[j].CostEstimate = roundTo(day.Meals[j].CostEstimate*ratio, 0)
		}
		for j := range day.Transport {
			day.Transport[j].Cost = roundTo(day.Transport[j].Cost*ratio, 0)
		}
	}

	itinerary.TotalEstimatedCost = budget
	itinerary.BudgetAdjusted = true
}

// BuildFallbackItinerary produces a bare but bookable plan when the
// model is unavailable: one sightseeing and one cultural slot per day.
func BuildFallbackItinerary(req request_models.TripRequest) *response_models.Itinerary {
	duration := req.DurationDays()
	if duration < 1 {
		duration = 1
	}
	travelers := req.TravelersCount
	if travelers < 1 {
		travelers = 1
	}
	dailyBudget := req.Budget / float64(duration)
	start, _, _ := req.Dates()

	days := make([]response_models.DayItinerary, 0, duration)
	for d := 1; d <= duration; d++ {
		date := ""
		if !start.IsZero() {
			date = start.AddDate(0, 0, d-1).Format("2006-01-02")
		}
		perActivity := roundTo(dailyBudget*0.3/float64(travelers), 0)
		days = append(days, response_models.DayItinerary{
			DayNumber: d,
			Date:      date,
			DayTheme:  "Explore " + req.Destination,
			Activities: []response_models.Activity{
				{
					ActivityID:    uuid.NewString(),
					TimeSlot:      "09:00-12:00",
					Name:          fmt.Sprintf("%s sightseeing, day %d", req.Destination, d),
					Description:   "Visit the main attractions at your own pace.",
					Location:      response_models.ActivityLocation{Name: req.Destination},
					Category:      "sightseeing",
					CostPerPerson: perActivity,
					TotalCost:     perActivity * float64(travelers),
				},
				{
					ActivityID:    uuid.NewString(),
					TimeSlot:      "14:00-17:00",
					Name:          "Local culture and markets",
					Description:   "Explore local markets, food streets and cultural spots.",
					Location:      response_models.ActivityLocation{Name: req.Destination},
					Category:      "cultural",
					CostPerPerson: perActivity,
					TotalCost:     perActivity * float64(travelers),
				},
			},
			DayTotalCost: roundTo(dailyBudget, 0),
		})
	}

	return &response_models.Itinerary{
		TripSummary: response_models.TripSummaryInfo{
			Destination:  req.Destination,
			DurationDays: duration,
			TotalBudget:  req.Budget,
			Themes:       req.Themes,
		},
		DailyItineraries: days,
		CostBreakdown: map[string]float64{
			"accommodation": roundTo(req.Budget*0.35, 0),
			"meals":         roundTo(req.Budget*0.25, 0),
			"activities":    roundTo(req.Budget*0.20, 0),
			"transport":     roundTo(req.Budget*0.15, 0),
			"miscellaneous": roundTo(req.Budget*0.05, 0),
		},
		TotalEstimatedCost: req.Budget,
		FallbackMode:       true,
		Message:            "Generated a basic plan while the full planner was unavailable. Try again later for a richer itinerary.",
	}
}

func (s *tripService) persistTrip(ctx context.Context, req request_models.TripRequest, itinerary *response_models.Itinerary) (*db_models.Trip, error) {
	itineraryJSON, err := json.Marshal(itinerary)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	themesJSON, _ := json.Marshal(req.Themes)
	if req.Themes == nil {
		themesJSON = []byte("[]")
	}

	trip := &db_models.Trip{
		Destination:    req.Destination,
		StartDate:      req.StartDate,
		EndDate:        req.EndDate,
		DurationDays:   req.DurationDays(),
		Budget:         req.Budget,
		TravelersCount: req.TravelersCount,
		Themes:         themesJSON,
		Language:       req.Language,
		Status:         db_models.TripStatusPlanned,
		Itinerary:      itineraryJSON,
	}
	if req.UserID != "" {
		if uid, err := uuid.Parse(req.UserID); err == nil {
			trip.AccountID = &uid
		}
	}

	if err := s.tripRepo.Insert(ctx, trip); err != nil {
		logger.Log.WithError(err).Error("failed to persist trip")
		return nil, utils.ErrDatabaseError
	}
	return trip, nil
}

func (s *tripService) GetTrip(ctx context.Context, tripID string) (*response_models.TripResponse, error) {
	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	var itinerary response_models.Itinerary
	if err := json.Unmarshal(trip.Itinerary, &itinerary); err != nil {
		return nil, utils.ErrDatabaseError
	}

	return &response_models.TripResponse{
		TripID:    trip.ID.String(),
		Status:    string(trip.Status),
		Itinerary: &itinerary,
		CreatedAt: utils.FormatRFC3339IST(utils.FromUnixSecondsIST(trip.CreatedAt)),
		UpdatedAt: utils.FormatRFC3339IST(utils.FromUnixSecondsIST(trip.UpdatedAt)),
	}, nil
}

func (s *tripService) UpdateTrip(ctx context.Context, tripID string, update request_models.TripUpdateRequest) (*response_models.TripResponse, error) {
	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	var itinerary response_models.Itinerary
	if err := json.Unmarshal(trip.Itinerary, &itinerary); err != nil {
		return nil, utils.ErrDatabaseError
	}

	if err := ApplyItineraryUpdate(&itinerary, update); err != nil {
		return nil, err
	}

	recomputeTotals(&itinerary)

	raw, err := json.Marshal(&itinerary)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	trip.Itinerary = raw
	if err := s.tripRepo.Update(ctx, trip); err != nil {
		return nil, utils.ErrDatabaseError
	}

	s.analytics.TrackEvent(ctx, "trip_updated", map[string]any{
		"trip_id":     tripID,
		"update_type": update.UpdateType,
		"day_number":  update.DayNumber,
	})

	return &response_models.TripResponse{
		TripID:    trip.ID.String(),
		Status:    string(trip.Status),
		Itinerary: &itinerary,
		CreatedAt: utils.FormatRFC3339IST(utils.FromUnixSecondsIST(trip.CreatedAt)),
		UpdatedAt: utils.FormatRFC3339IST(utils.FromUnixSecondsIST(trip.UpdatedAt)),
	}, nil
}

// ApplyItineraryUpdate mutates a single day of the plan.
func ApplyItineraryUpdate(itinerary *response_models.Itinerary, update request_models.TripUpdateRequest) error {
	day := findDay(itinerary, update.DayNumber)
	if day == nil {
		return utils.ErrInvalidInput
	}

	switch update.UpdateType {
	case "add":
		if update.Activity == nil {
			return utils.ErrInvalidInput
		}
		activity, err := decodeActivity(update.Activity)
		if err != nil {
			return utils.ErrInvalidInput
		}
		if activity.ActivityID == "" {
			activity.ActivityID = uuid.NewString()
		}
		day.Activities = append(day.Activities, activity)

	case "remove":
		idx := findActivity(day, update.ActivityID)
		if idx == -1 {
			return utils.ErrInvalidInput
		}
		day.Activities = append(day.Activities[:idx], day.Activities[idx+1:]...)

	case "modify":
		idx := findActivity(day, update.ActivityID)
		if idx == -1 || update.Activity == nil {
			return utils.ErrInvalidInput
		}
		merged, err := mergeActivity(day.Activities[idx], update.Activity)
		if err != nil {
			return utils.ErrInvalidInput
		}
		day.Activities[idx] = merged

	case "reschedule":
		idx := findActivity(day, update.ActivityID)
		if idx == -1 {
			return utils.ErrInvalidInput
		}
		activity := day.Activities[idx]
		if update.NewTimeSlot != "" {
			activity.TimeSlot = update.NewTimeSlot
		}
		if update.NewDay != 0 && update.NewDay != update.DayNumber {
			target := findDay(itinerary, update.NewDay)
			if target == nil {
				return utils.ErrInvalidInput
			}
			day.Activities = append(day.Activities[:idx], day.Activities[idx+1:]...)
			target.Activities = append(target.Activities, activity)
		} else {
			day.Activities[idx] = activity
		}

	default:
		return utils.ErrInvalidInput
	}
	return nil
}

func findDay(itinerary *response_models.Itinerary, dayNumber int) *response_models.DayItinerary {
	for i := range itinerary.DailyItineraries {
		if itinerary.DailyItineraries[i].DayNumber == dayNumber {
			return &itinerary.DailyItineraries[i]
		}
	}
	return nil
}

func findActivity(day *response_models.DayItinerary, activityID string) int {
	for i := range day.Activities {
		if day.Activities[i].ActivityID == activityID {
			return i
		}
	}
	return -1
}

func decodeActivity(raw map[string]any) (response_models.Activity, error) {
	var activity response_models.Activity
	data, err := json.Marshal(raw)
	if err != nil {
		return activity, err
	}
	err = json.Unmarshal(data, &activity)
	return activity, err
}

func mergeActivity(base response_models.Activity, patch map[string]any) (response_models.Activity, error) {
	data, err := json.Marshal(patch)
	if err != nil {
		return base, err
	}
	err = json.Unmarshal(data, &base)
	return base, err
}

func recomputeTotals(itinerary *response_models.Itinerary) {
	total := 0.0
	activities := 0.0
	meals := 0.0
	transport := 0.0
	for i := range itinerary.DailyItineraries {
		day := &itinerary.DailyItineraries[i]
		dayTotal := 0.0
		for _, a := range day.Activities {
			dayTotal += a.TotalCost
			activities += a.TotalCost
		}
		for _, m := range day.Meals {
			dayTotal += m.CostEstimate
			meals += m.CostEstimate
		}
		for _, t := range day.Transport {
			dayTotal += t.Cost
			transport += t.Cost
		}
		day.DayTotalCost = roundTo(dayTotal, 0)
		total += dayTotal
	}
	if itinerary.CostBreakdown != nil {
		itinerary.CostBreakdown["activities"] = roundTo(activities, 0)
		itinerary.CostBreakdown["meals"] = roundTo(meals, 0)
		itinerary.CostBreakdown["transport"] = roundTo(transport, 0)
	}
	itinerary.TotalEstimatedCost = roundTo(total, 0)
}

func (s *tripService) GetTripSummary(ctx context.Context, tripID string) (*response_models.TripShareSummary, error) {
	trip, err := s.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}

	var itinerary response_models.Itinerary
	if err := json.Unmarshal(trip.Itinerary, &itinerary); err != nil {
		return nil, utils.ErrDatabaseError
	}

	// Top two activities per day, capped at five highlights overall.
	highlights := make([]string, 0, 5)
	for _, day := range itinerary.DailyItineraries {
		for i, a := range day.Activities {
			if i >= 2 || len(highlights) >= 5 {
				break
			}
			highlights = append(highlights, a.Name)
		}
		if len(highlights) >= 5 {
			break
		}
	}

	base := os.Getenv("APP_BASE_URL")
	if base == "" {
		base = "https://roamio.app"
	}

	return &response_models.TripShareSummary{
		TripID:        trip.ID.String(),
		Destination:   trip.Destination,
		DurationDays:  trip.DurationDays,
		TotalBudget:   trip.Budget,
		EstimatedCost: itinerary.TotalEstimatedCost,
		Highlights:    highlights,
		ShareableLink: fmt.Sprintf("%s/trips/%s", strings.TrimRight(base, "/"), trip.ID.String()),
	}, nil
}

func (s *tripService) loadTrip(ctx context.Context, tripID string) (*db_models.Trip, error) {
	if _, err := uuid.Parse(tripID); err != nil {
		return nil, utils.ErrInvalidInput
	}
	trip, err := s.tripRepo.FindById(ctx, tripID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

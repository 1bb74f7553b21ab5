package controllers

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"roamio/internal/services"
	"roamio/pkg/utils"
)

type HealthController struct {
	db        *gorm.DB
	cache     *redis.Client
	places    services.PlacesServiceInterface
	analytics services.AnalyticsServiceInterface
}

func NewHealthController(
	db *gorm.DB,
	cache *redis.Client,
	places services.PlacesServiceInterface,
	analytics services.AnalyticsServiceInterface,
) *HealthController {
	return &HealthController{
		db:        db,
		cache:     cache,
		places:    places,
		analytics: analytics,
	}
}

// Root godoc
// @Summary Service info
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router / [get]
func (h *HealthController) Root(c *gin.Context) {
	utils.RespondSuccess(c, gin.H{
		"name":    "roamio",
		"version": "1.0.0",
		"docs":    "/api/v1",
	}, "AI trip planning backend")
}

// Health godoc
// @Summary Health check
// @Description Per-dependency health: database, cache, maps, warehouse
// @Tags Health
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /health [get]
func (h *HealthController) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	checks := gin.H{
		"database":  h.checkDatabase(ctx),
		"cache":     h.checkCache(ctx),
		"maps":      statusOf(h.places.Healthy(ctx)),
		"warehouse": statusOf(h.analytics.Healthy(ctx)),
		"planner":   statusOf(os.Getenv("GEMINI_API_KEY") != "" || os.Getenv("OPENAI_API_KEY") != ""),
	}

	code := http.StatusOK
	status := "healthy"
	if checks["database"] != "up" {
		code = http.StatusServiceUnavailable
		status = "degraded"
	}

	c.JSON(code, utils.APIResponse{
		Status:  status,
		Code:    code,
		TraceID: c.GetString("trace_id"),
		Data:    checks,
	})
}

func (h *HealthController) checkDatabase(ctx context.Context) string {
	if h.db == nil {
		return "down"
	}
	sqlDB, err := h.db.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		return "down"
	}
	return "up"
}

func (h *HealthController) checkCache(ctx context.Context) string {
	if h.cache == nil {
		return "disabled"
	}
	if err := h.cache.Ping(ctx).Err(); err != nil {
		return "down"
	}
	return "up"
}

func statusOf(ok bool) string {
	if ok {
		return "up"
	}
	return "disabled"
}

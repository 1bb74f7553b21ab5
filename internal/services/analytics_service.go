package services

import (
	"context"
	"encoding/json"
	"time"

	"cloud.google.com/go/bigquery"
	"github.com/google/uuid"

	"roamio/internal/infra"
	"roamio/pkg/logger"
)

type AnalyticsServiceInterface interface {
	TrackEvent(ctx context.Context, eventType string, properties map[string]any)
	LogRequest(ctx context.Context, row RequestLogRow)
	Healthy(ctx context.Context) bool
}

// eventRow matches the warehouse events table schema.
type eventRow struct {
	EventID    string
	EventType  string
	Properties string
	OccurredAt time.Time
}

func (r eventRow) Save() (map[string]bigquery.Value, string, error) {
	return map[string]bigquery.Value{
		"event_id":    r.EventID,
		"event_type":  r.EventType,
		"properties":  r.Properties,
		"occurred_at": r.OccurredAt,
	}, r.EventID, nil
}

// RequestLogRow mirrors the app_logs table: one row per API request.
type RequestLogRow struct {
	TraceID    string
	Method     string
	Path       string
	StatusCode int
	DurationMs float64
	ClientIP   string
	OccurredAt time.Time
}

func (r RequestLogRow) Save() (map[string]bigquery.Value, string, error) {
	return map[string]bigquery.Value{
		"trace_id":    r.TraceID,
		"method":      r.Method,
		"path":        r.Path,
		"status_code": r.StatusCode,
		"duration_ms": r.DurationMs,
		"client_ip":   r.ClientIP,
		"occurred_at": r.OccurredAt,
	}, "", nil
}

type analyticsService struct {
	events   *bigquery.Inserter
	appLogs  *bigquery.Inserter
	producer *infra.EventProducer
}

// NewAnalyticsService wires the BigQuery dataset and the Kafka mirror.
// Both are optional; with neither configured events only hit the log.
func NewAnalyticsService(client *bigquery.Client, producer *infra.EventProducer) AnalyticsServiceInterface {
	s := &analyticsService{producer: producer}
	if client != nil {
		dataset := client.Dataset(envOr("BIGQUERY_DATASET", "roamio_analytics"))
		s.events = dataset.Table("events").Inserter()
		s.appLogs = dataset.Table("app_logs").Inserter()
	}
	return s
}

// TrackEvent is fire and forget: inserts run on their own goroutine with
// a short deadline and never surface errors to the request path.
func (s *analyticsService) TrackEvent(ctx context.Context, eventType string, properties map[string]any) {
	props, err := json.Marshal(properties)
	if err != nil {
		props = []byte("{}")
	}
	row := eventRow{
		EventID:    uuid.NewString(),
		EventType:  eventType,
		Properties: string(props),
		OccurredAt: time.Now().UTC(),
	}

	logger.Log.WithField("event_type", eventType).Debug("analytics event")

	go func() {
		bg, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if s.events != nil {
			if err := s.events.Put(bg, row); err != nil {
				logger.Log.WithError(err).Warn("bigquery event insert failed")
			}
		}
		if err := s.producer.Publish(bg, eventType, row); err != nil {
			logger.Log.WithError(err).Warn("kafka event publish failed")
		}
	}()
}

func (s *analyticsService) LogRequest(ctx context.Context, row RequestLogRow) {
	if s.appLogs == nil {
		return
	}
	go func() {
		bg, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := s.appLogs.Put(bg, row); err != nil {
			logger.Log.WithError(err).Warn("bigquery request log insert failed")
		}
	}()
}

func (s *analyticsService) Healthy(ctx context.Context) bool {
	return s.events != nil
}

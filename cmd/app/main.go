package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"roamio/cmd/fx/account_fx"
	"roamio/cmd/fx/assistant_fx"
	"roamio/cmd/fx/booking_fx"
	"roamio/cmd/fx/cache_fx"
	"roamio/cmd/fx/db_fx"
	"roamio/cmd/fx/maps_fx"
	"roamio/cmd/fx/payment_fx"
	"roamio/cmd/fx/planner_fx"
	"roamio/cmd/fx/trip_fx"
	"roamio/cmd/fx/warehouse_fx"
	"roamio/internal/api/controllers"
	"roamio/internal/services"
	"roamio/pkg/logger"
	"roamio/pkg/middleware"
)

func main() {
	_ = godotenv.Load()
	logger.Init()

	app := fx.New(
		db_fx.Module,
		cache_fx.Module,
		warehouse_fx.Module,
		planner_fx.Module,
		maps_fx.Module,
		account_fx.Module,
		trip_fx.Module,
		booking_fx.Module,
		payment_fx.Module,
		assistant_fx.Module,

		fx.Provide(
			controllers.NewTripController,
			controllers.NewBookingController,
			controllers.NewPaymentController,
			controllers.NewAssistantController,
			controllers.NewPlacesController,
			controllers.NewAccountController,
			controllers.NewHealthController,
		),

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				logger.Log.WithField("port", port).Info("starting HTTP server")
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Log.Info("stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	cache *redis.Client,
	analytics services.AnalyticsServiceInterface,
	tripController *controllers.TripController,
	bookingController *controllers.BookingController,
	paymentController *controllers.PaymentController,
	assistantController *controllers.AssistantController,
	placesController *controllers.PlacesController,
	accountController *controllers.AccountController,
	healthController *controllers.HealthController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(analytics))
	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "X-Trace-ID"},
		ExposeHeaders: []string{"X-Trace-ID"},
	}))

	RegisterRoutes(r, cache,
		tripController, bookingController, paymentController,
		assistantController, placesController, accountController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	cache *redis.Client,
	tripController *controllers.TripController,
	bookingController *controllers.BookingController,
	paymentController *controllers.PaymentController,
	assistantController *controllers.AssistantController,
	placesController *controllers.PlacesController,
	accountController *controllers.AccountController,
	healthController *controllers.HealthController) {

	r.GET("/", healthController.Root)

	v1 := r.Group("/api/v1")
	if os.Getenv("RATE_LIMIT_ENABLED") == "true" {
		v1.Use(middleware.NewRateLimiter(cache, "api", "120-1m"))
	}

	v1.GET("/health", healthController.Health)

	trips := v1.Group("/trips")
	trips.POST("/create", tripController.CreateTrip)
	trips.GET("/:tripId", tripController.GetTrip)
	trips.PUT("/:tripId/update", tripController.UpdateTrip)
	trips.GET("/:tripId/summary", tripController.GetTripSummary)

	bookings := v1.Group("/bookings")
	bookings.POST("/create", bookingController.CreateBooking)
	bookings.POST("/:bookingId/confirm", bookingController.ConfirmBooking)
	bookings.POST("/:bookingId/cancel", bookingController.CancelBooking)
	bookings.GET("/:bookingId/status", bookingController.GetBookingStatus)

	payments := v1.Group("/payments")
	payments.POST("/create-session", paymentController.CreateSession)
	payments.POST("/process", paymentController.ProcessPayment)
	payments.GET("/verify/:sessionId", paymentController.VerifySession)
	payments.POST("/refund", paymentController.Refund)

	v1.POST("/chat", assistantController.Chat)
	v1.POST("/suggestions", assistantController.Suggestions)

	places := v1.Group("/places")
	places.GET("/search", placesController.SearchPlaces)
	places.POST("/nearby", placesController.NearbyPlaces)

	v1.POST("/directions", placesController.GetDirections)
	v1.POST("/hotels/search", placesController.SearchHotels)
	v1.POST("/restaurants/search", placesController.SearchRestaurants)

	accounts := v1.Group("/accounts")
	accounts.POST("/register", accountController.Register)
	accounts.POST("/login", accountController.Login)
	accounts.GET("/me", middleware.JWTAuthMiddleware(), accountController.Me)
}

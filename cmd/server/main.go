package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/redis/go-redis/v9"

	"careride/internal/app"
	"careride/internal/config"
	"careride/internal/geo"
	"careride/internal/handler"
	internalRedis "careride/internal/redis"
	"careride/internal/repository/postgres"
	"careride/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize New Relic first so the database driver can be instrumented.
	var nrApp *newrelic.Application
	var err error
	if cfg.NewRelic.Enabled && cfg.NewRelic.LicenseKey != "" {
		nrApp, err = newrelic.NewApplication(
			newrelic.ConfigAppName(cfg.NewRelic.AppName),
			newrelic.ConfigLicense(cfg.NewRelic.LicenseKey),
			newrelic.ConfigDistributedTracerEnabled(true),
			newrelic.ConfigAppLogForwardingEnabled(true),
		)
		if err != nil {
			log.Printf("failed to initialize New Relic: %v", err)
		} else {
			log.Printf("New Relic enabled: app=%s", cfg.NewRelic.AppName)
		}
	}

	db, err := app.NewDatabase(ctx, cfg.Database, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	redisClient, err := app.NewRedisClient(ctx, cfg.Redis, nrApp)
	if err != nil {
		log.Fatalf("failed to connect to redis: %v", err)
	}
	defer redisClient.Close()
	log.Println("Connected to Redis")

	routes, err := newRouteProvider(cfg.Maps)
	if err != nil {
		log.Fatalf("failed to initialize route provider: %v", err)
	}

	server := wireServer(db, redisClient, routes, nrApp, cfg)

	go func() {
		log.Printf("Starting server on port %s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	// Graceful shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

// newRouteProvider picks the routing backend: Google Maps when an API key
// is configured, the deterministic in-memory provider otherwise.
func newRouteProvider(cfg config.MapsConfig) (geo.RouteProvider, error) {
	if cfg.APIKey == "" {
		log.Println("GOOGLE_MAPS_API_KEY not set, using static route provider")
		return geo.NewStaticProvider(), nil
	}
	return geo.NewGoogleMapsProvider(cfg.APIKey, cfg.Timeout)
}

// wireServer wires all dependencies and returns the HTTP server.
func wireServer(db *sql.DB, redisClient *redis.Client, routes geo.RouteProvider, nrApp *newrelic.Application, cfg *config.Config) *http.Server {
	// Redis-backed stores.
	lockStore := internalRedis.NewLockStore(redisClient)
	routeCache := internalRedis.NewRouteCacheStore(redisClient)
	cachedRoutes := internalRedis.NewCachedRouteProvider(routeCache, routes)

	// Repositories.
	userRepo := postgres.NewUserRepository(db)
	volunteerRepo := postgres.NewVolunteerRepository(db)
	rideRepo := postgres.NewRideRepository(db)

	// Services.
	notifier := service.NewNotificationService()
	ranker := service.NewTravelTimeRanker(cachedRoutes)
	matcher := service.NewMatchingEngine(volunteerRepo, ranker)
	coordinator := service.NewDispatchCoordinator(
		rideRepo, userRepo, volunteerRepo, cachedRoutes, matcher, lockStore, notifier)

	// Handlers.
	userHandler := handler.NewUserHandler(userRepo)
	volunteerHandler := handler.NewVolunteerHandler(volunteerRepo)
	rideHandler := handler.NewRideHandler(coordinator)

	router := app.NewRouter(app.RouterDeps{
		UserHandler:      userHandler,
		VolunteerHandler: volunteerHandler,
		RideHandler:      rideHandler,
		RedisClient:      redisClient,
		NewRelicApp:      nrApp,
	})

	return &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}
}

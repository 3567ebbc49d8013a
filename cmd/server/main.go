package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/amenegatti1/flight-price-monitor/internal/infrastructure/config"
	"github.com/amenegatti1/flight-price-monitor/internal/infrastructure/oauth"
	"github.com/amenegatti1/flight-price-monitor/internal/infrastructure/persistence"
	"github.com/amenegatti1/flight-price-monitor/internal/interface/amadeus"
	"github.com/amenegatti1/flight-price-monitor/internal/interface/gmail"
	mongoRepo "github.com/amenegatti1/flight-price-monitor/internal/interface/repository"
	"github.com/amenegatti1/flight-price-monitor/internal/usecase"
	"github.com/amenegatti1/flight-price-monitor/pkg/airlines"
	"github.com/amenegatti1/flight-price-monitor/pkg/logger"
	"github.com/amenegatti1/flight-price-monitor/pkg/metrics"
	"github.com/amenegatti1/flight-price-monitor/templates"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	airlineRepo "github.com/amenegatti1/flight-price-monitor/internal/interface/repository"
	"github.com/amenegatti1/flight-price-monitor/internal/domain/repository"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Create logger
	log := logger.NewLogger(cfg.LogLevel)
	log.Info("Starting Flight Price Monitor", "version", cfg.AppVersion)

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up MongoDB connection
	log.Info("Connecting to MongoDB")
	mongoClient, db, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}

	// Optional airline reference table
	var airlineRepository repository.AirlineRepository
	if cfg.PostgresURI != "" {
		gormDB, err := gorm.Open(postgres.Open(cfg.PostgresURI), &gorm.Config{})
		if err != nil {
			log.Fatal("Failed to connect to PostgreSQL", "error", err)
		}
		airlineRepository = airlineRepo.NewGormAirlineRepository(gormDB)
	}

	// Set up repositories
	observationRepository := mongoRepo.NewMongoObservationRepository(db)
	resolver := airlines.NewResolver(airlineRepository)

	// Set up Amadeus provider
	amadeusOAuth := oauth.NewAmadeusOAuth(cfg.AmadeusAPIKey, cfg.AmadeusAPISecret, cfg.AmadeusBaseURL, log)
	provider := amadeus.NewClient(cfg.AmadeusBaseURL, amadeusOAuth.Client(ctx), cfg.Adults, cfg.CurrencyCode, cfg.MaxResults, log)

	// Set up Gmail notification sink
	if cfg.GmailRefreshToken == "" {
		log.Warn("Gmail credentials not configured, notifications will fail gracefully")
	}
	gmailOAuth := oauth.NewGmailOAuth(
		cfg.GmailClientID,
		cfg.GmailClientSecret,
		cfg.GmailRefreshToken,
		log,
	)
	notifier, err := gmail.NewGmailSender(ctx, gmailOAuth.GetTokenSource(ctx), cfg.EmailFrom, cfg.EmailTo, log)
	if err != nil {
		log.Fatal("Failed to create Gmail sender", "error", err)
	}

	// Set up the monitoring pass
	appMetrics := metrics.NewMetrics("flightwatch")
	normalizer := usecase.NewOfferNormalizer(resolver)
	evaluator := usecase.NewAlertEvaluator(observationRepository, log)
	formatter := templates.NewPriceReportFormatter()
	monitor := usecase.NewMonitor(provider, observationRepository, notifier, normalizer, evaluator, formatter, appMetrics, log)

	params := usecase.PassParams{
		Origin:        cfg.Origin,
		Destination:   cfg.Destination,
		Dates:         cfg.DepartureDates,
		TravelClasses: cfg.TravelClasses,
		Policy: usecase.FilterPolicy{
			MaxPrice:      cfg.MaxPriceFilter,
			ExemptCarrier: cfg.ExemptCarrier,
			DirectOnly:    cfg.DirectOnly,
		},
		Thresholds: usecase.AlertThresholds{
			MaxPriceAlert:      cfg.MaxPriceAlert,
			MinSeatsAlert:      cfg.MinSeatsAlert,
			TargetFlightNumber: cfg.TargetFlightNumber,
		},
		NotifyAlways: cfg.NotifyAlways,
	}

	runPass := func() {
		result, err := monitor.RunPass(ctx, params)
		if err != nil {
			log.Error("Monitoring pass failed", "error", err)
			return
		}
		// Console sink
		fmt.Println(result.Report)
		if result.Triggered {
			log.Info("Alert triggered", "alerts", result.AlertCount)
		}
	}

	// Run the first pass immediately, then on the configured interval.
	// CHECK_INTERVAL=0 runs a single pass and exits (cron-style usage).
	passDone := make(chan struct{})
	go func() {
		runPass()
		if cfg.CheckInterval <= 0 {
			close(passDone)
			return
		}

		ticker := time.NewTicker(cfg.CheckInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Pass loop stopped")
				return
			case <-ticker.C:
				runPass()
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal or single-pass completion
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigChan:
		log.Info("Received signal", "signal", sig)
	case <-passDone:
		log.Info("Single pass completed")
	}

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Flight Price Monitor stopped")
}

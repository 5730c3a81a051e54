package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zerah-finance/config"
	"zerah-finance/internal/adapter/events"
	"zerah-finance/internal/adapter/genai"
	httpHandler "zerah-finance/internal/adapter/http/handler"
	pgStorage "zerah-finance/internal/adapter/storage/postgres"
	redisStorage "zerah-finance/internal/adapter/storage/redis"
	"zerah-finance/internal/core/domain"
	"zerah-finance/internal/core/exchange"
	"zerah-finance/internal/core/ledger"
	"zerah-finance/internal/core/ports"
	"zerah-finance/internal/service"
	"zerah-finance/pkg/logger"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Log.Level, cfg.Log.Pretty)

	log.Info().
		Str("mode", cfg.Server.Mode).
		Int("port", cfg.Server.Port).
		Msg("Starting Zerah Finance ledger")

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Fee policies and rate table
	transferFee, err := cfg.Ledger.TransferFee()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid transfer fee")
	}
	exchangeFee, err := cfg.Ledger.ExchangeFee()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid exchange fee")
	}
	perUSD, err := cfg.Ledger.Rates()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid rate table")
	}
	rates, err := exchange.NewRateTable(perUSD)
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid rate table")
	}

	var (
		idempotencyCache ports.IdempotencyCache
		rateLimitStore   ports.RateLimitStore
		auditRepo        ports.AuditRepository
		journal          *service.JournalService
		healthCheckers   []ports.HealthChecker
	)

	// Optional PostgreSQL journal
	if cfg.Database.Enabled {
		pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		log.Info().Msg("PostgreSQL connected")

		journal = service.NewJournalService(
			pgStorage.NewTransactionRepo(pool),
			pgStorage.NewWalletRepo(pool),
			pgStorage.NewTransactor(pool),
			log,
		)
		auditRepo = pgStorage.NewAuditRepo(pool)
		healthCheckers = append(healthCheckers, pgStorage.NewHealthCheck(pool))
	}

	// Optional Redis idempotency cache and rate limiter
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		idempotencyCache = redisStorage.NewIdempotencyCache(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		healthCheckers = append(healthCheckers, redisStorage.NewHealthCheck(rdb))
	}

	// Initial ledger state
	initial := ledger.NewState(domain.EmptyWallets(), nil)
	if cfg.Ledger.SeedDemoData {
		initial = ledger.NewState(domain.SeedWallets(), domain.SeedTransactions())
	}

	// Initialize business services
	ledgerSvc := service.NewLedgerService(
		initial,
		exchange.NewCalculator(rates),
		ledger.NewBuilder(),
		idempotencyCache,
		service.LedgerOptions{
			Delays: map[domain.OperationKind]time.Duration{
				domain.OperationSend:    cfg.Ledger.SendDelay,
				domain.OperationConvert: cfg.Ledger.ConvertDelay,
				domain.OperationTopup:   cfg.Ledger.TopupDelay,
			},
			TransferFee:     exchange.FlatFee(transferFee),
			ExchangeFee:     exchange.PercentageFee(exchangeFee),
			IdempotencyTTL:  cfg.Ledger.IdempotencyTTL,
			ListenerTimeout: cfg.Ledger.ListenerTimeout,
		},
		log,
	)

	// Commit feed
	hub := events.NewHub(log)
	go hub.Run(ctx)
	ledgerSvc.AddListener(hub)
	if journal != nil {
		ledgerSvc.AddListener(journal)
	}

	var genClient ports.GenerativeClient
	if cfg.Assistant.APIKey != "" {
		genClient = genai.NewClient(
			cfg.Assistant.BaseURL,
			cfg.Assistant.APIKey,
			&http.Client{Timeout: cfg.Assistant.Timeout + 5*time.Second},
			log,
		)
	} else {
		log.Warn().Msg("No assistant API key configured, assistant will answer offline")
	}

	cardSvc := service.NewCardService(domain.SeedCards(), log)
	assistantSvc := service.NewAssistantService(ledgerSvc, genClient, cfg.Assistant.Model, cfg.Assistant.Timeout, log)
	profileSvc := service.NewProfileService(domain.Profile{Name: cfg.Profile.Name, IsPremium: cfg.Profile.Premium}, log)
	reportingSvc := service.NewReportingService(ledgerSvc)
	auditSvc := service.NewAuditService(auditRepo, log)

	// Setup Gin router with all routes
	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		LedgerSvc:      ledgerSvc,
		CardSvc:        cardSvc,
		AssistantSvc:   assistantSvc,
		ProfileSvc:     profileSvc,
		ReportingSvc:   reportingSvc,
		AuditSvc:       auditSvc,
		RateLimitStore: rateLimitStore,
		Hub:            hub,
		HealthCheckers: healthCheckers,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	stop()

	log.Info().Msg("Server exited")
}

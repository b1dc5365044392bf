package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"payee-treasury/config"
	httpHandler "payee-treasury/internal/adapter/http/handler"
	"payee-treasury/internal/adapter/http/middleware"
	"payee-treasury/internal/adapter/metrics"
	memStorage "payee-treasury/internal/adapter/storage/memory"
	pgStorage "payee-treasury/internal/adapter/storage/postgres"
	redisStorage "payee-treasury/internal/adapter/storage/redis"
	"payee-treasury/internal/core/ports"
	"payee-treasury/internal/service"
	"payee-treasury/pkg/logger"

	"github.com/rs/zerolog"
)

// storage bundles the repositories of one driver.
type storage struct {
	stateRepo    ports.WalletStateRepository
	payeeRepo    ports.PayeeRepository
	ledger       ports.Ledger
	eventRepo    ports.EventRepository
	auditRepo    ports.AuditRepository
	deliveryRepo ports.DeliveryRepository
	transactor   ports.DBTransactor
	health       []ports.HealthChecker
	close        func()
}

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
		Str("storage", cfg.Storage.Driver).
		Int("port", cfg.Server.Port).
		Msg("Starting Payee Treasury")

	ctx := context.Background()

	store, err := openStorage(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open storage")
	}
	defer store.close()

	// Redis is optional: without it nonces live in process memory and rate
	// limiting is disabled.
	var (
		nonceStore     ports.NonceStore = memStorage.NewNonceStore()
		rateLimitStore *redisStorage.RateLimitStore
	)
	if cfg.Redis.Enabled {
		rdb, err := redisStorage.NewClient(ctx, cfg.Redis, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		defer rdb.Close()
		log.Info().Msg("Redis connected")

		nonceStore = redisStorage.NewNonceStore(rdb)
		rateLimitStore = redisStorage.NewRateLimitStore(rdb)
		store.health = append(store.health, redisStorage.NewHealthCheck(rdb))
	} else {
		log.Warn().Msg("Redis disabled: using in-process nonce store, rate limiting off")
	}

	// Core services
	sigSvc := service.NewHMACSignatureService()
	tokenSvc := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer)
	verifier := service.NewEIP191CallerVerifier()
	promMetrics := metrics.New("")
	clock := service.SystemClock{}

	var gateway ports.PayoutGateway = service.NewLedgerPayoutGateway(log)
	if cfg.Settlement.URL != "" {
		gateway = service.NewHTTPPayoutGateway(
			cfg.Settlement.URL,
			cfg.Settlement.Secret,
			sigSvc,
			&http.Client{Timeout: cfg.Settlement.Timeout},
			clock,
			log,
		)
		log.Info().Str("url", cfg.Settlement.URL).Msg("Payouts settle through custodian")
	}

	var publisher ports.EventPublisher
	var dispatcher *service.EventDispatcher
	if cfg.Observer.URL != "" {
		dispatcher = service.NewEventDispatcher(
			cfg.Observer.URL,
			cfg.Observer.Secret,
			sigSvc,
			store.deliveryRepo,
			&http.Client{Timeout: 10 * time.Second},
			log,
		)
		if _, err := dispatcher.Resume(ctx); err != nil {
			log.Error().Err(err).Msg("Failed to resume pending event deliveries")
		}
		publisher = dispatcher
	}

	registrySvc := service.NewRegistryService(
		store.payeeRepo,
		store.stateRepo,
		store.eventRepo,
		store.transactor,
		publisher,
		clock,
		log,
	)
	treasurySvc := service.NewTreasuryService(service.TreasuryDeps{
		PayeeRepo:  store.payeeRepo,
		StateRepo:  store.stateRepo,
		EventRepo:  store.eventRepo,
		Ledger:     store.ledger,
		Transactor: store.transactor,
		Gateway:    gateway,
		Publisher:  publisher,
		Metrics:    promMetrics,
		Clock:      clock,
		Limiter:    service.NewWithdrawalLimiter(int64(cfg.Treasury.Window / time.Second)),
	}, log)
	eventSvc := service.NewEventQueryService(store.eventRepo)
	auditSvc := service.NewAuditService(store.auditRepo, log)

	// One-time construction
	if cfg.Treasury.Admin != "" {
		req, err := service.ParseConstruction(service.ConstructionParams{
			Deployer:       cfg.Treasury.Admin,
			Payees:         cfg.Treasury.Payees,
			Whitelisted:    cfg.Treasury.Whitelisted,
			DailyLimit:     cfg.Treasury.DailyLimit,
			InitialFunding: cfg.Treasury.InitialFunding,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("Invalid treasury configuration")
		}
		if _, err := service.Bootstrap(ctx, treasurySvc, req, log); err != nil {
			log.Fatal().Err(err).Msg("Failed to construct treasury")
		}
	} else {
		log.Warn().Msg("treasury.admin not set, construction skipped")
	}

	// Load OpenAPI spec for Swagger UI
	if specBytes, err := os.ReadFile("docs/api/openapi.yaml"); err == nil {
		httpHandler.SetSwaggerSpec(specBytes)
		log.Info().Msg("OpenAPI spec loaded for Swagger UI at /swagger")
	} else {
		log.Warn().Err(err).Msg("OpenAPI spec not found, Swagger UI will be unavailable")
	}

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		RegistrySvc: registrySvc,
		TreasurySvc: treasurySvc,
		EventSvc:    eventSvc,
		Verifier:    verifier,
		NonceStore:  nonceStore,
		TokenSvc:    tokenSvc,
		AuthSettings: middleware.AuthSettings{
			MaxTimestampDrift: cfg.Auth.MaxTimestampDrift,
			NonceTTL:          cfg.Auth.NonceTTL,
		},
		RateLimitStore: rateLimitStore,
		HealthCheckers: store.health,
		AuditSvc:       auditSvc,
		Metrics:        promMetrics,
		Logger:         log,
	})

	// HTTP Server with graceful shutdown
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	if dispatcher != nil {
		if err := dispatcher.Close(shutdownCtx); err != nil {
			log.Warn().Err(err).Msg("Event dispatcher stopped before draining, pending deliveries resume on next start")
		}
	}

	log.Info().Msg("Server exited")
}

func openStorage(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*storage, error) {
	if cfg.Storage.Driver == "memory" {
		log.Warn().Msg("memory storage: state is lost on restart")
		s := memStorage.NewStore()
		return &storage{
			stateRepo:    memStorage.NewWalletStateRepo(s),
			payeeRepo:    memStorage.NewPayeeRepo(s),
			ledger:       memStorage.NewLedgerRepo(s),
			eventRepo:    memStorage.NewEventRepo(s),
			auditRepo:    memStorage.NewAuditRepo(s),
			deliveryRepo: memStorage.NewDeliveryRepo(s),
			transactor:   s,
			close:        func() {},
		}, nil
	}

	pool, err := pgStorage.NewPool(ctx, cfg.Database, log)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	if err := pgStorage.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info().Msg("PostgreSQL connected")

	return &storage{
		stateRepo:    pgStorage.NewWalletStateRepo(pool),
		payeeRepo:    pgStorage.NewPayeeRepo(pool),
		ledger:       pgStorage.NewLedgerRepo(pool),
		eventRepo:    pgStorage.NewEventRepo(pool),
		auditRepo:    pgStorage.NewAuditRepo(pool),
		deliveryRepo: pgStorage.NewDeliveryRepo(pool),
		transactor:   pgStorage.NewTransactor(pool),
		health:       []ports.HealthChecker{pgStorage.NewHealthCheck(pool)},
		close:        pool.Close,
	}, nil
}

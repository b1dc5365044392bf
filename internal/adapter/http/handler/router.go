package handler

import (
	"payee-treasury/internal/adapter/http/middleware"
	"payee-treasury/internal/adapter/metrics"
	redisStore "payee-treasury/internal/adapter/storage/redis"
	"payee-treasury/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	RegistrySvc    ports.RegistryService
	TreasurySvc    ports.TreasuryService
	EventSvc       ports.EventQueryService
	Verifier       ports.CallerVerifier
	NonceStore     ports.NonceStore
	TokenSvc       ports.TokenService
	AuthSettings   middleware.AuthSettings
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	AuditSvc       ports.AuditService // nil = audit logging disabled
	Metrics        *metrics.Metrics   // nil = /metrics disabled
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))
	if deps.Metrics != nil {
		r.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
	}

	swagger := r.Group("/swagger")
	{
		swagger.GET("", SwaggerUI)
		swagger.GET("/spec", SwaggerSpec)
	}

	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	signed := middleware.SignatureAuth(deps.Verifier, deps.NonceStore, deps.AuthSettings, deps.Logger)
	callerAuth := middleware.CallerAuth(deps.Verifier, deps.NonceStore, deps.TokenSvc, deps.AuthSettings, deps.Logger)

	v1 := r.Group("/api/v1")

	// --- Sessions: only a fresh signature can mint a token ---
	sessionHandler := NewSessionHandler(deps.TokenSvc)
	v1.POST("/auth/session", signed, rl("session"), sessionHandler.Open)

	// --- Payee registry ---
	payeeHandler := NewPayeeHandler(deps.RegistrySvc)
	payees := v1.Group("/payees")
	{
		payees.GET("", rl("read"), payeeHandler.List)
		payees.GET("/:address", rl("read"), payeeHandler.Get)
		payees.GET("/:address/whitelisted", rl("read"), payeeHandler.IsWhitelisted)

		payees.POST("", callerAuth, rl("registry_write"), payeeHandler.AddPayee)
		payees.POST("/batch", callerAuth, rl("registry_write"), payeeHandler.AddPayees)
		payees.POST("/:address/whitelist", callerAuth, rl("registry_write"), payeeHandler.Whitelist)
		payees.POST("/:address/blacklist", callerAuth, rl("registry_write"), payeeHandler.Blacklist)
		payees.DELETE("/:address", callerAuth, rl("registry_write"), payeeHandler.Remove)
	}

	// --- Treasury ---
	treasuryHandler := NewTreasuryHandler(deps.TreasurySvc)
	treasury := v1.Group("/treasury")
	{
		treasury.GET("", rl("read"), treasuryHandler.Overview)
		treasury.GET("/daily-limit", rl("read"), treasuryHandler.GetDailyLimit)
		treasury.GET("/allowances/:address", rl("read"), treasuryHandler.Allowance)

		treasury.PUT("/daily-limit", callerAuth, rl("treasury_write"), treasuryHandler.SetDailyLimit)
		treasury.POST("/deposits", callerAuth, rl("treasury_write"), treasuryHandler.Deposit)
		treasury.POST("/withdrawals/owner", callerAuth, rl("withdrawals"), treasuryHandler.OwnerWithdraw)
		treasury.POST("/withdrawals/payee", callerAuth, rl("withdrawals"), treasuryHandler.PayeeWithdraw)
	}

	// --- Event log ---
	eventHandler := NewEventHandler(deps.EventSvc)
	v1.GET("/events", rl("read"), eventHandler.List)

	return r
}

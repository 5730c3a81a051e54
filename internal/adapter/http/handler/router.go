package handler

import (
	"zerah-finance/internal/adapter/events"
	"zerah-finance/internal/adapter/http/middleware"
	"zerah-finance/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	LedgerSvc      ports.LedgerService
	CardSvc        ports.CardService
	AssistantSvc   ports.AssistantService
	ProfileSvc     ports.ProfileService
	ReportingSvc   ports.ReportingService
	AuditSvc       ports.AuditService   // nil = audit logging disabled
	RateLimitStore ports.RateLimitStore // nil = rate limiting disabled
	Hub            *events.Hub          // nil = commit feed disabled
	HealthCheckers []ports.HealthChecker
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(middleware.MaxBodySize(1 << 20)) // 1 MB request body limit

	// Audit logging (after response)
	if deps.AuditSvc != nil {
		r.Use(middleware.AuditLog(deps.AuditSvc))
	}

	r.GET("/health", HealthCheck(deps.HealthCheckers...))

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

	v1 := r.Group("/api/v1")

	walletHandler := NewWalletHandler(deps.LedgerSvc)
	operationHandler := NewOperationHandler(deps.LedgerSvc)
	exchangeHandler := NewExchangeHandler(deps.LedgerSvc)

	wallets := v1.Group("/wallets")
	{
		wallets.GET("", rl("read"), walletHandler.List)
		wallets.GET("/:currency/transactions", rl("read"), walletHandler.History)
		wallets.POST("/topup", rl("operations"), walletHandler.Topup)
	}

	v1.GET("/transactions", rl("read"), walletHandler.ListTransactions)
	v1.POST("/transfers", rl("operations"), operationHandler.Transfer)
	v1.POST("/conversions", rl("operations"), operationHandler.Convert)
	v1.GET("/operations/status", rl("read"), operationHandler.Status)

	exchange := v1.Group("/exchange")
	{
		exchange.GET("/rates", rl("read"), exchangeHandler.Rates)
		exchange.GET("/quote", rl("read"), exchangeHandler.Quote)
	}

	cardHandler := NewCardHandler(deps.CardSvc)
	cards := v1.Group("/cards")
	{
		cards.GET("", rl("read"), cardHandler.List)
		cards.POST("/:id/freeze", rl("cards"), cardHandler.Freeze)
		cards.POST("/:id/unfreeze", rl("cards"), cardHandler.Unfreeze)
		cards.POST("/:id/toggle", rl("cards"), cardHandler.Toggle)
		cards.PUT("/:id/limit", rl("cards"), cardHandler.SetLimit)
	}

	profileHandler := NewProfileHandler(deps.ProfileSvc)
	profile := v1.Group("/profile")
	{
		profile.GET("", rl("read"), profileHandler.Get)
		profile.PUT("/business-mode", rl("cards"), profileHandler.SetBusinessMode)
	}

	dashboardHandler := NewDashboardHandler(deps.ReportingSvc)
	dashboard := v1.Group("/dashboard")
	{
		dashboard.GET("/stats", rl("read"), dashboardHandler.GetStats)
		dashboard.GET("/recent", rl("read"), dashboardHandler.Recent)
	}

	assistantHandler := NewAssistantHandler(deps.AssistantSvc)
	assistant := v1.Group("/assistant")
	{
		assistant.GET("/messages", rl("read"), assistantHandler.History)
		assistant.POST("/messages", rl("assistant"), assistantHandler.Ask)
	}

	if deps.Hub != nil {
		v1.GET("/events", Events(deps.Hub, deps.Logger))
	}

	return r
}

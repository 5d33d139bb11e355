package api

import (
	"fmt"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/andrianarivo/haustiere/internal/api/graphql"
	"github.com/andrianarivo/haustiere/internal/api/handler"
	"github.com/andrianarivo/haustiere/internal/api/middleware"
	"github.com/andrianarivo/haustiere/internal/api/ws"
	"github.com/andrianarivo/haustiere/internal/core/domain"
	"github.com/andrianarivo/haustiere/internal/core/service"
	"github.com/andrianarivo/haustiere/internal/infrastructure/config"
	"github.com/andrianarivo/haustiere/internal/infrastructure/db/postgres"
	redisdb "github.com/andrianarivo/haustiere/internal/infrastructure/db/redis"
	"github.com/andrianarivo/haustiere/internal/infrastructure/payments"
	"github.com/andrianarivo/haustiere/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with all transports registered: REST,
// GraphQL, and the WebSocket gateway, all sharing one auth procedure.
func NewRouter(cfg *config.Config, db *gorm.DB, rdb *redis.Client, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher, error) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("adoption"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(db)
	catRepo := postgres.NewCatRepository(db)

	tokens := service.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL)
	authService := service.NewAuthService(userRepo, tokens)

	hub := ws.NewHub(log)
	catService := service.NewCatService(catRepo, hub, log)

	gateway := payments.NewStripeGateway(cfg.Stripe.SecretKey, cfg.Stripe.WebhookSecret, cfg.Stripe.FrontendURL)
	dedup := redisdb.NewWebhookDedup(rdb)
	adoptions := service.NewAdoptionService(catRepo, hub, log)
	dispatcher := queue.NewDispatcher(0, adoptions, log)
	paymentService := service.NewPaymentService(gateway, catRepo, dedup, dispatcher, log)

	authHandler := handler.NewAuthHandler(authService)
	catHandler := handler.NewCatHandler(catService)
	paymentHandler := handler.NewPaymentHandler(paymentService)

	authenticated := middleware.Auth(authService)
	adminOnly := middleware.RBAC(authService, domain.RoleAdmin)
	anyRole := middleware.RBAC(authService)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout)

	// --- Cats (REST) ---
	cats := e.Group("/cats", authenticated)
	cats.GET("", catHandler.FindAll, anyRole)
	cats.GET("/:id", catHandler.FindOne, anyRole)
	cats.POST("", catHandler.Create, adminOnly)
	cats.PATCH("/:id", catHandler.Update, adminOnly)
	cats.DELETE("/:id", catHandler.Remove, adminOnly)

	// --- Payments ---
	pay := e.Group("/payments")
	pay.POST("/create-session/:catId", paymentHandler.CreateCheckoutSession, authenticated)
	pay.POST("/create-intent/:catId", paymentHandler.CreatePaymentIntent, authenticated)
	pay.POST("/webhook", paymentHandler.Webhook) // Stripe-signature verified, no bearer token
	e.GET("/success", paymentHandler.Success)
	e.GET("/cancel", paymentHandler.Cancel)

	// --- GraphQL (rides the same HTTP auth as REST) ---
	schema, err := graphql.NewSchema(catService, authService)
	if err != nil {
		return nil, nil, fmt.Errorf("build graphql schema: %w", err)
	}
	gqlHandler := graphql.NewHandler(schema)
	e.POST("/graphql", gqlHandler.Execute, authenticated)

	// --- WebSocket gateway (connection-scoped auth) ---
	wsGateway := ws.NewGateway(hub, authService, catService, log)
	e.GET("/ws", wsGateway.Handle)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e, dispatcher, nil
}

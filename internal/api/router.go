package api

import (
	"net/http"
	"time"

	"github.com/branda-app/branda/internal/api/handler"
	customMiddleware "github.com/branda-app/branda/internal/api/middleware"
	"github.com/branda-app/branda/internal/config"
	"github.com/branda-app/branda/internal/domain"
	"github.com/branda-app/branda/internal/queue"
	"github.com/branda-app/branda/internal/repository/mongodb"
	"github.com/branda-app/branda/internal/repository/postgres"
	"github.com/branda-app/branda/internal/repository/redis"
	"github.com/branda-app/branda/internal/security"
	"github.com/branda-app/branda/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog/log"
)

// NewRouter creates and configures the HTTP router
func NewRouter(
	cfg *config.Config,
	pg *postgres.DB,
	mongo *mongodb.DB,
	redisClient *redis.Client,
	queueClient *queue.Client,
	queueInspector *queue.Inspector,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-ID", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	jwtManager := security.NewJWTManager(
		cfg.Auth.JWTSecret,
		cfg.Auth.AccessTokenTTL,
		cfg.Auth.RefreshTokenTTL,
	)

	// Repositories
	userRepo := postgres.NewUserRepository(pg)
	tenantRepo := postgres.NewTenantRepository(pg)
	convRepo := mongodb.NewConversationRepository(mongo)
	summaryRepo := mongodb.NewSummaryRepository(mongo)
	productRepo := mongodb.NewProductRepository(mongo)
	saleRepo := mongodb.NewSaleRepository(mongo)
	accountingRepo := mongodb.NewAccountingRepository(mongo)
	employeeRepo := mongodb.NewEmployeeRepository(mongo)
	shiftRepo := mongodb.NewShiftRepository(mongo)
	performanceRepo := mongodb.NewPerformanceRepository(mongo)

	// Caches and rate limiting
	historyCache := redis.NewHistoryCache(redisClient, cfg.Chat.HistoryCacheTTL)
	rateLimiter := redis.NewRateLimiter(
		redisClient,
		cfg.Security.RateLimit.RequestsPerMinute,
		cfg.Security.RateLimit.Burst,
	)

	// Services
	authService := service.NewAuthService(userRepo, tenantRepo, jwtManager)
	conversationService := service.NewConversationService(convRepo, summaryRepo, historyCache, log.Logger)

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	chatHandler := handler.NewChatHandler(conversationService, queueClient)
	summaryHandler := handler.NewSummaryHandler(summaryRepo)
	productHandler := handler.NewProductHandler(productRepo)
	saleHandler := handler.NewSaleHandler(saleRepo)
	accountingHandler := handler.NewAccountingHandler(accountingRepo)
	employeeHandler := handler.NewEmployeeHandler(employeeRepo, shiftRepo, performanceRepo)

	authMiddleware := customMiddleware.NewAuthMiddleware(jwtManager)
	rateLimitMiddleware := customMiddleware.NewRateLimitMiddleware(rateLimiter)

	r.Route("/api/v1", func(r chi.Router) {
		// Health check
		r.Get("/health", handler.HealthCheck)
		r.Get("/ready", handler.ReadyCheck(pg, mongo, redisClient))

		// Auth routes (public)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.Authenticate)
			r.Use(rateLimitMiddleware.Limit)

			r.Get("/auth/me", authHandler.Me)

			r.Route("/tenant", func(r chi.Router) {
				r.Get("/", authHandler.GetTenant)
				r.With(customMiddleware.RequireRole(domain.RoleOwner)).Patch("/", authHandler.UpdateTenant)
			})

			r.Get("/llm-providers", handler.ListLLMProviders(cfg))

			// Assistant
			r.Post("/chat", chatHandler.SendMessage)
			r.Get("/chat/suggestions/{conversationID}", chatHandler.GetSuggestions)

			r.Route("/conversations", func(r chi.Router) {
				r.Get("/", chatHandler.ListConversations)
				r.Post("/", chatHandler.CreateConversation)

				r.Route("/{conversationID}", func(r chi.Router) {
					r.Get("/", chatHandler.GetConversation)
					r.Delete("/", chatHandler.DeactivateConversation)
					r.Get("/messages", chatHandler.GetHistory)
					r.Get("/summary", summaryHandler.GetByConversation)
				})
			})

			r.Get("/summaries", summaryHandler.ListByPeriod)

			// Business data
			r.Route("/products", func(r chi.Router) {
				r.Get("/", productHandler.List)
				r.Post("/", productHandler.Create)
				r.Get("/out-of-stock", productHandler.ListOutOfStock)

				r.Route("/{productID}", func(r chi.Router) {
					r.Get("/", productHandler.Get)
					r.Patch("/", productHandler.Update)
					r.Delete("/", productHandler.Delete)
				})
			})

			r.Route("/sales", func(r chi.Router) {
				r.Get("/", saleHandler.List)
				r.Post("/", saleHandler.Create)

				r.Route("/{saleID}", func(r chi.Router) {
					r.Get("/", saleHandler.Get)
					r.Delete("/", saleHandler.Delete)
				})
			})

			r.Route("/accounting", func(r chi.Router) {
				r.Get("/entries", accountingHandler.List)
				r.Post("/entries", accountingHandler.Create)
				r.Get("/report", accountingHandler.Report)

				r.Route("/entries/{entryID}", func(r chi.Router) {
					r.Get("/", accountingHandler.Get)
					r.Delete("/", accountingHandler.Delete)
				})
			})

			// Staff
			r.Route("/employees", func(r chi.Router) {
				r.Get("/", employeeHandler.List)
				r.Post("/", employeeHandler.Create)

				r.Route("/{employeeID}", func(r chi.Router) {
					r.Get("/", employeeHandler.Get)
					r.Patch("/", employeeHandler.Update)
					r.Delete("/", employeeHandler.Delete)
					r.Get("/shifts", employeeHandler.ListEmployeeShifts)
					r.Get("/reviews", employeeHandler.ListEmployeeReviews)
				})
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", employeeHandler.ListShifts)
				r.Post("/", employeeHandler.CreateShift)
				r.Delete("/{shiftID}", employeeHandler.DeleteShift)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Post("/", employeeHandler.CreateReview)
				r.Delete("/{reviewID}", employeeHandler.DeleteReview)
			})

			// Admin
			r.With(customMiddleware.RequireRole(domain.RoleOwner)).
				Get("/admin/queues", handler.QueueStats(queueInspector))
		})
	})

	return r
}

package main

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/branda-app/branda/internal/bot"
	"github.com/branda-app/branda/internal/config"
	"github.com/branda-app/branda/internal/llm"
	"github.com/branda-app/branda/internal/llm/gemini"
	"github.com/branda-app/branda/internal/llm/ollama"
	"github.com/branda-app/branda/internal/llm/openai"
	"github.com/branda-app/branda/internal/logger"
	"github.com/branda-app/branda/internal/queue"
	"github.com/branda-app/branda/internal/repository/mongodb"
	"github.com/branda-app/branda/internal/repository/redis"
	"github.com/branda-app/branda/internal/service"
	"github.com/branda-app/branda/internal/worker"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Setup(cfg.Logging); err != nil {
		log.Fatal().Err(err).Msg("Failed to set up logging")
	}

	log.Info().
		Int("concurrency", cfg.Queue.Concurrency).
		Msg("Starting Branda worker")

	ctx := context.Background()

	mongo, err := mongodb.NewDB(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to MongoDB")
	}
	defer mongo.Close(ctx)

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()

	// Repositories
	convRepo := mongodb.NewConversationRepository(mongo)
	summaryRepo := mongodb.NewSummaryRepository(mongo)
	productRepo := mongodb.NewProductRepository(mongo)
	saleRepo := mongodb.NewSaleRepository(mongo)
	accountingRepo := mongodb.NewAccountingRepository(mongo)
	employeeRepo := mongodb.NewEmployeeRepository(mongo)
	shiftRepo := mongodb.NewShiftRepository(mongo)
	performanceRepo := mongodb.NewPerformanceRepository(mongo)

	// Caches
	historyCache := redis.NewHistoryCache(redisClient, cfg.Chat.HistoryCacheTTL)
	responseCache := redis.NewResponseCache(redisClient, cfg.Chat.ResponseCacheTTL)

	// Language model providers
	llmRouter := llm.NewRouter(cfg.LLM.DefaultProvider)
	if cfg.LLM.OpenAI.APIKey != "" {
		llmRouter.RegisterProvider(openai.NewProvider(cfg.LLM.OpenAI))
	}
	if cfg.LLM.Ollama.Host != "" {
		llmRouter.RegisterProvider(ollama.NewProvider(cfg.LLM.Ollama))
	}
	if cfg.LLM.Gemini.APIKey != "" {
		llmRouter.RegisterProvider(gemini.NewProvider(cfg.LLM.Gemini))
	}
	log.Info().
		Strs("providers", llmRouter.ListProviders()).
		Str("default", cfg.LLM.DefaultProvider).
		Msg("Registered LLM providers")

	// Assistant bots
	fallbackBot := bot.NewFallbackBot(llmRouter, cfg.LLM.DefaultProvider, log.Logger)
	dispatcher := bot.NewDispatcher(fallbackBot, log.Logger)
	dispatcher.Register(bot.IntentAccounting, bot.NewAccountingBot(saleRepo, accountingRepo, log.Logger))
	dispatcher.Register(bot.IntentBusinessData, bot.NewBusinessDataBot(productRepo, saleRepo, log.Logger))
	dispatcher.Register(bot.IntentMarketing, bot.NewMarketingBot(llmRouter, cfg.LLM.DefaultProvider, saleRepo, log.Logger))
	dispatcher.Register(bot.IntentHR, bot.NewHRBot(employeeRepo, shiftRepo, performanceRepo, log.Logger))
	dispatcher.Register(bot.IntentInfo, bot.NewInfoBot(log.Logger))
	classifier := bot.NewClassifier(llmRouter, cfg.LLM.DefaultProvider, log.Logger)

	// Services
	queueClient := queue.NewClient(cfg.Redis, cfg.Queue)
	defer queueClient.Close()

	conversationService := service.NewConversationService(convRepo, summaryRepo, historyCache, log.Logger)
	summaryService := service.NewSummaryService(llmRouter, cfg.LLM.DefaultProvider, convRepo, summaryRepo, log.Logger)
	orchestrator := service.NewOrchestrator(
		classifier,
		dispatcher,
		conversationService,
		responseCache,
		queueClient,
		cfg.Chat.SummaryThreshold,
		log.Logger,
	)

	// Task handlers
	chatWorker := worker.NewChatWorker(conversationService, orchestrator, log.Logger)
	summaryWorker := worker.NewSummaryWorker(summaryService, log.Logger)

	srv := queue.NewServer(cfg.Redis, cfg.Queue, log.Logger)
	srv.Register(queue.TypeChatMessage, chatWorker.HandleChatMessage)
	srv.Register(queue.TypeConversationSummary, summaryWorker.HandleSummary)

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := srv.Run(runCtx); err != nil {
		log.Fatal().Err(err).Msg("Queue server failed")
	}

	log.Info().Msg("Worker stopped")
}

package handler

import (
	"net/http"

	"github.com/branda-app/branda/internal/api/response"
	"github.com/branda-app/branda/internal/config"
	"github.com/branda-app/branda/internal/queue"
	"github.com/branda-app/branda/internal/repository/mongodb"
	"github.com/branda-app/branda/internal/repository/postgres"
	"github.com/branda-app/branda/internal/repository/redis"
)

// HealthCheck returns a simple health check response
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	response.OK(w, map[string]string{
		"status": "ok",
	})
}

// ReadyCheck reports readiness of all three storage backends. Any failing
// backend makes the whole check fail.
func ReadyCheck(pg *postgres.DB, mongo *mongodb.DB, redisClient *redis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		checks := map[string]string{
			"postgres": "ok",
			"mongo":    "ok",
			"redis":    "ok",
		}
		ready := true

		if err := pg.Ping(r.Context()); err != nil {
			checks["postgres"] = err.Error()
			ready = false
		}
		if err := mongo.HealthCheck(r.Context()); err != nil {
			checks["mongo"] = err.Error()
			ready = false
		}
		if err := redisClient.HealthCheck(r.Context()); err != nil {
			checks["redis"] = err.Error()
			ready = false
		}

		if !ready {
			response.Error(w, http.StatusServiceUnavailable, checks)
			return
		}

		response.OK(w, map[string]any{
			"status": "ready",
			"checks": checks,
		})
	}
}

// QueueStats returns a snapshot of the background queues
func QueueStats(inspector *queue.Inspector) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := inspector.Stats()
		if err != nil {
			response.InternalError(w, "failed to inspect queues")
			return
		}

		response.OK(w, map[string]any{
			"queues": stats,
		})
	}
}

// ListLLMProviders returns the configured language model providers
func ListLLMProviders(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		providers := []map[string]any{}

		if cfg.LLM.OpenAI.APIKey != "" {
			providers = append(providers, map[string]any{
				"name":    "openai",
				"model":   cfg.LLM.OpenAI.Model,
				"default": cfg.LLM.DefaultProvider == "openai",
			})
		}

		if cfg.LLM.Ollama.Host != "" {
			providers = append(providers, map[string]any{
				"name":    "ollama",
				"model":   cfg.LLM.Ollama.DefaultModel,
				"default": cfg.LLM.DefaultProvider == "ollama",
			})
		}

		if cfg.LLM.Gemini.APIKey != "" {
			providers = append(providers, map[string]any{
				"name":    "gemini",
				"model":   cfg.LLM.Gemini.Model,
				"default": cfg.LLM.DefaultProvider == "gemini",
			})
		}

		response.OK(w, map[string]any{
			"providers":        providers,
			"default_provider": cfg.LLM.DefaultProvider,
		})
	}
}

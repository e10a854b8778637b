package queue

import (
	"context"

	"github.com/branda-app/branda/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// Handler processes one dequeued task. Returning an error requeues the
// task until its retry budget is spent.
type Handler func(ctx context.Context, payload []byte) error

// Server consumes jobs from the Redis-backed queue
type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger zerolog.Logger
}

// NewServer creates a new queue server. The chat queue gets three times
// the weight of the summary queue so user-facing turns are served first.
func NewServer(redisCfg config.RedisConfig, queueCfg config.QueueConfig, logger zerolog.Logger) *Server {
	qlog := logger.With().Str("component", "queue_server").Logger()

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     redisCfg.Addr(),
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		},
		asynq.Config{
			Concurrency: queueCfg.Concurrency,
			Queues: map[string]int{
				QueueChat:    3,
				QueueSummary: 1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				qlog.Error().Err(err).
					Str("task_type", task.Type()).
					Int("retried", retried).
					Int("max_retry", maxRetry).
					Msg("task failed")
			}),
		},
	)

	return &Server{
		server: srv,
		mux:    asynq.NewServeMux(),
		logger: qlog,
	}
}

// Register binds a handler to a task type
func (s *Server) Register(taskType string, handler Handler) {
	s.mux.HandleFunc(taskType, func(ctx context.Context, task *asynq.Task) error {
		return handler(ctx, task.Payload())
	})
}

// Run starts the server and blocks until the context is canceled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	s.logger.Info().Msg("shutting down queue server")
	s.server.Shutdown()
	return nil
}

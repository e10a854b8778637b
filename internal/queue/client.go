package queue

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/branda-app/branda/internal/config"
	"github.com/google/uuid"
	"github.com/hibiken/asynq"
)

// Client enqueues background jobs on the Redis-backed queue
type Client struct {
	client *asynq.Client
	cfg    config.QueueConfig
}

// NewClient creates a new queue client
func NewClient(redisCfg config.RedisConfig, queueCfg config.QueueConfig) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{
			Addr:     redisCfg.Addr(),
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		}),
		cfg: queueCfg,
	}
}

// Close closes the queue client
func (c *Client) Close() error {
	return c.client.Close()
}

// EnqueueChatMessage queues one chat turn and returns the job ID
func (c *Client) EnqueueChatMessage(ctx context.Context, payload ChatMessagePayload) (string, error) {
	task, err := NewChatMessageTask(payload)
	if err != nil {
		return "", err
	}

	info, err := c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueChat),
		asynq.MaxRetry(c.cfg.ChatMaxRetry),
		asynq.Timeout(c.cfg.JobTimeout),
		asynq.Retention(c.cfg.FailedRetention),
	)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue chat message: %w", err)
	}
	return info.ID, nil
}

// ScheduleSummary queues a summarization run for a conversation. Unique per
// conversation for a short window so a burst of turns yields one job.
func (c *Client) ScheduleSummary(ctx context.Context, tenantID, userID, conversationID uuid.UUID) error {
	task, err := NewSummaryTask(SummaryPayload{
		TenantID:       tenantID,
		UserID:         userID,
		ConversationID: conversationID,
	})
	if err != nil {
		return err
	}

	_, err = c.client.EnqueueContext(ctx, task,
		asynq.Queue(QueueSummary),
		asynq.MaxRetry(c.cfg.SummaryMaxRetry),
		asynq.Timeout(c.cfg.JobTimeout),
		asynq.Retention(c.cfg.FailedRetention),
		asynq.Unique(time.Minute),
	)
	if err != nil && !errors.Is(err, asynq.ErrDuplicateTask) {
		return fmt.Errorf("failed to enqueue summary: %w", err)
	}
	return nil
}

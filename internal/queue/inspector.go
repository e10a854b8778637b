package queue

import (
	"fmt"

	"github.com/branda-app/branda/internal/config"
	"github.com/hibiken/asynq"
)

// QueueStats is a point-in-time snapshot of one queue
type QueueStats struct {
	Name      string `json:"name"`
	Pending   int    `json:"pending"`
	Active    int    `json:"active"`
	Scheduled int    `json:"scheduled"`
	Retry     int    `json:"retry"`
	Archived  int    `json:"archived"`
	Completed int    `json:"completed"`
	Processed int    `json:"processed"`
	Failed    int    `json:"failed"`
}

// Inspector reads queue state for the admin stats endpoint
type Inspector struct {
	inspector *asynq.Inspector
}

// NewInspector creates a new queue inspector
func NewInspector(redisCfg config.RedisConfig) *Inspector {
	return &Inspector{
		inspector: asynq.NewInspector(asynq.RedisClientOpt{
			Addr:     redisCfg.Addr(),
			Password: redisCfg.Password,
			DB:       redisCfg.DB,
		}),
	}
}

// Close closes the inspector's Redis connection
func (i *Inspector) Close() error {
	return i.inspector.Close()
}

// Stats returns a snapshot of the chat and summary queues
func (i *Inspector) Stats() ([]QueueStats, error) {
	stats := make([]QueueStats, 0, 2)
	for _, name := range []string{QueueChat, QueueSummary} {
		info, err := i.inspector.GetQueueInfo(name)
		if err != nil {
			return nil, fmt.Errorf("failed to inspect queue %s: %w", name, err)
		}
		stats = append(stats, QueueStats{
			Name:      name,
			Pending:   info.Pending,
			Active:    info.Active,
			Scheduled: info.Scheduled,
			Retry:     info.Retry,
			Archived:  info.Archived,
			Completed: info.Completed,
			Processed: info.Processed,
			Failed:    info.Failed,
		})
	}
	return stats, nil
}

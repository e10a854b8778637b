package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/branda-app/branda/internal/queue"
	"github.com/branda-app/branda/internal/service"
	"github.com/branda-app/branda/internal/tenant"
	"github.com/rs/zerolog"
)

// SummaryWorker processes queued summarization runs
type SummaryWorker struct {
	summaries *service.SummaryService
	logger    zerolog.Logger
}

// NewSummaryWorker creates a new summary worker
func NewSummaryWorker(summaries *service.SummaryService, logger zerolog.Logger) *SummaryWorker {
	return &SummaryWorker{
		summaries: summaries,
		logger:    logger.With().Str("worker", "summary").Logger(),
	}
}

// HandleSummary summarizes one conversation under its tenant scope
func (w *SummaryWorker) HandleSummary(ctx context.Context, payload []byte) error {
	var p queue.SummaryPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("invalid summary payload: %w", err)
	}

	ctx = tenant.With(ctx, p.TenantID)

	summary, err := w.summaries.GenerateAndSave(ctx, p.UserID, p.ConversationID)
	if err != nil {
		return fmt.Errorf("failed to summarize conversation %s: %w", p.ConversationID, err)
	}

	w.logger.Info().
		Str("conversation_id", p.ConversationID.String()).
		Int("key_points", len(summary.KeyPoints)).
		Msg("conversation summarized")
	return nil
}

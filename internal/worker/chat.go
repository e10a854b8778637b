package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/branda-app/branda/internal/domain"
	"github.com/branda-app/branda/internal/queue"
	"github.com/branda-app/branda/internal/service"
	"github.com/branda-app/branda/internal/tenant"
	"github.com/rs/zerolog"
)

// ChatWorker processes queued chat turns
type ChatWorker struct {
	conversations *service.ConversationService
	orchestrator  *service.Orchestrator
	logger        zerolog.Logger
}

// NewChatWorker creates a new chat worker
func NewChatWorker(conversations *service.ConversationService, orchestrator *service.Orchestrator, logger zerolog.Logger) *ChatWorker {
	return &ChatWorker{
		conversations: conversations,
		orchestrator:  orchestrator,
		logger:        logger.With().Str("worker", "chat").Logger(),
	}
}

// HandleChatMessage runs one chat turn: bind the tenant, persist the user
// message, produce the reply, persist the reply. Persistence failures
// return an error so the job retries; the turn itself never fails.
func (w *ChatWorker) HandleChatMessage(ctx context.Context, payload []byte) error {
	var p queue.ChatMessagePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return fmt.Errorf("invalid chat payload: %w", err)
	}

	ctx = tenant.With(ctx, p.User.TenantID)

	// The payload's message id makes this append idempotent across
	// redeliveries of the same job.
	if _, err := w.conversations.AppendMessageWithID(ctx, p.User.UserID, p.ConversationID, p.MessageID, domain.RoleUser, p.Message); err != nil {
		return fmt.Errorf("failed to persist user message: %w", err)
	}

	reply := w.orchestrator.RunTurn(ctx, p.User, p.ConversationID, p.Message)

	if _, err := w.conversations.AppendMessage(ctx, p.User.UserID, p.ConversationID, domain.RoleAssistant, reply); err != nil {
		return fmt.Errorf("failed to persist assistant message: %w", err)
	}

	w.logger.Info().
		Str("user_id", p.User.UserID.String()).
		Str("conversation_id", p.ConversationID.String()).
		Msg("chat turn completed")
	return nil
}

package service

import (
	"context"

	"github.com/branda-app/branda/internal/bot"
	"github.com/branda-app/branda/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ResponseCache short-circuits repeated identical questions. Implementations
// must treat backend failures as misses.
type ResponseCache interface {
	Get(ctx context.Context, userID uuid.UUID, message string) (string, error)
	Set(ctx context.Context, userID uuid.UUID, message, response string) error
}

// SummaryScheduler enqueues a background summarization job
type SummaryScheduler interface {
	ScheduleSummary(ctx context.Context, tenantID, userID, conversationID uuid.UUID) error
}

// Orchestrator runs one full assistant turn: cache lookup, intent routing,
// bot dispatch, response caching and summary scheduling.
type Orchestrator struct {
	classifier       *bot.Classifier
	dispatcher       *bot.Dispatcher
	conversations    *ConversationService
	responseCache    ResponseCache
	scheduler        SummaryScheduler
	summaryThreshold int
	logger           zerolog.Logger
}

// NewOrchestrator creates a new orchestrator
func NewOrchestrator(
	classifier *bot.Classifier,
	dispatcher *bot.Dispatcher,
	conversations *ConversationService,
	responseCache ResponseCache,
	scheduler SummaryScheduler,
	summaryThreshold int,
	logger zerolog.Logger,
) *Orchestrator {
	if summaryThreshold <= 0 {
		summaryThreshold = 5
	}
	return &Orchestrator{
		classifier:       classifier,
		dispatcher:       dispatcher,
		conversations:    conversations,
		responseCache:    responseCache,
		scheduler:        scheduler,
		summaryThreshold: summaryThreshold,
		logger:           logger.With().Str("service", "orchestrator").Logger(),
	}
}

// RunTurn produces the assistant reply for one user message. It never
// fails: any internal panic or error degrades to the apology message.
// The response cache is keyed on (user, message) only, so the same
// question asked in two conversations within the TTL shares one answer.
func (o *Orchestrator) RunTurn(ctx context.Context, user domain.UserContext, conversationID uuid.UUID, message string) (reply string) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error().
				Interface("panic", r).
				Str("user_id", user.UserID.String()).
				Msg("chat turn panicked")
			reply = bot.ApologyMessage
		}
	}()

	if cached, err := o.responseCache.Get(ctx, user.UserID, message); err == nil && cached != "" {
		o.logger.Debug().Str("user_id", user.UserID.String()).Msg("response cache hit")
		return cached
	}

	history, err := o.conversations.GetHistory(ctx, user.UserID, conversationID)
	if err != nil {
		o.logger.Warn().Err(err).Str("conversation_id", conversationID.String()).Msg("failed to load history")
		history = []domain.Message{}
	}

	intent := o.classifier.Classify(ctx, message, history)

	reply = o.dispatcher.Dispatch(ctx, intent, bot.Request{
		User:    user,
		Message: message,
		History: history,
	})

	// The apology is transient; caching it would replay a failure for the
	// full TTL window.
	if reply != bot.ApologyMessage {
		if err := o.responseCache.Set(ctx, user.UserID, message, reply); err != nil {
			o.logger.Warn().Err(err).Msg("failed to cache response")
		}
	}

	// History already holds the current user message; only the reply
	// lands after this count.
	if len(history)+1 > o.summaryThreshold {
		if err := o.scheduler.ScheduleSummary(ctx, user.TenantID, user.UserID, conversationID); err != nil {
			o.logger.Warn().Err(err).Str("conversation_id", conversationID.String()).Msg("failed to schedule summary")
		}
	}

	return reply
}

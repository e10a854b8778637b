package service

import (
	"context"
	"fmt"
	"time"

	"github.com/branda-app/branda/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// HistoryCache is the hot store for conversation messages. Implementations
// must treat backend failures as misses.
type HistoryCache interface {
	Get(ctx context.Context, userID, conversationID uuid.UUID) ([]domain.Message, error)
	Set(ctx context.Context, userID, conversationID uuid.UUID, messages []domain.Message) error
	Invalidate(ctx context.Context, userID, conversationID uuid.UUID) error
}

// defaultSuggestions are shown to users with no conversation history yet
var defaultSuggestions = []string{
	"Quel est mon chiffre d'affaires aujourd'hui ?",
	"Combien de clients ai-je servis cette semaine ?",
	"Quels sont mes produits les plus vendus ?",
}

// ConversationService manages conversation threads with a cache-aside
// history store. MongoDB is always the source of truth; Redis only
// accelerates reads and is allowed to fail silently.
type ConversationService struct {
	convRepo    domain.ConversationRepository
	summaryRepo domain.SummaryRepository
	cache       HistoryCache
	logger      zerolog.Logger
}

// NewConversationService creates a new conversation service
func NewConversationService(
	convRepo domain.ConversationRepository,
	summaryRepo domain.SummaryRepository,
	cache HistoryCache,
	logger zerolog.Logger,
) *ConversationService {
	return &ConversationService{
		convRepo:    convRepo,
		summaryRepo: summaryRepo,
		cache:       cache,
		logger:      logger.With().Str("service", "conversation").Logger(),
	}
}

// Create starts a new conversation thread
func (s *ConversationService) Create(ctx context.Context, userID uuid.UUID, title string) (*domain.Conversation, error) {
	if title == "" {
		title = "Nouvelle conversation"
	}

	conv := &domain.Conversation{
		ID:     uuid.New(),
		UserID: userID,
		Title:  title,
	}
	if err := s.convRepo.Create(ctx, conv); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}
	return conv, nil
}

// Get returns one conversation owned by the caller. A thread belonging to
// another user in the same tenant reads as missing, not forbidden, so the
// endpoint does not reveal that the thread exists.
func (s *ConversationService) Get(ctx context.Context, userID, id uuid.UUID) (*domain.Conversation, error) {
	conv, err := s.convRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if conv.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return conv, nil
}

// List returns a user's conversations
func (s *ConversationService) List(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Conversation, error) {
	return s.convRepo.ListByUser(ctx, userID, limit)
}

// GetHistory returns a conversation's messages, cache first. The cache key
// includes the user id, so a hit is always the owner's own history.
func (s *ConversationService) GetHistory(ctx context.Context, userID, conversationID uuid.UUID) ([]domain.Message, error) {
	if cached, err := s.cache.Get(ctx, userID, conversationID); err == nil && cached != nil {
		return cached, nil
	}

	conv, err := s.Get(ctx, userID, conversationID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, userID, conversationID, conv.Messages); err != nil {
		s.logger.Warn().Err(err).Str("conversation_id", conversationID.String()).Msg("failed to warm history cache")
	}
	return conv.Messages, nil
}

// AppendMessage persists a message then refreshes the cache. The durable
// write always happens first so a cache failure cannot lose a message.
func (s *ConversationService) AppendMessage(ctx context.Context, userID, conversationID uuid.UUID, role domain.MessageRole, content string) (domain.Message, error) {
	return s.AppendMessageWithID(ctx, userID, conversationID, uuid.New(), role, content)
}

// AppendMessageWithID persists a message under a caller-chosen id. A
// redelivered job reusing the same id appends nothing, so a retried
// append cannot duplicate the turn.
func (s *ConversationService) AppendMessageWithID(ctx context.Context, userID, conversationID, messageID uuid.UUID, role domain.MessageRole, content string) (domain.Message, error) {
	msg := domain.Message{
		ID:        messageID,
		Role:      role,
		Content:   content,
		Timestamp: time.Now().UTC(),
	}

	if err := s.convRepo.AppendMessage(ctx, conversationID, msg); err != nil {
		return domain.Message{}, err
	}

	if err := s.cache.Invalidate(ctx, userID, conversationID); err != nil {
		s.logger.Warn().Err(err).Str("conversation_id", conversationID.String()).Msg("failed to invalidate history cache")
	}
	return msg, nil
}

// Deactivate closes a conversation thread owned by the caller
func (s *ConversationService) Deactivate(ctx context.Context, userID, conversationID uuid.UUID) error {
	if _, err := s.Get(ctx, userID, conversationID); err != nil {
		return err
	}
	if err := s.convRepo.Deactivate(ctx, conversationID); err != nil {
		return err
	}
	if err := s.cache.Invalidate(ctx, userID, conversationID); err != nil {
		s.logger.Warn().Err(err).Str("conversation_id", conversationID.String()).Msg("failed to invalidate history cache")
	}
	return nil
}

// Suggestions returns starter questions for the chat input. Product
// entities from the conversation's summary personalize the list; the
// default trio fills whatever is left. A conversation the caller does not
// own contributes nothing.
func (s *ConversationService) Suggestions(ctx context.Context, userID, conversationID uuid.UUID, count int) []string {
	if count <= 0 || count > len(defaultSuggestions) {
		count = len(defaultSuggestions)
	}

	suggestions := make([]string, 0, count)
	if _, err := s.Get(ctx, userID, conversationID); err == nil {
		if summary, err := s.summaryRepo.GetByConversation(ctx, conversationID); err == nil {
			for _, entity := range summary.Entities {
				if len(suggestions) == count {
					break
				}
				if entity.Type == "produit" && entity.Value != "" {
					suggestions = append(suggestions, fmt.Sprintf("Comment se vend %s en ce moment ?", entity.Value))
				}
			}
		}
	}

	for _, d := range defaultSuggestions {
		if len(suggestions) == count {
			break
		}
		suggestions = append(suggestions, d)
	}
	return suggestions
}

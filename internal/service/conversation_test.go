package service

import (
	"context"
	"errors"
	"testing"

	"github.com/branda-app/branda/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestConversationService_GetHistory_CacheHit(t *testing.T) {
	convRepo := new(MockConversationRepository)
	cache := new(MockHistoryCache)
	svc := NewConversationService(convRepo, new(MockSummaryRepository), cache, zerolog.Nop())

	userID, convID := uuid.New(), uuid.New()
	cached := []domain.Message{{Role: domain.RoleUser, Content: "Bonjour"}}

	cache.On("Get", mock.Anything, userID, convID).Return(cached, nil)

	messages, err := svc.GetHistory(context.Background(), userID, convID)
	require.NoError(t, err)
	assert.Equal(t, cached, messages)
	convRepo.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestConversationService_GetHistory_MissFallsThroughAndWarms(t *testing.T) {
	convRepo := new(MockConversationRepository)
	cache := new(MockHistoryCache)
	svc := NewConversationService(convRepo, new(MockSummaryRepository), cache, zerolog.Nop())

	userID, convID := uuid.New(), uuid.New()
	stored := []domain.Message{
		{Role: domain.RoleUser, Content: "Bonjour"},
		{Role: domain.RoleAssistant, Content: "Bonjour, comment puis-je aider ?"},
	}

	cache.On("Get", mock.Anything, userID, convID).Return(nil, nil)
	convRepo.On("Get", mock.Anything, convID).Return(&domain.Conversation{ID: convID, UserID: userID, Messages: stored}, nil)
	cache.On("Set", mock.Anything, userID, convID, stored).Return(nil)

	messages, err := svc.GetHistory(context.Background(), userID, convID)
	require.NoError(t, err)
	assert.Equal(t, stored, messages)
	cache.AssertExpectations(t)
}

func TestConversationService_GetHistory_CacheSetFailureIsNotFatal(t *testing.T) {
	convRepo := new(MockConversationRepository)
	cache := new(MockHistoryCache)
	svc := NewConversationService(convRepo, new(MockSummaryRepository), cache, zerolog.Nop())

	userID, convID := uuid.New(), uuid.New()
	stored := []domain.Message{{Role: domain.RoleUser, Content: "Bonjour"}}

	cache.On("Get", mock.Anything, userID, convID).Return(nil, nil)
	convRepo.On("Get", mock.Anything, convID).Return(&domain.Conversation{ID: convID, UserID: userID, Messages: stored}, nil)
	cache.On("Set", mock.Anything, userID, convID, stored).Return(errors.New("redis down"))

	messages, err := svc.GetHistory(context.Background(), userID, convID)
	require.NoError(t, err)
	assert.Equal(t, stored, messages)
}

func TestConversationService_Get_OtherUsersThreadReadsAsMissing(t *testing.T) {
	convRepo := new(MockConversationRepository)
	svc := NewConversationService(convRepo, new(MockSummaryRepository), new(MockHistoryCache), zerolog.Nop())

	owner, intruder, convID := uuid.New(), uuid.New(), uuid.New()
	convRepo.On("Get", mock.Anything, convID).Return(&domain.Conversation{ID: convID, UserID: owner}, nil)

	_, err := svc.Get(context.Background(), intruder, convID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	conv, err := svc.Get(context.Background(), owner, convID)
	require.NoError(t, err)
	assert.Equal(t, convID, conv.ID)
}

func TestConversationService_GetHistory_OtherUsersThreadReadsAsMissing(t *testing.T) {
	convRepo := new(MockConversationRepository)
	cache := new(MockHistoryCache)
	svc := NewConversationService(convRepo, new(MockSummaryRepository), cache, zerolog.Nop())

	owner, intruder, convID := uuid.New(), uuid.New(), uuid.New()

	cache.On("Get", mock.Anything, intruder, convID).Return(nil, nil)
	convRepo.On("Get", mock.Anything, convID).Return(&domain.Conversation{
		ID:       convID,
		UserID:   owner,
		Messages: []domain.Message{{Role: domain.RoleUser, Content: "secret"}},
	}, nil)

	_, err := svc.GetHistory(context.Background(), intruder, convID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestConversationService_Deactivate_RequiresOwnership(t *testing.T) {
	convRepo := new(MockConversationRepository)
	cache := new(MockHistoryCache)
	svc := NewConversationService(convRepo, new(MockSummaryRepository), cache, zerolog.Nop())

	owner, intruder, convID := uuid.New(), uuid.New(), uuid.New()
	convRepo.On("Get", mock.Anything, convID).Return(&domain.Conversation{ID: convID, UserID: owner}, nil)

	err := svc.Deactivate(context.Background(), intruder, convID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	convRepo.AssertNotCalled(t, "Deactivate", mock.Anything, mock.Anything)

	convRepo.On("Deactivate", mock.Anything, convID).Return(nil)
	cache.On("Invalidate", mock.Anything, owner, convID).Return(nil)

	require.NoError(t, svc.Deactivate(context.Background(), owner, convID))
	convRepo.AssertExpectations(t)
}

func TestConversationService_AppendMessage_DurableFirst(t *testing.T) {
	convRepo := new(MockConversationRepository)
	cache := new(MockHistoryCache)
	svc := NewConversationService(convRepo, new(MockSummaryRepository), cache, zerolog.Nop())

	userID, convID := uuid.New(), uuid.New()

	convRepo.On("AppendMessage", mock.Anything, convID, mock.MatchedBy(func(m domain.Message) bool {
		return m.Role == domain.RoleUser && m.Content == "Bonjour" && m.ID != uuid.Nil && !m.Timestamp.IsZero()
	})).Return(nil)
	cache.On("Invalidate", mock.Anything, userID, convID).Return(nil)

	msg, err := svc.AppendMessage(context.Background(), userID, convID, domain.RoleUser, "Bonjour")
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", msg.Content)
	convRepo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestConversationService_AppendMessageWithID_CarriesCallerID(t *testing.T) {
	// A retried job re-sending the same message id must reach the
	// repository with that id unchanged so the push dedupes.
	convRepo := new(MockConversationRepository)
	cache := new(MockHistoryCache)
	svc := NewConversationService(convRepo, new(MockSummaryRepository), cache, zerolog.Nop())

	userID, convID, msgID := uuid.New(), uuid.New(), uuid.New()

	convRepo.On("AppendMessage", mock.Anything, convID, mock.MatchedBy(func(m domain.Message) bool {
		return m.ID == msgID
	})).Return(nil).Twice()
	cache.On("Invalidate", mock.Anything, userID, convID).Return(nil)

	msg, err := svc.AppendMessageWithID(context.Background(), userID, convID, msgID, domain.RoleUser, "Bonjour")
	require.NoError(t, err)
	assert.Equal(t, msgID, msg.ID)

	_, err = svc.AppendMessageWithID(context.Background(), userID, convID, msgID, domain.RoleUser, "Bonjour")
	require.NoError(t, err)
	convRepo.AssertExpectations(t)
}

func TestConversationService_AppendMessage_RepoFailureSkipsCache(t *testing.T) {
	convRepo := new(MockConversationRepository)
	cache := new(MockHistoryCache)
	svc := NewConversationService(convRepo, new(MockSummaryRepository), cache, zerolog.Nop())

	userID, convID := uuid.New(), uuid.New()
	convRepo.On("AppendMessage", mock.Anything, convID, mock.Anything).Return(domain.ErrNotFound)

	_, err := svc.AppendMessage(context.Background(), userID, convID, domain.RoleUser, "Bonjour")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	cache.AssertNotCalled(t, "Invalidate", mock.Anything, mock.Anything, mock.Anything)
}

func TestConversationService_Suggestions_DefaultsForUnknownConversation(t *testing.T) {
	convRepo := new(MockConversationRepository)
	svc := NewConversationService(convRepo, new(MockSummaryRepository), new(MockHistoryCache), zerolog.Nop())

	convRepo.On("Get", mock.Anything, mock.Anything).Return(nil, domain.ErrNotFound)

	suggestions := svc.Suggestions(context.Background(), uuid.New(), uuid.New(), 3)
	assert.Equal(t, []string{
		"Quel est mon chiffre d'affaires aujourd'hui ?",
		"Combien de clients ai-je servis cette semaine ?",
		"Quels sont mes produits les plus vendus ?",
	}, suggestions)

	assert.Len(t, svc.Suggestions(context.Background(), uuid.New(), uuid.New(), 2), 2)
	assert.Len(t, svc.Suggestions(context.Background(), uuid.New(), uuid.New(), 0), 3)
}

func TestConversationService_Suggestions_PersonalizedFromConversationSummary(t *testing.T) {
	convRepo := new(MockConversationRepository)
	summaryRepo := new(MockSummaryRepository)
	svc := NewConversationService(convRepo, summaryRepo, new(MockHistoryCache), zerolog.Nop())

	userID, convID := uuid.New(), uuid.New()
	convRepo.On("Get", mock.Anything, convID).Return(&domain.Conversation{ID: convID, UserID: userID}, nil)
	summaryRepo.On("GetByConversation", mock.Anything, convID).Return(&domain.ConversationSummary{
		ConversationID: convID,
		Entities: []domain.SummaryEntity{
			{Type: "produit", Value: "croissant"},
			{Type: "client", Value: "Awa"},
		},
	}, nil)

	suggestions := svc.Suggestions(context.Background(), userID, convID, 3)
	require.Len(t, suggestions, 3)
	assert.Equal(t, "Comment se vend croissant en ce moment ?", suggestions[0])
	assert.Equal(t, defaultSuggestions[0], suggestions[1])
	assert.Equal(t, defaultSuggestions[1], suggestions[2])
}

func TestConversationService_Suggestions_OtherUsersConversationYieldsDefaults(t *testing.T) {
	convRepo := new(MockConversationRepository)
	summaryRepo := new(MockSummaryRepository)
	svc := NewConversationService(convRepo, summaryRepo, new(MockHistoryCache), zerolog.Nop())

	owner, intruder, convID := uuid.New(), uuid.New(), uuid.New()
	convRepo.On("Get", mock.Anything, convID).Return(&domain.Conversation{ID: convID, UserID: owner}, nil)

	suggestions := svc.Suggestions(context.Background(), intruder, convID, 3)
	assert.Equal(t, defaultSuggestions, suggestions)
	summaryRepo.AssertNotCalled(t, "GetByConversation", mock.Anything, mock.Anything)
}

func TestConversationService_Suggestions_SummaryLookupFailureFallsBack(t *testing.T) {
	convRepo := new(MockConversationRepository)
	summaryRepo := new(MockSummaryRepository)
	svc := NewConversationService(convRepo, summaryRepo, new(MockHistoryCache), zerolog.Nop())

	userID, convID := uuid.New(), uuid.New()
	convRepo.On("Get", mock.Anything, convID).Return(&domain.Conversation{ID: convID, UserID: userID}, nil)
	summaryRepo.On("GetByConversation", mock.Anything, convID).Return(nil, domain.ErrNotFound)

	suggestions := svc.Suggestions(context.Background(), userID, convID, 3)
	assert.Equal(t, defaultSuggestions, suggestions)
}

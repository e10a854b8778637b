package service

import (
	"context"
	"errors"
	"testing"

	"github.com/branda-app/branda/internal/domain"
	"github.com/branda-app/branda/internal/llm"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newSummaryFixture() (*SummaryService, *MockConversationRepository, *MockSummaryRepository, *MockProvider) {
	provider := NewMockProvider("mock")
	router := llm.NewRouter("mock")
	router.RegisterProvider(provider)

	convRepo := new(MockConversationRepository)
	summaryRepo := new(MockSummaryRepository)

	svc := NewSummaryService(router, "mock", convRepo, summaryRepo, zerolog.Nop())
	return svc, convRepo, summaryRepo, provider
}

func conversationWithMessages(n int) *domain.Conversation {
	conv := &domain.Conversation{
		ID:       uuid.New(),
		TenantID: uuid.New(),
		UserID:   uuid.New(),
	}
	for i := 0; i < n; i++ {
		conv.Messages = append(conv.Messages, domain.Message{Role: domain.RoleUser, Content: "bonjour"})
	}
	return conv
}

func TestSummaryService_StrictJSON(t *testing.T) {
	svc, convRepo, summaryRepo, provider := newSummaryFixture()
	conv := conversationWithMessages(6)

	convRepo.On("Get", mock.Anything, conv.ID).Return(conv, nil)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
		`{"summary": "Le gérant a consulté son chiffre d'affaires.", "keyPoints": ["CA en hausse"], "entities": [{"type": "produit", "value": "croissant"}]}`,
		nil,
	)

	var stored *domain.ConversationSummary
	summaryRepo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		stored = args.Get(1).(*domain.ConversationSummary)
	}).Return(nil)

	summary, err := svc.GenerateAndSave(context.Background(), conv.UserID, conv.ID)
	require.NoError(t, err)

	assert.Equal(t, "Le gérant a consulté son chiffre d'affaires.", summary.Summary)
	assert.Equal(t, []string{"CA en hausse"}, summary.KeyPoints)
	require.Len(t, summary.Entities, 1)
	assert.Equal(t, "produit", summary.Entities[0].Type)
	assert.Equal(t, stored, summary)
}

func TestSummaryService_MarkdownFencedJSON(t *testing.T) {
	svc, convRepo, summaryRepo, provider := newSummaryFixture()
	conv := conversationWithMessages(6)

	convRepo.On("Get", mock.Anything, conv.ID).Return(conv, nil)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
		"```json\n{\"summary\": \"Résumé propre.\", \"keyPoints\": [], \"entities\": []}\n```",
		nil,
	)
	summaryRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	summary, err := svc.GenerateAndSave(context.Background(), conv.UserID, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, "Résumé propre.", summary.Summary)
}

func TestSummaryService_PartialExtraction(t *testing.T) {
	svc, convRepo, summaryRepo, provider := newSummaryFixture()
	conv := conversationWithMessages(6)

	// Trailing garbage breaks json.Unmarshal but the fields are present
	convRepo.On("Get", mock.Anything, conv.ID).Return(conv, nil)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
		`Voici le résumé : {"summary": "Discussion sur les ventes.", "keyPoints": ["stock faible", "deux ventes"], "entities": [}`,
		nil,
	)
	summaryRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	summary, err := svc.GenerateAndSave(context.Background(), conv.UserID, conv.ID)
	require.NoError(t, err)

	assert.Equal(t, "Discussion sur les ventes.", summary.Summary)
	assert.Equal(t, []string{"stock faible", "deux ventes"}, summary.KeyPoints)
}

func TestSummaryService_DegradedPlaceholder(t *testing.T) {
	svc, convRepo, summaryRepo, provider := newSummaryFixture()
	conv := conversationWithMessages(6)

	convRepo.On("Get", mock.Anything, conv.ID).Return(conv, nil)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("je ne peux pas produire de JSON", nil)
	summaryRepo.On("Upsert", mock.Anything, mock.Anything).Return(nil)

	summary, err := svc.GenerateAndSave(context.Background(), conv.UserID, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, degradedSummary, summary.Summary)
}

func TestSummaryService_LLMFailurePropagatesForRetry(t *testing.T) {
	svc, convRepo, summaryRepo, provider := newSummaryFixture()
	conv := conversationWithMessages(6)

	convRepo.On("Get", mock.Anything, conv.ID).Return(conv, nil)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("llm down"))

	_, err := svc.GenerateAndSave(context.Background(), conv.UserID, conv.ID)
	require.Error(t, err)

	var uerr *domain.UpstreamError
	assert.ErrorAs(t, err, &uerr)
	summaryRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSummaryService_UnknownProviderPropagatesForRetry(t *testing.T) {
	convRepo := new(MockConversationRepository)
	summaryRepo := new(MockSummaryRepository)
	svc := NewSummaryService(llm.NewRouter("missing"), "missing", convRepo, summaryRepo, zerolog.Nop())
	conv := conversationWithMessages(6)

	convRepo.On("Get", mock.Anything, conv.ID).Return(conv, nil)

	_, err := svc.GenerateAndSave(context.Background(), conv.UserID, conv.ID)
	require.Error(t, err)
	summaryRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSummaryService_EmptyConversationIsError(t *testing.T) {
	svc, convRepo, summaryRepo, _ := newSummaryFixture()
	conv := conversationWithMessages(0)

	convRepo.On("Get", mock.Anything, conv.ID).Return(conv, nil)

	_, err := svc.GenerateAndSave(context.Background(), conv.UserID, conv.ID)
	require.Error(t, err)

	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
	summaryRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestSummaryService_UpsertIdempotent(t *testing.T) {
	// Running the job twice writes the same (tenant, conversation) target
	svc, convRepo, summaryRepo, provider := newSummaryFixture()
	conv := conversationWithMessages(6)

	convRepo.On("Get", mock.Anything, conv.ID).Return(conv, nil)
	provider.On("Complete", mock.Anything, mock.Anything, mock.Anything).Return(
		`{"summary": "Même résumé.", "keyPoints": [], "entities": []}`, nil,
	)

	var targets []uuid.UUID
	summaryRepo.On("Upsert", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		s := args.Get(1).(*domain.ConversationSummary)
		targets = append(targets, s.ConversationID)
	}).Return(nil)

	_, err := svc.GenerateAndSave(context.Background(), conv.UserID, conv.ID)
	require.NoError(t, err)
	_, err = svc.GenerateAndSave(context.Background(), conv.UserID, conv.ID)
	require.NoError(t, err)

	require.Len(t, targets, 2)
	assert.Equal(t, targets[0], targets[1])
}

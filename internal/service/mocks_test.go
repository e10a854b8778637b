package service

import (
	"context"
	"time"

	"github.com/branda-app/branda/internal/domain"
	"github.com/branda-app/branda/internal/llm"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockConversationRepository mocks the ConversationRepository interface
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) Create(ctx context.Context, conv *domain.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversationRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationRepository) ListByUser(ctx context.Context, userID uuid.UUID, limit int) ([]domain.Conversation, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]domain.Conversation), args.Error(1)
}

func (m *MockConversationRepository) AppendMessage(ctx context.Context, id uuid.UUID, msg domain.Message) error {
	args := m.Called(ctx, id, msg)
	return args.Error(0)
}

func (m *MockConversationRepository) Deactivate(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSummaryRepository mocks the SummaryRepository interface
type MockSummaryRepository struct {
	mock.Mock
}

func (m *MockSummaryRepository) Upsert(ctx context.Context, summary *domain.ConversationSummary) error {
	args := m.Called(ctx, summary)
	return args.Error(0)
}

func (m *MockSummaryRepository) GetByConversation(ctx context.Context, conversationID uuid.UUID) (*domain.ConversationSummary, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversationSummary), args.Error(1)
}

func (m *MockSummaryRepository) ListByPeriod(ctx context.Context, start, end time.Time) ([]domain.ConversationSummary, error) {
	args := m.Called(ctx, start, end)
	return args.Get(0).([]domain.ConversationSummary), args.Error(1)
}

// MockUserRepository mocks the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// MockTenantRepository mocks the TenantRepository interface
type MockTenantRepository struct {
	mock.Mock
}

func (m *MockTenantRepository) Create(ctx context.Context, tenant *domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

func (m *MockTenantRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Tenant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) GetByOwner(ctx context.Context, ownerUserID uuid.UUID) (*domain.Tenant, error) {
	args := m.Called(ctx, ownerUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Tenant), args.Error(1)
}

func (m *MockTenantRepository) Update(ctx context.Context, tenant *domain.Tenant) error {
	args := m.Called(ctx, tenant)
	return args.Error(0)
}

// MockHistoryCache mocks the HistoryCache interface
type MockHistoryCache struct {
	mock.Mock
}

func (m *MockHistoryCache) Get(ctx context.Context, userID, conversationID uuid.UUID) ([]domain.Message, error) {
	args := m.Called(ctx, userID, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Message), args.Error(1)
}

func (m *MockHistoryCache) Set(ctx context.Context, userID, conversationID uuid.UUID, messages []domain.Message) error {
	args := m.Called(ctx, userID, conversationID, messages)
	return args.Error(0)
}

func (m *MockHistoryCache) Invalidate(ctx context.Context, userID, conversationID uuid.UUID) error {
	args := m.Called(ctx, userID, conversationID)
	return args.Error(0)
}

// MockResponseCache mocks the ResponseCache interface
type MockResponseCache struct {
	mock.Mock
}

func (m *MockResponseCache) Get(ctx context.Context, userID uuid.UUID, message string) (string, error) {
	args := m.Called(ctx, userID, message)
	return args.String(0), args.Error(1)
}

func (m *MockResponseCache) Set(ctx context.Context, userID uuid.UUID, message, response string) error {
	args := m.Called(ctx, userID, message, response)
	return args.Error(0)
}

// MockSummaryScheduler mocks the SummaryScheduler interface
type MockSummaryScheduler struct {
	mock.Mock
}

func (m *MockSummaryScheduler) ScheduleSummary(ctx context.Context, tenantID, userID, conversationID uuid.UUID) error {
	args := m.Called(ctx, tenantID, userID, conversationID)
	return args.Error(0)
}

// MockProvider mocks the llm.Provider interface
type MockProvider struct {
	mock.Mock
	name string
}

func NewMockProvider(name string) *MockProvider {
	return &MockProvider{name: name}
}

func (m *MockProvider) Name() string {
	return m.name
}

func (m *MockProvider) DefaultModel() string {
	return "mock-model"
}

func (m *MockProvider) IsConfigured() bool {
	return true
}

func (m *MockProvider) Complete(ctx context.Context, messages []llm.Message, opts llm.Options) (string, error) {
	args := m.Called(ctx, messages, opts)
	return args.String(0), args.Error(1)
}

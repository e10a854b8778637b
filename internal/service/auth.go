package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/branda-app/branda/internal/domain"
	"github.com/branda-app/branda/internal/security"
	"github.com/branda-app/branda/internal/tenant"
	"github.com/google/uuid"
)

// ErrInvalidCredentials is returned for any authentication failure so the
// response does not reveal whether the email exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService handles authentication operations
type AuthService struct {
	userRepo   domain.UserRepository
	tenantRepo domain.TenantRepository
	jwtManager *security.JWTManager
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	tenantRepo domain.TenantRepository,
	jwtManager *security.JWTManager,
) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		jwtManager: jwtManager,
	}
}

// Register creates a new tenant and its owner account in one step. Every
// business gets exactly one tenant at signup.
func (s *AuthService) Register(ctx context.Context, input domain.UserCreate) (*domain.User, error) {
	existing, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing != nil {
		return nil, domain.NewValidationError("email already registered")
	}

	hashedPassword, err := security.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now().UTC()
	userID := uuid.New()

	newTenant := &domain.Tenant{
		ID:          uuid.New(),
		Name:        input.BusinessName,
		OwnerUserID: userID,
		Sector:      input.Sector,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.tenantRepo.Create(ctx, newTenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		TenantID:     newTenant.ID,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Role:         domain.RoleOwner,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Login authenticates a user and returns tokens
func (s *AuthService) Login(ctx context.Context, input domain.UserLogin) (*domain.TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !security.VerifyPassword(user.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(user)
}

// Refresh refreshes the access token using a refresh token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error) {
	userID, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return s.issueTokens(user)
}

func (s *AuthService) issueTokens(user *domain.User) (*domain.TokenPair, error) {
	accessToken, refreshToken, expiresIn, err := s.jwtManager.GenerateTokenPair(user.ID, user.TenantID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tokens: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// GetTenant returns the tenant bound to the current context
func (s *AuthService) GetTenant(ctx context.Context) (*domain.Tenant, error) {
	tenantID, ok := tenant.FromContext(ctx)
	if !ok {
		return nil, domain.NewValidationError("no tenant in context")
	}
	return s.tenantRepo.Get(ctx, tenantID)
}

// UpdateTenant updates the business profile of the tenant bound to the
// current context. Empty fields are left untouched.
func (s *AuthService) UpdateTenant(ctx context.Context, name, sector string) (*domain.Tenant, error) {
	t, err := s.GetTenant(ctx)
	if err != nil {
		return nil, err
	}

	if name != "" {
		t.Name = name
	}
	if sector != "" {
		t.Sector = sector
	}
	t.UpdatedAt = time.Now().UTC()

	if err := s.tenantRepo.Update(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to update tenant: %w", err)
	}
	return t, nil
}

package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/branda-app/branda/internal/api/handler"
	"github.com/branda-app/branda/internal/api/middleware"
	"github.com/branda-app/branda/internal/domain"
	"github.com/branda-app/branda/internal/security"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTManager() *security.JWTManager {
	return security.NewJWTManager("test-secret-key-32-characters!!!", 15*time.Minute, 7*24*time.Hour)
}

func makeJSONRequest(t *testing.T, method, path string, body any) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHealthCheck(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	rec := httptest.NewRecorder()

	handler.HealthCheck(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, true, resp["success"])

	data, ok := resp["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ok", data["status"])
}

func TestAuthMiddleware_Authenticate(t *testing.T) {
	jwtManager := newTestJWTManager()
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	var gotUser domain.UserContext
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := middleware.GetUserContext(r.Context())
		require.True(t, ok)
		gotUser = user
		w.WriteHeader(http.StatusOK)
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		rec := httptest.NewRecorder()

		authMiddleware.Authenticate(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Token abc")
		rec := httptest.NewRecorder()

		authMiddleware.Authenticate(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		rec := httptest.NewRecorder()

		authMiddleware.Authenticate(next).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("valid token binds user and tenant", func(t *testing.T) {
		userID := uuid.New()
		tenantID := uuid.New()
		token, err := jwtManager.GenerateAccessToken(userID, tenantID, "marie@boulangerie.cm", domain.RoleOwner)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		authMiddleware.Authenticate(next).ServeHTTP(rec, req)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, userID, gotUser.UserID)
		assert.Equal(t, tenantID, gotUser.TenantID)
		assert.Equal(t, domain.RoleOwner, gotUser.Role)
	})
}

func TestRequireRole(t *testing.T) {
	jwtManager := newTestJWTManager()
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protected := authMiddleware.Authenticate(middleware.RequireRole(domain.RoleOwner)(next))

	token, err := jwtManager.GenerateAccessToken(uuid.New(), uuid.New(), "vendeur@boutique.cm", domain.RoleEmployee)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin/queues", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestChatHandler_SendMessage_Validation(t *testing.T) {
	jwtManager := newTestJWTManager()
	authMiddleware := middleware.NewAuthMiddleware(jwtManager)
	chatHandler := handler.NewChatHandler(nil, nil)

	token, err := jwtManager.GenerateAccessToken(uuid.New(), uuid.New(), "marie@boulangerie.cm", domain.RoleOwner)
	require.NoError(t, err)

	protected := authMiddleware.Authenticate(http.HandlerFunc(chatHandler.SendMessage))

	t.Run("missing message", func(t *testing.T) {
		req := makeJSONRequest(t, http.MethodPost, "/api/v1/chat", map[string]any{})
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewBufferString("{not json"))
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		req := makeJSONRequest(t, http.MethodPost, "/api/v1/chat", map[string]any{"message": "Bonjour"})
		rec := httptest.NewRecorder()

		protected.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/branda-app/branda/internal/domain"
	"github.com/google/uuid"
)

const (
	historyCachePrefix  = "chatHistory:"
	responseCachePrefix = "aiResponse:"

	defaultHistoryTTL  = time.Hour
	defaultResponseTTL = 10 * time.Minute
)

// HistoryCache keeps a hot copy of conversation messages so chat turns do
// not hit MongoDB on every read. MongoDB remains the source of truth; a
// cache failure is treated as a miss, never an error.
type HistoryCache struct {
	client *Client
	ttl    time.Duration
}

// NewHistoryCache creates a new history cache. A zero ttl falls back to
// one hour.
func NewHistoryCache(client *Client, ttl time.Duration) *HistoryCache {
	if ttl <= 0 {
		ttl = defaultHistoryTTL
	}
	return &HistoryCache{client: client, ttl: ttl}
}

func historyKey(userID, conversationID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", historyCachePrefix, userID, conversationID)
}

// Get retrieves cached messages for a conversation. A miss or a Redis
// failure both return (nil, nil).
func (c *HistoryCache) Get(ctx context.Context, userID, conversationID uuid.UUID) ([]domain.Message, error) {
	data, err := c.client.rdb.Get(ctx, historyKey(userID, conversationID)).Bytes()
	if err != nil {
		return nil, nil // Cache miss
	}

	var messages []domain.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		return nil, nil // Stale or corrupt entry, treat as miss
	}
	return messages, nil
}

// Set caches the full message list for a conversation
func (c *HistoryCache) Set(ctx context.Context, userID, conversationID uuid.UUID, messages []domain.Message) error {
	data, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("failed to marshal messages: %w", err)
	}
	return c.client.rdb.Set(ctx, historyKey(userID, conversationID), data, c.ttl).Err()
}

// Invalidate drops the cached history for a conversation
func (c *HistoryCache) Invalidate(ctx context.Context, userID, conversationID uuid.UUID) error {
	return c.client.rdb.Del(ctx, historyKey(userID, conversationID)).Err()
}

// ResponseCache short-circuits repeated identical questions. The key is
// derived from the user and the raw message text only, so the same
// question in two conversations shares one entry within the TTL window.
type ResponseCache struct {
	client *Client
	ttl    time.Duration
}

// NewResponseCache creates a new response cache. A zero ttl falls back to
// ten minutes.
func NewResponseCache(client *Client, ttl time.Duration) *ResponseCache {
	if ttl <= 0 {
		ttl = defaultResponseTTL
	}
	return &ResponseCache{client: client, ttl: ttl}
}

func responseKey(userID uuid.UUID, message string) string {
	sum := sha256.Sum256([]byte(message))
	return fmt.Sprintf("%s%s:%s", responseCachePrefix, userID, hex.EncodeToString(sum[:]))
}

// Get retrieves a cached response for (user, message). A miss or a Redis
// failure both return ("", nil).
func (c *ResponseCache) Get(ctx context.Context, userID uuid.UUID, message string) (string, error) {
	val, err := c.client.rdb.Get(ctx, responseKey(userID, message)).Result()
	if err != nil {
		return "", nil // Cache miss
	}
	return val, nil
}

// Set caches a response for (user, message)
func (c *ResponseCache) Set(ctx context.Context, userID uuid.UUID, message, response string) error {
	return c.client.rdb.Set(ctx, responseKey(userID, message), response, c.ttl).Err()
}

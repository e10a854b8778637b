package redis

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUserRateKey(t *testing.T) {
	userID := uuid.New()
	key := userRateKey(userID)

	assert.Equal(t, "ratelimit:user:"+userID.String(), key)
	assert.NotEqual(t, key, userRateKey(uuid.New()))
}

func TestAllowance(t *testing.T) {
	r := &RateLimiter{requestsPerMinute: 60, burst: 10}
	assert.Equal(t, int64(70), r.allowance())
}

func TestRemainingAllowance(t *testing.T) {
	cases := []struct {
		name  string
		count int64
		limit int64
		want  int
	}{
		{"fresh window", 1, 70, 69},
		{"last allowed request", 70, 70, 0},
		{"over the limit stays at zero", 75, 70, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, remainingAllowance(tc.count, tc.limit))
		})
	}
}

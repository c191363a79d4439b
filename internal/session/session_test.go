package session_test

import (
	"testing"
	"time"

	"zapgroups-backend-go/internal/session"

	"github.com/stretchr/testify/assert"
)

func TestExpired(t *testing.T) {
	ttl := 24 * time.Hour
	now := time.Date(2025, 6, 10, 12, 0, 0, 0, time.UTC)

	fresh := session.Session{LoginTime: now.Add(-23 * time.Hour)}
	assert.False(t, fresh.Expired(now, ttl), "a 23h-old login is still valid")

	stale := session.Session{LoginTime: now.Add(-25 * time.Hour)}
	assert.True(t, stale.Expired(now, ttl), "a 25h-old login is logged out")

	exact := session.Session{LoginTime: now.Add(-24 * time.Hour)}
	assert.False(t, exact.Expired(now, ttl), "expiry is strictly greater than the TTL")
}

func TestIsAdmin(t *testing.T) {
	assert.True(t, session.Session{Type: "admin"}.IsAdmin())
	assert.False(t, session.Session{Type: "user"}.IsAdmin())
	assert.False(t, session.Session{}.IsAdmin())
}

package services_test

import (
	"strings"
	"testing"
	"time"

	"zapgroups-backend-go/internal/models"
	"zapgroups-backend-go/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func testTokens() services.TokenService {
	return services.TokenService{
		Secret:     []byte("unit-test-secret"),
		Issuer:     "zapgroups",
		SessionTTL: 24 * time.Hour,
	}
}

func TestPasswordHashRoundTrip(t *testing.T) {
	tokens := testTokens()

	hashed, err := tokens.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hashed, "$argon2id$"))

	assert.True(t, tokens.VerifyPassword("s3cret-pass", hashed))
	assert.False(t, tokens.VerifyPassword("wrong-pass", hashed))
}

func TestVerifyPasswordLegacyBcrypt(t *testing.T) {
	tokens := testTokens()
	hashed, err := bcrypt.GenerateFromPassword([]byte("old-pass"), bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, tokens.VerifyPassword("old-pass", string(hashed)))
	assert.False(t, tokens.VerifyPassword("wrong", string(hashed)))
}

func TestSessionTokenRoundTrip(t *testing.T) {
	tokens := testTokens()
	user := models.User{ID: 5, Name: "Ana", Email: "ana@example.com", Type: models.UserTypeAdmin}
	now := time.Now().UTC().Truncate(time.Second)

	signed, exp, err := tokens.CreateSessionToken(user, now)
	require.NoError(t, err)
	assert.Equal(t, now.Add(24*time.Hour).Unix(), exp)

	sess, err := tokens.ParseSession(signed)
	require.NoError(t, err)
	assert.Equal(t, int64(5), sess.UserID)
	assert.Equal(t, "Ana", sess.Name)
	assert.Equal(t, "ana@example.com", sess.Email)
	assert.True(t, sess.IsAdmin())
	assert.Equal(t, now, sess.LoginTime)
}

func TestParseSessionRejectsForeignSecret(t *testing.T) {
	signed, _, err := testTokens().CreateSessionToken(models.User{ID: 5}, time.Now())
	require.NoError(t, err)

	other := testTokens()
	other.Secret = []byte("a-different-secret")
	_, err = other.ParseSession(signed)
	assert.Error(t, err)
}

func TestParseSessionRejectsExpiredToken(t *testing.T) {
	tokens := testTokens()
	signed, _, err := tokens.CreateSessionToken(models.User{ID: 5}, time.Now().Add(-48*time.Hour))
	require.NoError(t, err)

	_, err = tokens.ParseSession(signed)
	assert.Error(t, err)
}

func TestParseSessionRejectsGarbage(t *testing.T) {
	_, err := testTokens().ParseSession("not.a.token")
	assert.Error(t, err)
}

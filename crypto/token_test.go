package crypto

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService(ttl time.Duration) *TokenService {
	return NewTokenService(TokenConfig{
		Issuer: "tasktrack",
		Secret: []byte("super-secret-test-key"),
		TTL:    ttl,
	})
}

func TestTokenService_IssueAndVerify(t *testing.T) {
	t.Parallel()

	service := newTestTokenService(time.Hour)

	token, err := service.Issue(42, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	verified, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), verified.UserID())
	assert.Equal(t, "alice", verified.Username())
	assert.WithinDuration(t, time.Now().Add(time.Hour), verified.ExpiresAt(), 5*time.Second)
}

func TestTokenService_Verify_Expired(t *testing.T) {
	t.Parallel()

	service := newTestTokenService(-1 * time.Second)

	token, err := service.Issue(1, "alice")
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_Verify_WrongSecret(t *testing.T) {
	t.Parallel()

	issuerSide := newTestTokenService(time.Hour)
	verifierSide := NewTokenService(TokenConfig{
		Issuer: "tasktrack",
		Secret: []byte("a-different-secret"),
		TTL:    time.Hour,
	})

	token, err := issuerSide.Issue(1, "alice")
	require.NoError(t, err)

	_, err = verifierSide.Verify(token)
	assert.ErrorIs(t, err, ErrBadSignature)
}

func TestTokenService_Verify_WrongIssuer(t *testing.T) {
	t.Parallel()

	other := NewTokenService(TokenConfig{
		Issuer: "someone-else",
		Secret: []byte("super-secret-test-key"),
		TTL:    time.Hour,
	})
	service := newTestTokenService(time.Hour)

	token, err := other.Issue(1, "alice")
	require.NoError(t, err)

	_, err = service.Verify(token)
	assert.ErrorIs(t, err, ErrUnknownIssuer)
}

func TestTokenService_Verify_Malformed(t *testing.T) {
	t.Parallel()

	service := newTestTokenService(time.Hour)

	for _, token := range []string{"", "not.a.jwt", "garbage"} {
		_, err := service.Verify(token)
		assert.ErrorIs(t, err, ErrMalformedToken, "token %q", token)
	}
}

// Flipping any single bit of a valid token must invalidate it.
func TestTokenService_Verify_Tampered(t *testing.T) {
	t.Parallel()

	service := newTestTokenService(time.Hour)

	token, err := service.Issue(42, "alice")
	require.NoError(t, err)

	for i := 0; i < len(token); i += 7 {
		raw := []byte(token)
		if raw[i] == '.' {
			continue
		}
		raw[i] ^= 0x01
		_, err := service.Verify(string(raw))
		assert.Error(t, err, "bit flip at offset %d should invalidate the token", i)
	}
}

func TestTokenService_UnverifiedExtraction(t *testing.T) {
	t.Parallel()

	service := newTestTokenService(time.Hour)

	token, err := service.Issue(42, "alice")
	require.NoError(t, err)

	assert.Equal(t, int64(42), service.UnverifiedUserID(token))
	assert.Equal(t, "alice", service.UnverifiedUsername(token))

	// Sentinels on parse failure
	assert.Equal(t, int64(-1), service.UnverifiedUserID("not.a.jwt"))
	assert.Equal(t, "", service.UnverifiedUsername("not.a.jwt"))
}

// The wire claims carry user_id as a stringified integer.
func TestTokenService_ClaimsSurface(t *testing.T) {
	t.Parallel()

	service := newTestTokenService(time.Hour)

	token, err := service.Issue(42, "alice")
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	claims, err := parseUnverified(token)
	require.NoError(t, err)
	assert.Equal(t, "42", claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "tasktrack", claims.Issuer)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.Equal(t, time.Hour, claims.ExpiresAt.Sub(claims.IssuedAt.Time))
}

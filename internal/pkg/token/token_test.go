package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobtrackr/jobtracker-api/internal/core/domain"
)

func testUser() *domain.User {
	return &domain.User{ID: "64f0c2a1b3d4e5f601234567", Email: "alice@example.com"}
}

func TestIssueAndValidate(t *testing.T) {
	m := NewManager("secret", time.Hour)

	signed, err := m.Issue(testUser())
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	claims, err := m.Validate(signed)
	require.NoError(t, err)
	assert.Equal(t, "64f0c2a1b3d4e5f601234567", claims.UserID)
	assert.Equal(t, "alice@example.com", claims.Email)
}

func TestValidate_Expired(t *testing.T) {
	m := NewManager("secret", -time.Minute)

	signed, err := m.Issue(testUser())
	require.NoError(t, err)

	_, err = m.Validate(signed)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

// A negative ttl must not be replaced with the default: it is the only way to
// mint a token that is already past its expiry.
func TestNewManager_HonoursNegativeTTL(t *testing.T) {
	m := NewManager("secret", -time.Minute)

	signed, err := m.Issue(testUser())
	require.NoError(t, err)

	claims := &Claims{}
	_, _, err = jwt.NewParser().ParseUnverified(signed, claims)
	require.NoError(t, err)
	assert.True(t, claims.ExpiresAt.Time.Before(time.Now()), "expiry should already be in the past")
}

func TestValidate_WrongKey(t *testing.T) {
	signed, err := NewManager("secret", time.Hour).Issue(testUser())
	require.NoError(t, err)

	_, err = NewManager("other-secret", time.Hour).Validate(signed)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestValidate_Garbage(t *testing.T) {
	m := NewManager("secret", time.Hour)

	_, err := m.Validate("not-a-token")
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestValidate_RejectsUnsignedAlg(t *testing.T) {
	m := NewManager("secret", time.Hour)

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		UserID: "64f0c2a1b3d4e5f601234567",
	})
	signed, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = m.Validate(signed)
	assert.ErrorIs(t, err, ErrTokenMalformed)
}

func TestDefaultTTL(t *testing.T) {
	m := NewManager("secret", 0)

	signed, err := m.Issue(testUser())
	require.NoError(t, err)

	claims, err := m.Validate(signed)
	require.NoError(t, err)

	// The default session window is seven days.
	expiry := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(DefaultTTL), expiry, time.Minute)
}

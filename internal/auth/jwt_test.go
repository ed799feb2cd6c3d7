package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"donation-platform/internal/models"
)

func testUser() *models.User {
	username := "User_0.0.4242"
	return &models.User{ID: 7, Username: &username, WalletAddress: "0.0.4242"}
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := NewManager("test-secret", 0)

	token, err := m.GenerateToken(testUser())
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "User_0.0.4242", claims.Username)
	assert.Equal(t, "0.0.4242", claims.WalletAddress)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestTokenDecodesWithSigningKey(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	token, err := m.GenerateToken(testUser())
	require.NoError(t, err)

	parsed := &Claims{}
	_, err = jwt.ParseWithClaims(token, parsed, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), parsed.UserID)
}

func TestExpiredTokenRejected(t *testing.T) {
	issuer := NewManager("test-secret", 24*time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-25 * time.Hour) }

	token, err := issuer.GenerateToken(testUser())
	require.NoError(t, err)

	_, err = NewManager("test-secret", 24*time.Hour).ValidateToken(token)
	require.Error(t, err)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestTamperedSignatureRejected(t *testing.T) {
	m := NewManager("test-secret", 0)
	token, err := m.GenerateToken(testUser())
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	_, err = m.ValidateToken(tampered)
	require.Error(t, err)
}

func TestTokenFromOtherSecretRejected(t *testing.T) {
	token, err := NewManager("other-secret", 0).GenerateToken(testUser())
	require.NoError(t, err)

	_, err = NewManager("test-secret", 0).ValidateToken(token)
	require.Error(t, err)
}

func TestUnsignedTokenRejected(t *testing.T) {
	claims := &Claims{
		UserID: 7,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("test-secret", 0).ValidateToken(token)
	require.Error(t, err)
}

func TestEmptySecretRefusesToSign(t *testing.T) {
	_, err := NewManager("", 0).GenerateToken(testUser())
	require.Error(t, err)
}

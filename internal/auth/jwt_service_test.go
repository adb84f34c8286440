package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService("test-secret")

	token, err := svc.GenerateSessionToken("account-1")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "account-1", claims.UserID)

	// Expiry sits one hour out from issuance.
	issued := claims.IssuedAt.Time
	expires := claims.ExpiresAt.Time
	assert.Equal(t, SessionTokenExpiry, expires.Sub(issued))
}

func TestJWTService_RejectsExpiredToken(t *testing.T) {
	secret := "test-secret"
	claims := &SessionClaims{
		UserID: "account-1",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	assert.NoError(t, err)

	_, err = NewJWTService(secret).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsWrongSecret(t *testing.T) {
	token, err := NewJWTService("secret-a").GenerateSessionToken("account-1")
	assert.NoError(t, err)

	_, err = NewJWTService("secret-b").ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_RejectsMalformedToken(t *testing.T) {
	_, err := NewJWTService("test-secret").ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

func TestNewVerificationToken(t *testing.T) {
	token := NewVerificationToken()
	assert.Len(t, token, 13)
	for _, r := range token {
		assert.True(t, strings.ContainsRune(verificationTokenCharset, r), "unexpected rune %q", r)
	}

	// Tokens are random enough not to repeat back to back.
	assert.NotEqual(t, token, NewVerificationToken())
}

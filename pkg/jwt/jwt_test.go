package jwt

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func sign(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return s
}

func validClaims() Claims {
	now := time.Now()
	return Claims{
		Email: "ana@example.com",
		Role:  "admin",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "identity-srv",
			Subject:   "u-1",
			Audience:  jwt.ClaimStrings{"widget-srv"},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
}

func newManager(t *testing.T) IManager {
	t.Helper()
	m, err := New(Config{SecretKey: testSecret, Issuer: "identity-srv", Audience: []string{"widget-srv"}})
	require.NoError(t, err)
	return m
}

func TestNew_RejectsShortSecret(t *testing.T) {
	_, err := New(Config{SecretKey: "short"})
	assert.True(t, errors.Is(err, ErrSecretTooShort))
}

func TestVerify(t *testing.T) {
	p, err := newManager(t).Verify(sign(t, testSecret, validClaims()))
	require.NoError(t, err)

	assert.Equal(t, "u-1", p.UserID)
	assert.Equal(t, "ana@example.com", p.Username)
	assert.Equal(t, "admin", p.Role)
	assert.NotZero(t, p.ExpiresAt)
}

func TestVerify_Rejects(t *testing.T) {
	expired := validClaims()
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))

	otherIssuer := validClaims()
	otherIssuer.Issuer = "someone-else"

	otherAudience := validClaims()
	otherAudience.Audience = jwt.ClaimStrings{"billing-srv"}

	noExpiry := validClaims()
	noExpiry.ExpiresAt = nil

	tests := []struct {
		name  string
		token string
	}{
		{name: "expired", token: sign(t, testSecret, expired)},
		{name: "wrong issuer", token: sign(t, testSecret, otherIssuer)},
		{name: "wrong audience", token: sign(t, testSecret, otherAudience)},
		{name: "missing expiry", token: sign(t, testSecret, noExpiry)},
		{name: "wrong secret", token: sign(t, "ffffffffffffffffffffffffffffffff", validClaims())},
		{name: "garbage", token: "not.a.token"},
	}

	m := newManager(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := m.Verify(tt.token)
			assert.Error(t, err)
		})
	}
}

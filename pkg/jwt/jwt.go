package jwt

import (
	"fmt"
	"slices"

	"github.com/golang-jwt/jwt/v5"

	"widget-srv/pkg/scope"
)

func validateConfig(cfg Config) error {
	if len(cfg.SecretKey) < MinSecretKeyLen {
		return ErrSecretTooShort
	}
	return nil
}

// VerifyToken verifies and parses an HS256 token.
func (m *managerImpl) VerifyToken(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secretKey, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	if len(m.audience) > 0 && !slices.ContainsFunc(claims.Audience, func(a string) bool {
		return slices.Contains(m.audience, a)
	}) {
		return nil, ErrAudienceMismatch
	}

	return claims, nil
}

// Verify implements scope.Manager.
func (m *managerImpl) Verify(token string) (scope.Payload, error) {
	claims, err := m.VerifyToken(token)
	if err != nil {
		return scope.Payload{}, err
	}

	p := scope.Payload{
		UserID:   claims.Subject,
		Username: claims.Email,
		Role:     claims.Role,
		Subject:  claims.Subject,
		Issuer:   claims.Issuer,
		ID:       claims.ID,
	}
	if claims.ExpiresAt != nil {
		p.ExpiresAt = claims.ExpiresAt.Unix()
	}
	if claims.IssuedAt != nil {
		p.IssuedAt = claims.IssuedAt.Unix()
	}
	return p, nil
}

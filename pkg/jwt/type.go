package jwt

import (
	"github.com/golang-jwt/jwt/v5"
)

// Config holds JWT verification configuration.
type Config struct {
	SecretKey string
	Issuer    string
	// Audience accepts a token naming any of these audiences. Empty skips the check.
	Audience []string
}

// managerImpl implements IManager.
type managerImpl struct {
	secretKey []byte
	issuer    string
	audience  []string
}

// Claims represents JWT claims structure.
type Claims struct {
	Email  string   `json:"email"`
	Role   string   `json:"role"`
	Groups []string `json:"groups,omitempty"`
	jwt.RegisteredClaims
}

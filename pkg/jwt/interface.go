package jwt

import (
	"widget-srv/pkg/scope"
)

// IManager verifies access tokens issued by the identity service.
// Implementations are safe for concurrent use.
type IManager interface {
	VerifyToken(tokenString string) (*Claims, error)
	Verify(token string) (scope.Payload, error)
}

// New creates a new JWT manager. Returns the interface.
func New(cfg Config) (IManager, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, err
	}
	return &managerImpl{
		secretKey: []byte(cfg.SecretKey),
		issuer:    cfg.Issuer,
		audience:  cfg.Audience,
	}, nil
}

package jwt

import "errors"

const (
	// MinSecretKeyLen is the minimum length for HS256 secret key.
	MinSecretKeyLen = 32
)

var (
	ErrSecretTooShort   = errors.New("jwt: secret key must be at least 32 characters")
	ErrInvalidToken     = errors.New("jwt: invalid token")
	ErrAudienceMismatch = errors.New("jwt: token audience not accepted")
)

package scope

// Payload is the verified content of an access token.
type Payload struct {
	UserID    string
	Username  string
	Role      string
	Subject   string
	Issuer    string
	ID        string
	ExpiresAt int64
	IssuedAt  int64
}

// Manager verifies access tokens.
type Manager interface {
	Verify(token string) (Payload, error)
}

type payloadCtxKey struct{}
type scopeCtxKey struct{}

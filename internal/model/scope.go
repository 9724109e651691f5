package model

// Scope is the authenticated caller extracted from the access token.
type Scope struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

package driven

import "context"

// TokenVerifier resolves a bearer token to a username.
// Token issuance and user management live outside the tutor.
type TokenVerifier interface {
	// Verify returns the username for token, or domain.ErrUnauthorized.
	Verify(ctx context.Context, token string) (string, error)
}

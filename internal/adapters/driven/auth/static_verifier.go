// Package auth resolves bearer tokens to usernames.
package auth

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/custodia-labs/tutor/internal/core/domain"
	"github.com/custodia-labs/tutor/internal/core/ports/driven"
)

// Ensure StaticTokenVerifier implements the TokenVerifier interface.
var _ driven.TokenVerifier = (*StaticTokenVerifier)(nil)

type tokenEntry struct {
	token    []byte
	username string
}

// StaticTokenVerifier checks tokens against a fixed table from configuration.
type StaticTokenVerifier struct {
	entries []tokenEntry
}

// NewStaticTokenVerifier creates a verifier from a token to username map.
// Entries with an empty token or username are ignored.
func NewStaticTokenVerifier(tokens map[string]string) *StaticTokenVerifier {
	v := &StaticTokenVerifier{}
	for token, username := range tokens {
		if token == "" || username == "" {
			continue
		}
		v.entries = append(v.entries, tokenEntry{token: []byte(token), username: username})
	}
	return v
}

// Verify returns the username bound to token.
// Every entry is compared so the time taken does not depend on which one matches.
func (v *StaticTokenVerifier) Verify(ctx context.Context, token string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if token == "" {
		return "", fmt.Errorf("%w: missing token", domain.ErrUnauthorized)
	}

	given := []byte(token)
	username := ""
	for _, e := range v.entries {
		if subtle.ConstantTimeCompare(given, e.token) == 1 {
			username = e.username
		}
	}
	if username == "" {
		return "", fmt.Errorf("%w: unknown token", domain.ErrUnauthorized)
	}
	return username, nil
}

// Len returns the number of configured tokens.
func (v *StaticTokenVerifier) Len() int {
	return len(v.entries)
}

// NewVerifier returns a StaticTokenVerifier when tokens are configured,
// otherwise a NullTokenVerifier for anonymousUser.
func NewVerifier(tokens map[string]string, anonymousUser string) driven.TokenVerifier {
	static := NewStaticTokenVerifier(tokens)
	if static.Len() == 0 {
		return NewNullTokenVerifier(anonymousUser)
	}
	return static
}

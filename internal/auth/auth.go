// internal/auth/auth.go
package auth

import (
	"context"
	"fmt"
	"strings"

	apperrors "skillpulse/internal/errors"
)

// Verifier resolves a bearer session token to a user ID. The real session
// system lives outside this service; handlers depend only on this interface.
type Verifier interface {
	Verify(ctx context.Context, token string) (string, error)
}

// StaticVerifier is a token→user lookup built from configuration entries in
// 'token=user' form. It stands in for the external session collaborator.
type StaticVerifier struct {
	users map[string]string
}

// NewStaticVerifier parses the configured session entries.
func NewStaticVerifier(entries []string) (*StaticVerifier, error) {
	users := make(map[string]string, len(entries))
	for _, e := range entries {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return nil, fmt.Errorf("invalid session token entry: %q, expected 'token=user'", e)
		}
		users[parts[0]] = parts[1]
	}
	return &StaticVerifier{users: users}, nil
}

func (v *StaticVerifier) Verify(_ context.Context, token string) (string, error) {
	userID, ok := v.users[token]
	if !ok {
		return "", &apperrors.AuthenticationError{Reason: "invalid session token"}
	}
	return userID, nil
}

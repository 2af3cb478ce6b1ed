package auth

import (
	"context"

	"github.com/mreece/fincast/internal/model"
)

// Authenticator abstracts the credential scheme so the API layer does not
// care whether accounts are backed by passwords, OAuth, or something else.
type Authenticator interface {
	// Register creates a new user account with the given email and credential.
	Register(ctx context.Context, email, displayName, credential string) (*model.User, error)

	// Authenticate verifies the credential and returns the matching user.
	Authenticate(ctx context.Context, email, credential string) (*model.User, error)

	// ValidateCredential checks the credential against the scheme's rules
	// (length, format, etc.) without touching storage.
	ValidateCredential(credential string) error
}

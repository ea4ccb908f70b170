package port

import (
	"context"
	"errors"
)

// Identity is the authenticated principal bound to a connection or request.
type Identity struct {
	UserID string
	Name   string
	Role   string
}

// Verifier validates a bearer credential and resolves the identity behind
// it. Verification happens once per connection; the result is bound to the
// connection's server-side context for its lifetime.
type Verifier interface {
	Verify(ctx context.Context, credential string) (Identity, error)
}

// ErrInvalidCredential is returned for missing, malformed, expired or
// otherwise unverifiable credentials. Callers close the connection and do
// not retry.
var ErrInvalidCredential = errors.New("identity: invalid credential")

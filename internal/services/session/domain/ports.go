package domain

import "context"

// Upstream is the login surface of the telegram session
type Upstream interface {
	Status(ctx context.Context) (Status, error)
	RequestCode(ctx context.Context) error
	SignIn(ctx context.Context, code string) error
}

// ServicePort is the operator login contract used by the console and the API
type ServicePort interface {
	Status(ctx context.Context) (Status, error)
	// EnsureLogin requests a code when the session is not signed in
	EnsureLogin(ctx context.Context) (Login, error)
	// RequestCode always asks for a new code, subject to the cooldown
	RequestCode(ctx context.Context) (Login, error)
	Verify(ctx context.Context, code string) (Login, error)
	// Require fails with ErrNotSignedIn unless the session is signed in
	Require(ctx context.Context) error
}

package repokit

import (
	"context"
	"fmt"
	"time"
)

// DefaultGuardTimeout bounds MustGuard when ctx has no deadline of its own
const DefaultGuardTimeout = 5 * time.Second

// Guarder is satisfied by *store.Store
type Guarder interface {
	Guard(context.Context) error
}

// MustGuard panics unless every configured backend of g answers. Startup only
func MustGuard(ctx context.Context, g Guarder) {
	if g == nil {
		panic("repokit: nil store")
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, DefaultGuardTimeout)
		defer cancel()
	}
	if err := g.Guard(ctx); err != nil {
		panic(fmt.Errorf("store guard failed: %w", err))
	}
}

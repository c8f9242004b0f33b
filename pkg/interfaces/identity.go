package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// Identity describes the actor performing a mutating operation. The session
// layer that authenticates the actor lives in the host application; services
// only record the resolved identifier on revisions they create.
type Identity struct {
	ID          uuid.UUID
	DisplayName string
}

// IdentityResolver supplies the current actor for a request context.
type IdentityResolver interface {
	Resolve(ctx context.Context) (Identity, error)
}

// Authorizer gates mutating page operations. Implementations are expected to
// have already authenticated the actor; services call Allow before applying a
// state transition and abort on error.
type Authorizer interface {
	Allow(ctx context.Context, actor uuid.UUID, action string) error
}

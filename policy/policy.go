// Package policy decides whether the acting identity may read or write an
// entity instance.
//
// The single rule in play is author-or-read-only: reads are open, writes are
// reserved for the entity's owner. The Engine interface keeps the decision
// pluggable and lets decorators (auditing, caching) wrap any implementation.
package policy

import (
	"context"

	"github.com/getplume/plume/domain"
	"github.com/getplume/plume/identity"
)

// Owned is implemented by entities that record an owning identity. The owner
// is set at creation and immutable thereafter.
type Owned interface {
	OwnerID() uint
}

// Engine makes per-instance authorization decisions. Both methods return nil
// when the action is permitted, or one of the domain taxonomy errors.
type Engine interface {
	CanRead(ctx context.Context, actor *identity.User, resource any) error
	CanWrite(ctx context.Context, actor *identity.User, resource any) error
}

// AuthorOrReadOnly permits reads for any actor, including anonymous, and
// writes only for the owner. Anonymous write attempts fail with
// ErrUnauthenticated before any ownership check.
type AuthorOrReadOnly struct{}

func NewAuthorOrReadOnly() *AuthorOrReadOnly { return &AuthorOrReadOnly{} }

func (*AuthorOrReadOnly) CanRead(ctx context.Context, actor *identity.User, resource any) error {
	return nil
}

func (*AuthorOrReadOnly) CanWrite(ctx context.Context, actor *identity.User, resource any) error {
	if actor == nil {
		return domain.ErrUnauthenticated
	}
	owned, ok := resource.(Owned)
	if !ok {
		// Entities without an owner accessor are not writable through the
		// public API at all (e.g. Group).
		return domain.ErrForbidden
	}
	if owned.OwnerID() != actor.ID {
		return domain.ErrForbidden
	}
	return nil
}

var _ Engine = (*AuthorOrReadOnly)(nil)

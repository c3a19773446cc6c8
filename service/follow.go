package service

import (
	"context"
	"errors"

	"github.com/getplume/plume/domain"
	"github.com/getplume/plume/identity"
)

// FollowService creates and lists directed follow relationships. Follows are
// always created with the acting user as the follower, and listing is scoped
// to the actor's own outgoing follows.
type FollowService struct {
	follows domain.FollowRepository
	users   identity.Repository
}

func NewFollowService(follows domain.FollowRepository, users identity.Repository) *FollowService {
	return &FollowService{follows: follows, users: users}
}

// Create follows the user named by followingUsername. The checks run in a
// fixed order so error messages are deterministic: authentication, then
// self-follow, then target existence, then duplicates.
func (s *FollowService) Create(ctx context.Context, actor *identity.User, followingUsername string) (*domain.Follow, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if actor.Username == followingUsername {
		return nil, domain.NewValidationError("cannot follow yourself")
	}

	target, err := s.users.GetUserByUsername(ctx, followingUsername)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.NewValidationError("user %q not found", followingUsername)
		}
		return nil, err
	}

	exists, err := s.follows.FollowExists(ctx, actor.ID, target.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewValidationError("already following this user")
	}

	follow := &domain.Follow{
		UserID:      actor.ID,
		User:        actor.Username,
		FollowingID: target.ID,
		Following:   target.Username,
	}
	if err := s.follows.CreateFollow(ctx, follow); err != nil {
		// The store's unique constraint catches the race the pre-check
		// cannot; the loser sees the same validation error.
		if errors.Is(err, domain.ErrDuplicateFollow) {
			return nil, domain.NewValidationError("already following this user")
		}
		return nil, err
	}
	return follow, nil
}

// List returns the actor's outgoing follows, optionally filtered by a
// username substring on either side of the relationship. Anonymous callers
// are rejected; follows are never publicly readable.
func (s *FollowService) List(ctx context.Context, actor *identity.User, search string) ([]*domain.Follow, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	return s.follows.ListFollows(ctx, actor.ID, search)
}

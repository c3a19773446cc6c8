// Package service implements one resource service per entity. Each service
// composes the authorization policy with a repository: it loads and validates
// the target entity, asks the policy to approve the action, then lets the
// store perform the mutation.
package service

import (
	"context"
	"strings"
	"time"

	"github.com/getplume/plume/domain"
	"github.com/getplume/plume/identity"
	"github.com/getplume/plume/policy"
)

type PostService struct {
	posts  domain.PostRepository
	groups domain.GroupRepository
	policy policy.Engine
}

func NewPostService(posts domain.PostRepository, groups domain.GroupRepository, engine policy.Engine) *PostService {
	return &PostService{posts: posts, groups: groups, policy: engine}
}

type CreatePostInput struct {
	Text    string
	GroupID *uint
	Image   *string
}

// UpdatePostInput carries a partial update. Nil fields are left unchanged;
// ClearGroup removes the group reference. The image reference is fixed at
// creation.
type UpdatePostInput struct {
	Text       *string
	GroupID    *uint
	ClearGroup bool
}

// Create persists a new post. Author and publication date always come from
// the acting identity and the clock; client-supplied values are ignored.
func (s *PostService) Create(ctx context.Context, actor *identity.User, in CreatePostInput) (*domain.Post, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	if strings.TrimSpace(in.Text) == "" {
		return nil, domain.NewValidationError("text must not be empty")
	}
	if in.GroupID != nil {
		if _, err := s.groups.GetGroup(ctx, *in.GroupID); err != nil {
			return nil, err
		}
	}

	post := &domain.Post{
		Text:     in.Text,
		PubDate:  time.Now(),
		AuthorID: actor.ID,
		Author:   actor.Username,
		Image:    in.Image,
		GroupID:  in.GroupID,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, actor *identity.User, id uint) (*domain.Post, error) {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanRead(ctx, actor, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Update(ctx context.Context, actor *identity.User, id uint, in UpdatePostInput) (*domain.Post, error) {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanWrite(ctx, actor, post); err != nil {
		return nil, err
	}

	if in.Text != nil {
		if strings.TrimSpace(*in.Text) == "" {
			return nil, domain.NewValidationError("text must not be empty")
		}
		post.Text = *in.Text
	}
	switch {
	case in.ClearGroup:
		post.GroupID = nil
	case in.GroupID != nil:
		if _, err := s.groups.GetGroup(ctx, *in.GroupID); err != nil {
			return nil, err
		}
		post.GroupID = in.GroupID
	}

	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes the post and, atomically, its comments.
func (s *PostService) Delete(ctx context.Context, actor *identity.User, id uint) error {
	post, err := s.posts.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if err := s.policy.CanWrite(ctx, actor, post); err != nil {
		return err
	}
	return s.posts.DeletePost(ctx, id)
}

// List returns posts ordered newest-first, optionally filtered by group and
// a substring search over text, with optional offset/limit pagination.
func (s *PostService) List(ctx context.Context, actor *identity.User, q domain.PostQuery) ([]*domain.Post, int64, error) {
	return s.posts.ListPosts(ctx, q)
}

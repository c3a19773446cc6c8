package service

import (
	"context"
	"strings"
	"time"

	"github.com/getplume/plume/domain"
	"github.com/getplume/plume/identity"
	"github.com/getplume/plume/policy"
)

// CommentService operates on comments scoped under a parent post. The parent
// is always resolved from the request path; a client-supplied post reference
// in the body is never consulted.
type CommentService struct {
	comments domain.CommentRepository
	posts    domain.PostRepository
	policy   policy.Engine
}

func NewCommentService(comments domain.CommentRepository, posts domain.PostRepository, engine policy.Engine) *CommentService {
	return &CommentService{comments: comments, posts: posts, policy: engine}
}

func (s *CommentService) resolvePost(ctx context.Context, postID uint) (*domain.Post, error) {
	return s.posts.GetPost(ctx, postID)
}

// Create adds a comment to the post identified by postID. Author, parent
// post, and creation time are set here, never by the client.
func (s *CommentService) Create(ctx context.Context, actor *identity.User, postID uint, text string) (*domain.Comment, error) {
	if actor == nil {
		return nil, domain.ErrUnauthenticated
	}
	post, err := s.resolvePost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("text must not be empty")
	}

	comment := &domain.Comment{
		AuthorID: actor.ID,
		Author:   actor.Username,
		PostID:   post.ID,
		Text:     text,
		Created:  time.Now(),
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Get(ctx context.Context, actor *identity.User, postID, id uint) (*domain.Comment, error) {
	if _, err := s.resolvePost(ctx, postID); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetComment(ctx, postID, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanRead(ctx, actor, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Update(ctx context.Context, actor *identity.User, postID, id uint, text string) (*domain.Comment, error) {
	if _, err := s.resolvePost(ctx, postID); err != nil {
		return nil, err
	}
	comment, err := s.comments.GetComment(ctx, postID, id)
	if err != nil {
		return nil, err
	}
	if err := s.policy.CanWrite(ctx, actor, comment); err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return nil, domain.NewValidationError("text must not be empty")
	}

	comment.Text = text
	if err := s.comments.UpdateComment(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) Delete(ctx context.Context, actor *identity.User, postID, id uint) error {
	if _, err := s.resolvePost(ctx, postID); err != nil {
		return err
	}
	comment, err := s.comments.GetComment(ctx, postID, id)
	if err != nil {
		return err
	}
	if err := s.policy.CanWrite(ctx, actor, comment); err != nil {
		return err
	}
	return s.comments.DeleteComment(ctx, postID, id)
}

// List returns the post's comments, newest first.
func (s *CommentService) List(ctx context.Context, actor *identity.User, postID uint) ([]*domain.Comment, error) {
	if _, err := s.resolvePost(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListComments(ctx, postID)
}

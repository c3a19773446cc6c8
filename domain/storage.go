package domain

import "context"

// Storage is the composite interface a persistence backend must fulfill.
// See the pgorm package for the GORM-based implementation.
type Storage interface {
	PostRepository
	CommentRepository
	GroupRepository
	FollowRepository
}

// PostQuery narrows and pages a post listing. Nil pointers mean "not set";
// when both Limit and Offset are nil the full ordered set is returned.
type PostQuery struct {
	GroupID *uint
	Search  string
	Limit   *int
	Offset  *int
}

type PostRepository interface {
	CreatePost(ctx context.Context, p *Post) error
	GetPost(ctx context.Context, id uint) (*Post, error)
	UpdatePost(ctx context.Context, p *Post) error
	// DeletePost removes the post and its comments atomically.
	DeletePost(ctx context.Context, id uint) error
	// ListPosts returns posts ordered by pub_date desc, id desc, and the
	// total count before pagination.
	ListPosts(ctx context.Context, q PostQuery) ([]*Post, int64, error)
}

type CommentRepository interface {
	CreateComment(ctx context.Context, c *Comment) error
	GetComment(ctx context.Context, postID, id uint) (*Comment, error)
	UpdateComment(ctx context.Context, c *Comment) error
	DeleteComment(ctx context.Context, postID, id uint) error
	// ListComments returns the post's comments ordered by created desc,
	// id desc.
	ListComments(ctx context.Context, postID uint) ([]*Comment, error)
}

type GroupRepository interface {
	GetGroup(ctx context.Context, id uint) (*Group, error)
	// ListGroups returns all groups ordered by title, id.
	ListGroups(ctx context.Context) ([]*Group, error)
	CreateGroup(ctx context.Context, g *Group) error
	// DeleteGroup removes the group and clears the group reference on any
	// post pointing at it, atomically.
	DeleteGroup(ctx context.Context, id uint) error
}

type FollowRepository interface {
	// CreateFollow persists the pair. The backing store enforces the unique
	// (user, following) constraint; a duplicate insert reports
	// ErrDuplicateFollow even when two calls race.
	CreateFollow(ctx context.Context, f *Follow) error
	FollowExists(ctx context.Context, userID, followingID uint) (bool, error)
	// ListFollows returns the user's outgoing follows. A non-empty search
	// matches either side's username as a substring.
	ListFollows(ctx context.Context, userID uint, search string) ([]*Follow, error)
}

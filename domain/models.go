// Package domain defines the core entities of the Plume blogging platform and
// the storage contracts they are persisted through.
//
// Entities carry denormalized author usernames so responses can be assembled
// without touching the identity store a second time. Ownership is expressed
// through the OwnerID accessor consumed by the policy package.
package domain

import "time"

// Group is a community that posts can optionally belong to. Groups are
// managed by administrators; the API surface exposes them read-only.
type Group struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// Post is a publication authored by a user. Author and PubDate are fixed at
// creation. Image holds an opaque blob reference. GroupID is cleared, not
// cascaded, when the referenced group is deleted.
type Post struct {
	ID       uint      `json:"id"`
	Text     string    `json:"text"`
	PubDate  time.Time `json:"pub_date"`
	AuthorID uint      `json:"-"`
	Author   string    `json:"author"`
	Image    *string   `json:"image"`
	GroupID  *uint     `json:"group"`
}

// OwnerID implements policy.Owned.
func (p *Post) OwnerID() uint { return p.AuthorID }

// Comment belongs to exactly one post. The parent post is taken from the
// request path at creation and never from the client body. Deleting the post
// deletes its comments.
type Comment struct {
	ID       uint      `json:"id"`
	AuthorID uint      `json:"-"`
	Author   string    `json:"author"`
	PostID   uint      `json:"post"`
	Text     string    `json:"text"`
	Created  time.Time `json:"created"`
}

// OwnerID implements policy.Owned.
func (c *Comment) OwnerID() uint { return c.AuthorID }

// Follow is a directed subscription from UserID to FollowingID. The pair is
// unique and self-follow is forbidden. Usernames are carried for
// serialization and substring search.
type Follow struct {
	ID          uint   `json:"id"`
	UserID      uint   `json:"-"`
	User        string `json:"user"`
	FollowingID uint   `json:"-"`
	Following   string `json:"following"`
}

// OwnerID implements policy.Owned. The owning side of a follow is the
// follower.
func (f *Follow) OwnerID() uint { return f.UserID }

package pgorm

import (
	"time"

	"github.com/getplume/plume/audit"
	"github.com/getplume/plume/domain"
	"github.com/getplume/plume/identity"
)

type gormUser struct {
	ID        uint   `gorm:"primaryKey"`
	Username  string `gorm:"uniqueIndex"`
	CreatedAt time.Time
}

func (gormUser) TableName() string { return "users" }

func toCoreUser(gu *gormUser) *identity.User {
	if gu == nil {
		return nil
	}
	return &identity.User{
		ID:        gu.ID,
		Username:  gu.Username,
		CreatedAt: gu.CreatedAt,
	}
}

func fromCoreUser(u *identity.User) *gormUser {
	if u == nil {
		return nil
	}
	return &gormUser{
		ID:        u.ID,
		Username:  u.Username,
		CreatedAt: u.CreatedAt,
	}
}

type gormGroup struct {
	ID          uint   `gorm:"primaryKey"`
	Title       string `gorm:"index"`
	Slug        string `gorm:"uniqueIndex"`
	Description string
}

func (gormGroup) TableName() string { return "groups" }

func toCoreGroup(gg *gormGroup) *domain.Group {
	if gg == nil {
		return nil
	}
	return &domain.Group{
		ID:          gg.ID,
		Title:       gg.Title,
		Slug:        gg.Slug,
		Description: gg.Description,
	}
}

func fromCoreGroup(g *domain.Group) *gormGroup {
	if g == nil {
		return nil
	}
	return &gormGroup{
		ID:          g.ID,
		Title:       g.Title,
		Slug:        g.Slug,
		Description: g.Description,
	}
}

type gormPost struct {
	ID       uint      `gorm:"primaryKey"`
	Text     string    `gorm:"not null"`
	PubDate  time.Time `gorm:"index:idx_posts_pub_date_id"`
	AuthorID uint      `gorm:"index"`
	Author   gormUser  `gorm:"foreignKey:AuthorID"`
	Image    *string
	GroupID  *uint `gorm:"index"`
}

func (gormPost) TableName() string { return "posts" }

func toCorePost(gp *gormPost) *domain.Post {
	if gp == nil {
		return nil
	}
	return &domain.Post{
		ID:       gp.ID,
		Text:     gp.Text,
		PubDate:  gp.PubDate,
		AuthorID: gp.AuthorID,
		Author:   gp.Author.Username,
		Image:    gp.Image,
		GroupID:  gp.GroupID,
	}
}

func fromCorePost(p *domain.Post) *gormPost {
	if p == nil {
		return nil
	}
	return &gormPost{
		ID:       p.ID,
		Text:     p.Text,
		PubDate:  p.PubDate,
		AuthorID: p.AuthorID,
		Image:    p.Image,
		GroupID:  p.GroupID,
	}
}

type gormComment struct {
	ID       uint      `gorm:"primaryKey"`
	AuthorID uint      `gorm:"index"`
	Author   gormUser  `gorm:"foreignKey:AuthorID"`
	PostID   uint      `gorm:"index"`
	Text     string    `gorm:"not null"`
	Created  time.Time `gorm:"index"`
}

func (gormComment) TableName() string { return "comments" }

func toCoreComment(gc *gormComment) *domain.Comment {
	if gc == nil {
		return nil
	}
	return &domain.Comment{
		ID:       gc.ID,
		AuthorID: gc.AuthorID,
		Author:   gc.Author.Username,
		PostID:   gc.PostID,
		Text:     gc.Text,
		Created:  gc.Created,
	}
}

func fromCoreComment(c *domain.Comment) *gormComment {
	if c == nil {
		return nil
	}
	return &gormComment{
		ID:       c.ID,
		AuthorID: c.AuthorID,
		PostID:   c.PostID,
		Text:     c.Text,
		Created:  c.Created,
	}
}

type gormFollow struct {
	ID          uint `gorm:"primaryKey"`
	UserID      uint `gorm:"uniqueIndex:idx_user_following;check:chk_no_self_follow,user_id <> following_id"`
	FollowingID uint `gorm:"uniqueIndex:idx_user_following;index"`
}

func (gormFollow) TableName() string { return "follows" }

type gormAuditEvent struct {
	ID           string `gorm:"primaryKey"`
	Action       string `gorm:"index"`
	ActorID      uint   `gorm:"index"`
	ResourceKind string `gorm:"index"`
	ResourceID   uint
	Status       string `gorm:"index"`
	Message      string
	CreatedAt    time.Time `gorm:"index"`
}

func (gormAuditEvent) TableName() string { return "audit_events" }

func fromCoreAuditEvent(e *audit.Event) *gormAuditEvent {
	if e == nil {
		return nil
	}
	return &gormAuditEvent{
		ID:           e.ID,
		Action:       e.Action,
		ActorID:      e.ActorID,
		ResourceKind: e.ResourceKind,
		ResourceID:   e.ResourceID,
		Status:       e.Status,
		Message:      e.Message,
		CreatedAt:    e.CreatedAt,
	}
}

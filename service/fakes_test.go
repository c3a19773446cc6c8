package service

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/getplume/plume/domain"
	"github.com/getplume/plume/identity"
)

// memStore is an in-memory fake of every repository interface, for exercising
// services without a database.
type memStore struct {
	mu       sync.Mutex
	nextID   uint
	posts    map[uint]*domain.Post
	comments map[uint]*domain.Comment
	groups   map[uint]*domain.Group
	follows  map[uint]*domain.Follow
	users    map[uint]*identity.User
}

func newMemStore() *memStore {
	return &memStore{
		posts:    make(map[uint]*domain.Post),
		comments: make(map[uint]*domain.Comment),
		groups:   make(map[uint]*domain.Group),
		follows:  make(map[uint]*domain.Follow),
		users:    make(map[uint]*identity.User),
	}
}

func (m *memStore) id() uint {
	m.nextID++
	return m.nextID
}

func (m *memStore) addUser(username string) *identity.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	u := &identity.User{ID: m.id(), Username: username}
	m.users[u.ID] = u
	return u
}

func (m *memStore) addGroup(title, slug string) *domain.Group {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := &domain.Group{ID: m.id(), Title: title, Slug: slug}
	m.groups[g.ID] = g
	return g
}

// -- domain.PostRepository --

func (m *memStore) CreatePost(ctx context.Context, p *domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p.ID = m.id()
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *memStore) GetPost(ctx context.Context, id uint) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.posts[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *memStore) UpdatePost(ctx context.Context, p *domain.Post) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[p.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *p
	m.posts[p.ID] = &cp
	return nil
}

func (m *memStore) DeletePost(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.posts, id)
	for cid, c := range m.comments {
		if c.PostID == id {
			delete(m.comments, cid)
		}
	}
	return nil
}

func (m *memStore) ListPosts(ctx context.Context, q domain.PostQuery) ([]*domain.Post, int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Post
	for _, p := range m.posts {
		if q.GroupID != nil && (p.GroupID == nil || *p.GroupID != *q.GroupID) {
			continue
		}
		if q.Search != "" && !strings.Contains(p.Text, q.Search) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PubDate.Equal(out[j].PubDate) {
			return out[i].PubDate.After(out[j].PubDate)
		}
		return out[i].ID > out[j].ID
	})
	total := int64(len(out))
	if q.Offset != nil {
		if *q.Offset >= len(out) {
			out = nil
		} else {
			out = out[*q.Offset:]
		}
	}
	if q.Limit != nil && *q.Limit < len(out) {
		out = out[:*q.Limit]
	}
	return out, total, nil
}

// -- domain.CommentRepository --

func (m *memStore) CreateComment(ctx context.Context, c *domain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.ID = m.id()
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *memStore) GetComment(ctx context.Context, postID, id uint) (*domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok || c.PostID != postID {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memStore) UpdateComment(ctx context.Context, c *domain.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.comments[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	m.comments[c.ID] = &cp
	return nil
}

func (m *memStore) DeleteComment(ctx context.Context, postID, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.comments[id]
	if !ok || c.PostID != postID {
		return domain.ErrNotFound
	}
	delete(m.comments, id)
	return nil
}

func (m *memStore) ListComments(ctx context.Context, postID uint) ([]*domain.Comment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Comment
	for _, c := range m.comments {
		if c.PostID == postID {
			cp := *c
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Created.Equal(out[j].Created) {
			return out[i].Created.After(out[j].Created)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// -- domain.GroupRepository --

func (m *memStore) GetGroup(ctx context.Context, id uint) (*domain.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g, ok := m.groups[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *g
	return &cp, nil
}

func (m *memStore) ListGroups(ctx context.Context) ([]*domain.Group, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Group
	for _, g := range m.groups {
		cp := *g
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Title != out[j].Title {
			return out[i].Title < out[j].Title
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (m *memStore) CreateGroup(ctx context.Context, g *domain.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	g.ID = m.id()
	cp := *g
	m.groups[g.ID] = &cp
	return nil
}

func (m *memStore) DeleteGroup(ctx context.Context, id uint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.groups[id]; !ok {
		return domain.ErrNotFound
	}
	delete(m.groups, id)
	for _, p := range m.posts {
		if p.GroupID != nil && *p.GroupID == id {
			p.GroupID = nil
		}
	}
	return nil
}

// -- domain.FollowRepository --

func (m *memStore) CreateFollow(ctx context.Context, f *domain.Follow) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.follows {
		if existing.UserID == f.UserID && existing.FollowingID == f.FollowingID {
			return domain.ErrDuplicateFollow
		}
	}
	f.ID = m.id()
	cp := *f
	m.follows[f.ID] = &cp
	return nil
}

func (m *memStore) FollowExists(ctx context.Context, userID, followingID uint) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.follows {
		if f.UserID == userID && f.FollowingID == followingID {
			return true, nil
		}
	}
	return false, nil
}

func (m *memStore) ListFollows(ctx context.Context, userID uint, search string) ([]*domain.Follow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*domain.Follow
	for _, f := range m.follows {
		if f.UserID != userID {
			continue
		}
		if search != "" && !strings.Contains(f.User, search) && !strings.Contains(f.Following, search) {
			continue
		}
		cp := *f
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// -- identity.Repository --

func (m *memStore) GetUser(ctx context.Context, id uint) (*identity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *memStore) GetUserByUsername(ctx context.Context, username string) (*identity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *memStore) CreateUser(ctx context.Context, u *identity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u.ID = m.id()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

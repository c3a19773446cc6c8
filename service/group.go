package service

import (
	"context"

	"github.com/getplume/plume/domain"
	"github.com/getplume/plume/identity"
)

// GroupService exposes the read-only group surface. Groups are created and
// deleted through administrative tooling, not this API.
type GroupService struct {
	groups domain.GroupRepository
}

func NewGroupService(groups domain.GroupRepository) *GroupService {
	return &GroupService{groups: groups}
}

func (s *GroupService) Get(ctx context.Context, actor *identity.User, id uint) (*domain.Group, error) {
	return s.groups.GetGroup(ctx, id)
}

func (s *GroupService) List(ctx context.Context, actor *identity.User) ([]*domain.Group, error) {
	return s.groups.ListGroups(ctx)
}

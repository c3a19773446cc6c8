package pgorm

import (
	"context"

	"gorm.io/gorm"

	"github.com/getplume/plume/domain"
)

func (r *Repository) GetGroup(ctx context.Context, id uint) (*domain.Group, error) {
	var gg gormGroup
	if err := r.db.WithContext(ctx).First(&gg, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return toCoreGroup(&gg), nil
}

func (r *Repository) ListGroups(ctx context.Context) ([]*domain.Group, error) {
	var rows []gormGroup
	if err := r.db.WithContext(ctx).Order("title, id").Find(&rows).Error; err != nil {
		return nil, err
	}

	groups := make([]*domain.Group, len(rows))
	for i := range rows {
		groups[i] = toCoreGroup(&rows[i])
	}
	return groups, nil
}

func (r *Repository) CreateGroup(ctx context.Context, g *domain.Group) error {
	gg := fromCoreGroup(g)
	if err := r.db.WithContext(ctx).Create(gg).Error; err != nil {
		return err
	}
	g.ID = gg.ID
	return nil
}

// DeleteGroup clears the group reference on dependent posts instead of
// deleting them, then removes the group, in one transaction.
func (r *Repository) DeleteGroup(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&gormPost{}).Where("group_id = ?", id).Update("group_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&gormGroup{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

package pgorm

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/getplume/plume/domain"
)

func (r *Repository) CreatePost(ctx context.Context, p *domain.Post) error {
	gp := fromCorePost(p)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(gp).Error; err != nil {
		return err
	}
	p.ID = gp.ID
	return nil
}

func (r *Repository) GetPost(ctx context.Context, id uint) (*domain.Post, error) {
	var gp gormPost
	err := r.db.WithContext(ctx).Preload("Author").First(&gp, "posts.id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return toCorePost(&gp), nil
}

func (r *Repository) UpdatePost(ctx context.Context, p *domain.Post) error {
	gp := fromCorePost(p)
	res := r.db.WithContext(ctx).Omit(clause.Associations).Save(gp)
	if res.Error != nil {
		return res.Error
	}
	return nil
}

func (r *Repository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&gormComment{}, "post_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&gormPost{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (r *Repository) ListPosts(ctx context.Context, q domain.PostQuery) ([]*domain.Post, int64, error) {
	query := r.db.WithContext(ctx).Model(&gormPost{})
	if q.GroupID != nil {
		query = query.Where("group_id = ?", *q.GroupID)
	}
	if q.Search != "" {
		query = query.Where("text LIKE ?", "%"+q.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query = query.Preload("Author").Order("pub_date DESC, id DESC")
	if q.Offset != nil {
		query = query.Offset(*q.Offset)
	}
	if q.Limit != nil {
		query = query.Limit(*q.Limit)
	}

	var rows []gormPost
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	posts := make([]*domain.Post, len(rows))
	for i := range rows {
		posts[i] = toCorePost(&rows[i])
	}
	return posts, total, nil
}

package pgorm

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/getplume/plume/domain"
)

func (r *Repository) CreateComment(ctx context.Context, c *domain.Comment) error {
	gc := fromCoreComment(c)
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(gc).Error; err != nil {
		return err
	}
	c.ID = gc.ID
	return nil
}

func (r *Repository) GetComment(ctx context.Context, postID, id uint) (*domain.Comment, error) {
	var gc gormComment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("post_id = ?", postID).
		First(&gc, "comments.id = ?", id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return toCoreComment(&gc), nil
}

func (r *Repository) UpdateComment(ctx context.Context, c *domain.Comment) error {
	gc := fromCoreComment(c)
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(gc).Error
}

func (r *Repository) DeleteComment(ctx context.Context, postID, id uint) error {
	res := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Delete(&gormComment{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *Repository) ListComments(ctx context.Context, postID uint) ([]*domain.Comment, error) {
	var rows []gormComment
	err := r.db.WithContext(ctx).Preload("Author").
		Where("post_id = ?", postID).
		Order("created DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	comments := make([]*domain.Comment, len(rows))
	for i := range rows {
		comments[i] = toCoreComment(&rows[i])
	}
	return comments, nil
}

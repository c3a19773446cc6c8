package pgorm

import (
	"context"

	"gorm.io/gorm/clause"

	"github.com/getplume/plume/domain"
)

// CreateFollow inserts the pair under the unique (user_id, following_id)
// index. A conflicting insert affects zero rows, so the loser of a racing
// pair observes ErrDuplicateFollow rather than a driver-specific error.
func (r *Repository) CreateFollow(ctx context.Context, f *domain.Follow) error {
	gf := &gormFollow{UserID: f.UserID, FollowingID: f.FollowingID}

	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "following_id"}},
		DoNothing: true,
	}).Create(gf)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDuplicateFollow
	}

	f.ID = gf.ID
	return nil
}

func (r *Repository) FollowExists(ctx context.Context, userID, followingID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&gormFollow{}).
		Where("user_id = ? AND following_id = ?", userID, followingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// followRow carries the join of a follow with both usernames.
type followRow struct {
	ID            uint
	UserID        uint
	FollowingID   uint
	UserName      string
	FollowingName string
}

func (r *Repository) ListFollows(ctx context.Context, userID uint, search string) ([]*domain.Follow, error) {
	query := r.db.WithContext(ctx).Table("follows").
		Select("follows.id, follows.user_id, follows.following_id, u.username AS user_name, t.username AS following_name").
		Joins("JOIN users u ON u.id = follows.user_id").
		Joins("JOIN users t ON t.id = follows.following_id").
		Where("follows.user_id = ?", userID)
	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where("u.username LIKE ? OR t.username LIKE ?", pattern, pattern)
	}

	var rows []followRow
	if err := query.Order("follows.id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	follows := make([]*domain.Follow, len(rows))
	for i, row := range rows {
		follows[i] = &domain.Follow{
			ID:          row.ID,
			UserID:      row.UserID,
			User:        row.UserName,
			FollowingID: row.FollowingID,
			Following:   row.FollowingName,
		}
	}
	return follows, nil
}

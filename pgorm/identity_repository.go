package pgorm

import (
	"context"

	"github.com/getplume/plume/identity"
)

func (r *Repository) GetUser(ctx context.Context, id uint) (*identity.User, error) {
	var gu gormUser
	if err := r.db.WithContext(ctx).First(&gu, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return toCoreUser(&gu), nil
}

func (r *Repository) GetUserByUsername(ctx context.Context, username string) (*identity.User, error) {
	var gu gormUser
	if err := r.db.WithContext(ctx).First(&gu, "username = ?", username).Error; err != nil {
		return nil, notFound(err)
	}
	return toCoreUser(&gu), nil
}

func (r *Repository) CreateUser(ctx context.Context, u *identity.User) error {
	gu := fromCoreUser(u)
	if err := r.db.WithContext(ctx).Create(gu).Error; err != nil {
		return err
	}
	u.ID = gu.ID
	return nil
}

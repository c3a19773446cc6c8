// Package pgorm persists the Plume domain through GORM. It mirrors the
// domain repository interfaces onto row models with explicit to/from-core
// mapping, and registers dialector openers for sqlite, postgres, and mysql.
package pgorm

import (
	"errors"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/getplume/plume/audit"
	"github.com/getplume/plume/domain"
	"github.com/getplume/plume/identity"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) DB() *gorm.DB {
	return r.db
}

func init() {
	Register("sqlite", sqlite.Open)
	Register("postgres", postgres.Open)
	Register("mysql", mysql.Open)
}

func (r *Repository) AutoMigrate(models ...any) error {
	baseModels := []any{
		&gormUser{},
		&gormGroup{},
		&gormPost{},
		&gormComment{},
		&gormFollow{},
		&gormAuditEvent{},
	}
	allModels := append(baseModels, models...)
	return r.db.AutoMigrate(allModels...)
}

// notFound translates gorm's record-not-found into the domain taxonomy.
func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

var (
	_ domain.Storage      = (*Repository)(nil)
	_ identity.Repository = (*Repository)(nil)
	_ audit.Store         = (*Repository)(nil)
)

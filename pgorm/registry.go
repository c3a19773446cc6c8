package pgorm

import (
	"fmt"
	"sync"

	"gorm.io/gorm"
)

// DialectorOpener is an alias for a function that returns a gorm.Dialector for a given DSN.
type DialectorOpener = func(string) gorm.Dialector

var (
	registryMu sync.RWMutex
	providers  = make(map[string]DialectorOpener)
)

// Register adds a new storage provider to the registry.
func Register(name string, opener DialectorOpener) {
	registryMu.Lock()
	defer registryMu.Unlock()
	providers[name] = opener
}

// NewStorage opens a database by registered provider name, migrates the
// schema, and returns the repository.
func NewStorage(name string, dsn string, cfg *gorm.Config, models ...any) (*Repository, error) {
	registryMu.RLock()
	opener, ok := providers[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("pgorm: unknown storage provider %q", name)
	}

	if cfg == nil {
		cfg = &gorm.Config{}
	}

	db, err := gorm.Open(opener(dsn), cfg)
	if err != nil {
		return nil, err
	}

	repo := NewRepository(db)
	if err := repo.AutoMigrate(models...); err != nil {
		return nil, err
	}

	return repo, nil
}

package pgorm

import (
	"context"

	"github.com/getplume/plume/audit"
)

func (r *Repository) SaveEvent(ctx context.Context, e *audit.Event) error {
	return r.db.WithContext(ctx).Create(fromCoreAuditEvent(e)).Error
}

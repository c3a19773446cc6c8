// Package audit defines a minimal security event record for authorization
// decisions and the store contract it is persisted through.
package audit

import (
	"context"
	"time"
)

// Event records one authorization decision on a write attempt.
type Event struct {
	ID           string    `json:"id"`
	Action       string    `json:"action"`   // "read" or "write"
	ActorID      uint      `json:"actor_id"` // 0 for anonymous
	ResourceKind string    `json:"resource_kind"`
	ResourceID   uint      `json:"resource_id"`
	Status       string    `json:"status"` // "allowed", "denied", "error"
	Message      string    `json:"message"`
	CreatedAt    time.Time `json:"created_at"`
}

// Store persists audit events. Implementations must be safe for concurrent
// use; SaveEvent failures never block the decision being audited.
type Store interface {
	SaveEvent(ctx context.Context, e *Event) error
}

// Package identity provides actor types and request-identity resolution for
// the Plume API.
//
// Authentication itself (credential checks, token issuance) lives outside
// this service. Plume only resolves the credentials attached to a request to
// a stable local user, via the Provider interface. The default Provider
// verifies HMAC-signed bearer tokens issued by the external identity
// provider and looks the subject up in the local user mirror.
package identity

import (
	"context"
	"time"
)

// User is the local mirror of an externally managed identity. It exists so
// authorship and follow targets resolve by username without a round trip to
// the identity provider.
type User struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// Provider resolves request credentials to a user. A nil user with a nil
// error is never returned; callers represent the anonymous actor as a nil
// *User themselves.
type Provider interface {
	Resolve(ctx context.Context, token string) (*User, error)
}

// Repository is the storage contract for the local user mirror.
type Repository interface {
	GetUser(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	CreateUser(ctx context.Context, u *User) error
}

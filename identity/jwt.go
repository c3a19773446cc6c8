package identity

import (
	"context"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/getplume/plume/domain"
)

// JWTProvider verifies HMAC-signed bearer tokens and resolves their subject
// against the local user mirror. It performs verification only; issuing
// tokens is the external identity provider's job.
type JWTProvider struct {
	secret []byte
	users  Repository
}

func NewJWTProvider(secret string, users Repository) *JWTProvider {
	return &JWTProvider{secret: []byte(secret), users: users}
}

type claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (p *JWTProvider) Resolve(ctx context.Context, token string) (*User, error) {
	var c claims
	parsed, err := jwt.ParseWithClaims(token, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return p.secret, nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrUnauthenticated
	}

	user, err := p.users.GetUserByUsername(ctx, c.Username)
	if err != nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

var _ Provider = (*JWTProvider)(nil)

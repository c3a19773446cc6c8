// Package plume wires the default Plume stack together: GORM-backed
// repositories, the author-or-read-only policy, and one resource service per
// entity.
package plume

import (
	"time"

	"gorm.io/gorm"

	"github.com/getplume/plume/pgorm"
	"github.com/getplume/plume/policy"
	"github.com/getplume/plume/service"
)

// Services bundles the resource services built over one repository.
type Services struct {
	Posts    *service.PostService
	Comments *service.CommentService
	Groups   *service.GroupService
	Follows  *service.FollowService
}

// NewDefaultServices builds the services with the plain ownership policy.
func NewDefaultServices(db *gorm.DB) *Services {
	return NewServices(db, policy.NewAuthorOrReadOnly())
}

// NewServices builds the services over db with the given policy engine.
func NewServices(db *gorm.DB, engine policy.Engine) *Services {
	repo := pgorm.NewRepository(db)
	return &Services{
		Posts:    service.NewPostService(repo, repo, engine),
		Comments: service.NewCommentService(repo, repo, engine),
		Groups:   service.NewGroupService(repo),
		Follows:  service.NewFollowService(repo, repo),
	}
}

// NewAuditedEngine wraps the ownership policy with decision auditing backed
// by the repository, and an optional decision cache when ttl > 0.
func NewAuditedEngine(db *gorm.DB, cache policy.DecisionCache, ttl time.Duration) policy.Engine {
	repo := pgorm.NewRepository(db)
	var engine policy.Engine = policy.NewAuthorOrReadOnly()
	engine = policy.NewAuditEngine(engine, repo)
	if ttl > 0 {
		if cache == nil {
			cache = policy.NewMemoryCache()
		}
		engine = policy.NewCachingEngine(engine, cache, ttl)
	}
	return engine
}

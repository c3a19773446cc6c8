package policy

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/getplume/plume/audit"
	"github.com/getplume/plume/domain"
	"github.com/getplume/plume/identity"
)

// -- Audit decorator --

// AuditEngine records every write decision as an audit event. Events are
// written asynchronously so auditing never blocks or fails the decision.
type AuditEngine struct {
	next  Engine
	store audit.Store
}

func NewAuditEngine(next Engine, store audit.Store) *AuditEngine {
	return &AuditEngine{next: next, store: store}
}

func (e *AuditEngine) CanRead(ctx context.Context, actor *identity.User, resource any) error {
	return e.next.CanRead(ctx, actor, resource)
}

func (e *AuditEngine) CanWrite(ctx context.Context, actor *identity.User, resource any) error {
	err := e.next.CanWrite(ctx, actor, resource)

	var actorID uint
	if actor != nil {
		actorID = actor.ID
	}

	status := "allowed"
	message := "write permitted"
	switch {
	case errors.Is(err, domain.ErrForbidden), errors.Is(err, domain.ErrUnauthenticated):
		status = "denied"
		message = err.Error()
	case err != nil:
		status = "error"
		message = err.Error()
	}

	kind, id := describeResource(resource)

	go func() {
		e.store.SaveEvent(context.Background(), &audit.Event{
			ID:           uuid.NewString(),
			Action:       "write",
			ActorID:      actorID,
			ResourceKind: kind,
			ResourceID:   id,
			Status:       status,
			Message:      message,
			CreatedAt:    time.Now(),
		})
	}()

	return err
}

func describeResource(resource any) (string, uint) {
	switch r := resource.(type) {
	case *domain.Post:
		return "post", r.ID
	case *domain.Comment:
		return "comment", r.ID
	case *domain.Follow:
		return "follow", r.ID
	case *domain.Group:
		return "group", r.ID
	default:
		return fmt.Sprintf("%T", resource), 0
	}
}

var _ Engine = (*AuditEngine)(nil)

// -- Caching decorator --

// DecisionCache stores policy verdicts by key. The verdict is the name of
// the taxonomy error, or "" for an allowed decision.
type DecisionCache interface {
	Get(ctx context.Context, key string) (verdict string, ok bool)
	Set(ctx context.Context, key, verdict string, ttl time.Duration)
}

type cacheEntry struct {
	verdict   string
	expiresAt time.Time
}

// MemoryCache is an in-process DecisionCache.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

func NewMemoryCache() *MemoryCache {
	return &MemoryCache{entries: make(map[string]cacheEntry)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (string, bool) {
	c.mu.RLock()
	entry, found := c.entries[key]
	c.mu.RUnlock()
	if !found || time.Now().After(entry.expiresAt) {
		return "", false
	}
	return entry.verdict, true
}

func (c *MemoryCache) Set(ctx context.Context, key, verdict string, ttl time.Duration) {
	c.mu.Lock()
	c.entries[key] = cacheEntry{verdict: verdict, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()
}

// Invalidate clears the cache.
func (c *MemoryCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]cacheEntry)
}

// RedisCache shares policy verdicts between instances. Cache failures are
// treated as misses.
type RedisCache struct {
	client *redis.Client
}

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Get(ctx context.Context, key string) (string, bool) {
	val, err := c.client.Get(ctx, "policy:"+key).Result()
	if err != nil {
		return "", false
	}
	return val, true
}

func (c *RedisCache) Set(ctx context.Context, key, verdict string, ttl time.Duration) {
	c.client.Set(ctx, "policy:"+key, verdict, ttl)
}

// CachingEngine memoizes write decisions for a short TTL. Ownership never
// changes after creation, so a cached verdict only goes stale when the
// entity is deleted, and a stale denial is harmless.
type CachingEngine struct {
	next  Engine
	cache DecisionCache
	ttl   time.Duration
}

func NewCachingEngine(next Engine, cache DecisionCache, ttl time.Duration) *CachingEngine {
	return &CachingEngine{next: next, cache: cache, ttl: ttl}
}

func (e *CachingEngine) CanRead(ctx context.Context, actor *identity.User, resource any) error {
	return e.next.CanRead(ctx, actor, resource)
}

func (e *CachingEngine) CanWrite(ctx context.Context, actor *identity.User, resource any) error {
	key := cacheKey(actor, "write", resource)

	if verdict, ok := e.cache.Get(ctx, key); ok {
		return verdictError(verdict)
	}

	err := e.next.CanWrite(ctx, actor, resource)
	if err == nil || errors.Is(err, domain.ErrForbidden) || errors.Is(err, domain.ErrUnauthenticated) {
		e.cache.Set(ctx, key, errorVerdict(err), e.ttl)
	}
	return err
}

func cacheKey(actor *identity.User, action string, resource any) string {
	var actorID uint
	if actor != nil {
		actorID = actor.ID
	}
	kind, id := describeResource(resource)
	raw := fmt.Sprintf("%d:%s:%s:%d", actorID, action, kind, id)
	hash := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(hash[:])
}

func errorVerdict(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrUnauthenticated):
		return "unauthenticated"
	default:
		return "forbidden"
	}
}

func verdictError(verdict string) error {
	switch verdict {
	case "":
		return nil
	case "unauthenticated":
		return domain.ErrUnauthenticated
	default:
		return domain.ErrForbidden
	}
}

var _ Engine = (*CachingEngine)(nil)

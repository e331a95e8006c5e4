package repository

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/liliang-cn/claimwizard/internal/domain"
)

// MemorySessionStore keeps sessions in process memory with a sliding TTL
type MemorySessionStore struct {
	cache *cache.Cache
}

// NewMemorySessionStore creates a store whose entries expire after ttl of
// inactivity and are purged every cleanup. onEvict may be nil.
func NewMemorySessionStore(ttl, cleanup time.Duration, onEvict EvictFunc) *MemorySessionStore {
	c := cache.New(ttl, cleanup)
	if onEvict != nil {
		c.OnEvicted(func(id string, _ interface{}) {
			onEvict(id)
		})
	}
	return &MemorySessionStore{cache: c}
}

// Get returns a copy of the stored session
func (r *MemorySessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	if x, found := r.cache.Get(id); found {
		return cloneSession(x.(*domain.Session)), nil
	}
	return nil, nil
}

// Save stores a copy of session and refreshes its expiry
func (r *MemorySessionStore) Save(_ context.Context, session *domain.Session) error {
	session.UpdatedAt = time.Now()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = session.UpdatedAt
	}
	r.cache.Set(session.ID, cloneSession(session), cache.DefaultExpiration)
	return nil
}

// Delete removes a session. The eviction callback fires.
func (r *MemorySessionStore) Delete(_ context.Context, id string) error {
	r.cache.Delete(id)
	return nil
}

// Count returns the number of live sessions
func (r *MemorySessionStore) Count(_ context.Context) (int, error) {
	return r.cache.ItemCount(), nil
}

// Close drops all sessions
func (r *MemorySessionStore) Close() error {
	r.cache.Flush()
	return nil
}

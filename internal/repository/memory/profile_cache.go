package memory

import (
	"time"

	"ancestral-travel-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ProfileCache keeps recently read ancestry profiles in memory. Profiles are
// immutable once parsed, so cached reads stay valid until a newer upload for
// the same (user, session) pair invalidates the entry.
type ProfileCache struct {
	cache *cache.Cache
}

func NewProfileCache() *ProfileCache {
	// Default expiration of 1 hour, purge sweep every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &ProfileCache{
		cache: c,
	}
}

func key(userId, sessionId uuid.UUID) string {
	return userId.String() + ":" + sessionId.String()
}

func (p *ProfileCache) Get(userId, sessionId uuid.UUID) (*entity.AncestryUpload, bool) {
	if x, found := p.cache.Get(key(userId, sessionId)); found {
		return x.(*entity.AncestryUpload), true
	}
	return nil, false
}

func (p *ProfileCache) Save(upload *entity.AncestryUpload) {
	p.cache.Set(key(upload.UserId, upload.ChatSessionId), upload, cache.DefaultExpiration)
}

func (p *ProfileCache) Invalidate(userId, sessionId uuid.UUID) {
	p.cache.Delete(key(userId, sessionId))
}

package memory

import (
	"time"

	"driven-coach-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// ProgressRepository caches derived progress summaries per session. Entries
// are invalidated when a turn commits, so a short TTL only bounds staleness
// after missed invalidations.
type ProgressRepository struct {
	cache *cache.Cache
}

func NewProgressRepository() *ProgressRepository {
	c := cache.New(5*time.Minute, 10*time.Minute)
	return &ProgressRepository{
		cache: c,
	}
}

func (r *ProgressRepository) Save(summary *entity.ProgressSummary) {
	r.cache.Set(summary.SessionId, summary, cache.DefaultExpiration)
}

func (r *ProgressRepository) Get(sessionId string) (*entity.ProgressSummary, bool) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*entity.ProgressSummary), true
	}
	return nil, false
}

func (r *ProgressRepository) Invalidate(sessionId string) {
	r.cache.Delete(sessionId)
}

package memory

import (
	"strconv"
	"time"

	"driven-coach-be/internal/entity"

	"github.com/patrickmn/go-cache"
)

// SnapshotRepository holds immutable week snapshots. Reload replaces a
// snapshot wholesale; turns already holding the old pointer keep using it,
// so a mid-turn reload never mixes versions.
type SnapshotRepository struct {
	cache *cache.Cache
}

func NewSnapshotRepository() *SnapshotRepository {
	// Snapshots never expire on their own; they are replaced on reload.
	c := cache.New(cache.NoExpiration, 10*time.Minute)
	return &SnapshotRepository{
		cache: c,
	}
}

func (r *SnapshotRepository) Save(snapshot *entity.WeekSnapshot) {
	r.cache.Set(strconv.Itoa(snapshot.Week.Number), snapshot, cache.NoExpiration)
}

func (r *SnapshotRepository) Get(weekNumber int) (*entity.WeekSnapshot, bool) {
	if x, found := r.cache.Get(strconv.Itoa(weekNumber)); found {
		return x.(*entity.WeekSnapshot), true
	}
	return nil, false
}

func (r *SnapshotRepository) Delete(weekNumber int) {
	r.cache.Delete(strconv.Itoa(weekNumber))
}

func (r *SnapshotRepository) Flush() {
	r.cache.Flush()
}

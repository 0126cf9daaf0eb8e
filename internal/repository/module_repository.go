package repository

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"mindra_backend/internal/model"
	"mindra_backend/internal/util"

	"golang.org/x/sync/singleflight"
)

const catalogKey = "catalog"

// ModuleRepository serves the read-only module catalog. The catalog is cached
// for ttl (plus up to 10% jitter); a zero ttl disables caching.
type ModuleRepository struct {
	Store SnapshotStore
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rnd   *rand.Rand

	mu        sync.RWMutex
	modules   []model.LearningModule
	expiresAt time.Time
	// generation is bumped by Invalidate; a refill started under an older
	// generation returns its result but does not cache it.
	generation uint64
}

func NewModuleRepository(store SnapshotStore, ttl time.Duration) *ModuleRepository {
	return &ModuleRepository{
		Store: store,
		ttl:   ttl,
		clock: time.Now,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *ModuleRepository) List(ctx context.Context) ([]model.LearningModule, error) {
	now := r.clock()

	r.mu.RLock()
	if r.modules != nil && r.expiresAt.After(now) {
		modules := r.modules
		r.mu.RUnlock()
		return modules, nil
	}
	r.mu.RUnlock()

	result, err, _ := r.sf.Do(catalogKey, func() (interface{}, error) {
		r.mu.RLock()
		gen := r.generation
		r.mu.RUnlock()

		snap, err := r.Store.Read(ctx)
		if err != nil {
			return nil, err
		}
		if r.ttl > 0 {
			r.mu.Lock()
			if r.generation == gen {
				r.modules = snap.Modules
				r.expiresAt = now.Add(r.ttlWithJitter())
			}
			r.mu.Unlock()
		}
		return snap.Modules, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]model.LearningModule), nil
}

func (r *ModuleRepository) FindByID(ctx context.Context, id string) (*model.LearningModule, error) {
	modules, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range modules {
		if modules[i].ID == id {
			module := modules[i]
			return &module, nil
		}
	}
	return nil, util.ErrModuleNotFound
}

// ImportIfEmpty stores modules only when the catalog is empty and reports how
// many were written.
func (r *ModuleRepository) ImportIfEmpty(ctx context.Context, modules []model.LearningModule) (int, error) {
	var imported int
	err := r.Store.Update(ctx, func(snap *model.Snapshot) error {
		imported = 0
		if len(snap.Modules) > 0 {
			return nil
		}
		snap.Modules = append(snap.Modules, modules...)
		imported = len(modules)
		return nil
	})
	if err == nil {
		r.Invalidate()
	}
	return imported, err
}

func (r *ModuleRepository) Invalidate() {
	r.mu.Lock()
	r.generation++
	r.modules = nil
	r.expiresAt = time.Time{}
	r.mu.Unlock()
}

func (r *ModuleRepository) ttlWithJitter() time.Duration {
	jitterMax := int64(r.ttl) / 10
	return r.ttl + time.Duration(r.rnd.Int63n(jitterMax+1))
}

package repository

import (
	"context"
	"time"

	"mindra_backend/internal/model"
)

type ProgressRepository struct {
	Store SnapshotStore
}

func NewProgressRepository(store SnapshotStore) *ProgressRepository {
	return &ProgressRepository{Store: store}
}

// FindByUser returns the user's records, one per attempted module.
func (r *ProgressRepository) FindByUser(ctx context.Context, userID string) ([]model.UserProgress, error) {
	snap, err := r.Store.Read(ctx)
	if err != nil {
		return nil, err
	}
	progress := make([]model.UserProgress, 0)
	for _, p := range snap.Progress {
		if p.UserID == userID {
			progress = append(progress, p)
		}
	}
	return progress, nil
}

// Merge records an attempt in snap. lastAttempt always moves to now while
// bestScore only ever grows.
func (r *ProgressRepository) Merge(snap *model.Snapshot, userID, moduleID string, score int, now time.Time) model.UserProgress {
	for i := range snap.Progress {
		p := &snap.Progress[i]
		if p.UserID == userID && p.ModuleID == moduleID {
			p.LastAttempt = now
			if score > p.BestScore {
				p.BestScore = score
			}
			return *p
		}
	}

	record := model.UserProgress{
		ID:          model.GenerateID(model.ProgressIDPrefix),
		UserID:      userID,
		ModuleID:    moduleID,
		BestScore:   score,
		LastAttempt: now,
	}
	snap.Progress = append(snap.Progress, record)
	return record
}

package repository

import (
	"context"
	"time"

	"mindra_backend/internal/model"
)

type AnalyticsRepository struct {
	Store SnapshotStore
}

func NewAnalyticsRepository(store SnapshotStore) *AnalyticsRepository {
	return &AnalyticsRepository{Store: store}
}

func (r *AnalyticsRepository) List(ctx context.Context) ([]model.AnalyticsEvent, error) {
	snap, err := r.Store.Read(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Analytics, nil
}

// Append adds a module attempt event to snap. Events are never merged.
func (r *AnalyticsRepository) Append(snap *model.Snapshot, userID, moduleID string, score int, now time.Time) model.AnalyticsEvent {
	event := model.AnalyticsEvent{
		ID:        model.GenerateID(model.EventIDPrefix),
		UserID:    userID,
		Event:     model.EventModuleAttempt,
		ModuleID:  moduleID,
		Score:     score,
		Timestamp: now,
	}
	snap.Analytics = append(snap.Analytics, event)
	return event
}

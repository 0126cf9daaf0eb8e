package repository

import (
	"context"
	"errors"
	"sync"
	"time"

	"mindra_backend/internal/model"
	"mindra_backend/internal/util"

	"gorm.io/gorm"
)

// DBStore keeps the snapshot in one row of the snapshots table. Updates are
// compare-and-swap on the version column and retried on conflict.
type DBStore struct {
	DB         *gorm.DB
	key        string
	maxRetries int
	mu         sync.Mutex
}

func NewDBStore(db *gorm.DB, key string, maxRetries int) *DBStore {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &DBStore{DB: db, key: key, maxRetries: maxRetries}
}

func (s *DBStore) Read(ctx context.Context) (*model.Snapshot, error) {
	snap, _, err := s.load(ctx)
	return snap, err
}

func (s *DBStore) Write(ctx context.Context, snap *model.Snapshot) error {
	return s.Update(ctx, func(current *model.Snapshot) error {
		*current = *snap
		return nil
	})
}

func (s *DBStore) Update(ctx context.Context, fn func(*model.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		snap, version, err := s.load(ctx)
		if err != nil {
			return err
		}
		if err := fn(snap); err != nil {
			return err
		}
		data, err := encodeSnapshot(snap)
		if err != nil {
			return err
		}

		ok, err := s.swap(ctx, version, data)
		if err != nil {
			return err
		}
		if ok {
			return nil
		}
	}
	return util.ErrStoreConflict
}

// load returns the snapshot and its version; version 0 means no row exists yet.
func (s *DBStore) load(ctx context.Context) (*model.Snapshot, int64, error) {
	var doc model.SnapshotDocument
	err := s.DB.WithContext(ctx).Where("name = ?", s.key).First(&doc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NewSnapshot(), 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	snap, err := decodeSnapshot(doc.Data)
	if err != nil {
		return nil, 0, err
	}
	return snap, doc.Version, nil
}

func (s *DBStore) swap(ctx context.Context, version int64, data []byte) (bool, error) {
	db := s.DB.WithContext(ctx)
	now := time.Now()

	if version == 0 {
		err := db.Create(&model.SnapshotDocument{
			Name:      s.key,
			Data:      data,
			Version:   1,
			UpdatedAt: now,
		}).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return false, nil
		}
		return err == nil, err
	}

	res := db.Model(&model.SnapshotDocument{}).
		Where("name = ? AND version = ?", s.key, version).
		Updates(map[string]interface{}{
			"data":       data,
			"version":    version + 1,
			"updated_at": now,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

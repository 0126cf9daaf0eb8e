package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"mindra_backend/internal/model"
)

// SnapshotStore persists the whole snapshot as one document.
//
// Update runs fn against a freshly read snapshot and writes the result back
// atomically with respect to other Update calls. fn may run more than once when
// a backend detects a concurrent write, so it must not keep state between runs.
// An error from fn aborts the write and is returned unchanged.
type SnapshotStore interface {
	Read(ctx context.Context) (*model.Snapshot, error)
	Write(ctx context.Context, snap *model.Snapshot) error
	Update(ctx context.Context, fn func(*model.Snapshot) error) error
}

func decodeSnapshot(data []byte) (*model.Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return model.NewSnapshot(), nil
	}
	var snap model.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap.Normalize(), nil
}

func encodeSnapshot(snap *model.Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap.Normalize(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"mindra_backend/internal/model"
)

// exerciseStore runs the behaviour every backend must share.
func exerciseStore(t *testing.T, store SnapshotStore) {
	t.Helper()
	ctx := context.Background()

	snap, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("read empty store: %v", err)
	}
	if snap.Users == nil || snap.Modules == nil || snap.Progress == nil || snap.Analytics == nil {
		t.Fatalf("expected empty collections, got %+v", snap)
	}

	snap.Users = append(snap.Users, model.User{ID: "user_1", Email: "a@example.com"})
	if err := store.Write(ctx, snap); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := store.Read(ctx)
	if err != nil {
		t.Fatalf("read after write: %v", err)
	}
	if len(got.Users) != 1 || got.Users[0].ID != "user_1" {
		t.Fatalf("unexpected users after write: %+v", got.Users)
	}

	sentinel := errors.New("abort")
	err = store.Update(ctx, func(s *model.Snapshot) error {
		s.Users = nil
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected fn error to be returned, got %v", err)
	}
	got, _ = store.Read(ctx)
	if len(got.Users) != 1 {
		t.Fatalf("aborted update must not write, users=%d", len(got.Users))
	}

	const writers = 20
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs <- store.Update(ctx, func(s *model.Snapshot) error {
				s.Analytics = append(s.Analytics, model.AnalyticsEvent{ID: fmt.Sprintf("evt_%d", i)})
				return nil
			})
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("concurrent update: %v", err)
		}
	}

	got, err = store.Read(ctx)
	if err != nil {
		t.Fatalf("read after concurrent updates: %v", err)
	}
	if len(got.Analytics) != writers {
		t.Fatalf("lost updates: expected %d events, got %d", writers, len(got.Analytics))
	}
}

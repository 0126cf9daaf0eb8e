package repository

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"mindra_backend/internal/model"
	"mindra_backend/internal/util"
)

func newFileStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "db.json"))
}

type countingStore struct {
	SnapshotStore
	reads atomic.Int32
}

func (s *countingStore) Read(ctx context.Context) (*model.Snapshot, error) {
	s.reads.Add(1)
	return s.SnapshotStore.Read(ctx)
}

func TestUserRepositoryRejectsDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newFileStore(t))

	if err := repo.Create(ctx, &model.User{ID: "user_1", Email: "ada@example.com"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, &model.User{ID: "user_2", Email: "ADA@example.com "})
	if !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}

	count, _ := repo.Count(ctx)
	if count != 1 {
		t.Fatalf("expected 1 user, got %d", count)
	}

	user, err := repo.FindByEmail(ctx, "Ada@Example.com")
	if err != nil || user.ID != "user_1" {
		t.Fatalf("lookup by email: %+v %v", user, err)
	}
	if _, err := repo.FindByID(ctx, "user_404"); !errors.Is(err, util.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserRepositoryCreateIfEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(newFileStore(t))

	created, err := repo.CreateIfEmpty(ctx, []model.User{{ID: "user_a"}, {ID: "user_b"}})
	if err != nil || !created {
		t.Fatalf("first seed: created=%v err=%v", created, err)
	}
	created, err = repo.CreateIfEmpty(ctx, []model.User{{ID: "user_c"}})
	if err != nil || created {
		t.Fatalf("second seed: created=%v err=%v", created, err)
	}
	if count, _ := repo.Count(ctx); count != 2 {
		t.Fatalf("expected 2 users, got %d", count)
	}
}

func TestProgressMergeKeepsBestScore(t *testing.T) {
	repo := NewProgressRepository(nil)
	snap := model.NewSnapshot()
	t1 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	t3 := t2.Add(time.Hour)

	first := repo.Merge(snap, "user_1", "mod_1", 40, t1)
	repo.Merge(snap, "user_1", "mod_1", 70, t2)
	last := repo.Merge(snap, "user_1", "mod_1", 30, t3)

	if len(snap.Progress) != 1 {
		t.Fatalf("expected one record, got %d", len(snap.Progress))
	}
	if last.ID != first.ID {
		t.Fatalf("record id changed: %s -> %s", first.ID, last.ID)
	}
	if last.BestScore != 70 || !last.LastAttempt.Equal(t3) {
		t.Fatalf("unexpected record %+v", last)
	}

	repo.Merge(snap, "user_1", "mod_2", 10, t3)
	repo.Merge(snap, "user_2", "mod_1", 90, t3)
	if len(snap.Progress) != 3 {
		t.Fatalf("expected 3 records, got %d", len(snap.Progress))
	}
}

func TestAnalyticsAppendNeverMerges(t *testing.T) {
	repo := NewAnalyticsRepository(nil)
	snap := model.NewSnapshot()
	now := time.Now()

	a := repo.Append(snap, "user_1", "mod_1", 50, now)
	b := repo.Append(snap, "user_1", "mod_1", 50, now)
	if len(snap.Analytics) != 2 || a.ID == b.ID {
		t.Fatalf("expected two distinct events, got %+v", snap.Analytics)
	}
	if a.Event != model.EventModuleAttempt {
		t.Fatalf("unexpected event kind %q", a.Event)
	}
}

func TestModuleRepositoryCachesCatalog(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{SnapshotStore: newFileStore(t)}
	repo := NewModuleRepository(store, time.Minute)

	if _, err := repo.ImportIfEmpty(ctx, []model.LearningModule{{ID: "mod_1", Title: "One"}}); err != nil {
		t.Fatalf("import: %v", err)
	}

	for i := 0; i < 5; i++ {
		if _, err := repo.FindByID(ctx, "mod_1"); err != nil {
			t.Fatalf("find: %v", err)
		}
	}
	if reads := store.reads.Load(); reads != 1 {
		t.Fatalf("expected one store read, got %d", reads)
	}

	if _, err := repo.FindByID(ctx, "mod_404"); !errors.Is(err, util.ErrModuleNotFound) {
		t.Fatalf("expected ErrModuleNotFound, got %v", err)
	}

	repo.clock = func() time.Time { return time.Now().Add(2 * time.Minute) }
	if _, err := repo.List(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if reads := store.reads.Load(); reads != 2 {
		t.Fatalf("expected refresh after expiry, got %d reads", reads)
	}
}

func TestModuleRepositoryImportIfEmpty(t *testing.T) {
	ctx := context.Background()
	repo := NewModuleRepository(newFileStore(t), 0)

	n, err := repo.ImportIfEmpty(ctx, []model.LearningModule{{ID: "mod_1"}, {ID: "mod_2"}})
	if err != nil || n != 2 {
		t.Fatalf("first import: n=%d err=%v", n, err)
	}
	n, err = repo.ImportIfEmpty(ctx, []model.LearningModule{{ID: "mod_3"}})
	if err != nil || n != 0 {
		t.Fatalf("second import: n=%d err=%v", n, err)
	}

	modules, _ := repo.List(ctx)
	if len(modules) != 2 {
		t.Fatalf("expected 2 modules, got %d", len(modules))
	}
}

// gatedStore parks the first Read after it has loaded its snapshot.
type gatedStore struct {
	SnapshotStore
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func (s *gatedStore) Read(ctx context.Context) (*model.Snapshot, error) {
	snap, err := s.SnapshotStore.Read(ctx)
	s.once.Do(func() {
		close(s.started)
		<-s.release
	})
	return snap, err
}

func TestModuleRepositoryInvalidateDropsInFlightRefill(t *testing.T) {
	ctx := context.Background()
	store := &gatedStore{
		SnapshotStore: newFileStore(t),
		started:       make(chan struct{}),
		release:       make(chan struct{}),
	}
	repo := NewModuleRepository(store, time.Minute)

	done := make(chan []model.LearningModule)
	go func() {
		modules, err := repo.List(ctx)
		if err != nil {
			t.Errorf("list: %v", err)
		}
		done <- modules
	}()
	<-store.started

	if _, err := repo.ImportIfEmpty(ctx, []model.LearningModule{{ID: "mod_1"}}); err != nil {
		t.Fatalf("import: %v", err)
	}
	close(store.release)

	if stale := <-done; len(stale) != 0 {
		t.Fatalf("in-flight read should have seen the empty catalog, got %d modules", len(stale))
	}

	modules, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(modules) != 1 || modules[0].ID != "mod_1" {
		t.Fatalf("stale catalog cached after invalidation: %+v", modules)
	}
}

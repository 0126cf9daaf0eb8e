package repository

import (
	"context"
	"testing"

	"mindra_backend/internal/model"
	"mindra_backend/internal/util"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisStore(t *testing.T) {
	mr, client := newTestRedis(t)
	exerciseStore(t, NewRedisStore(client, "mindra:db", 50))
	if !mr.Exists("mindra:db") {
		t.Fatalf("expected snapshot key to be set")
	}
}

func TestRedisStoreRetriesWhenKeyChanges(t *testing.T) {
	mr, client := newTestRedis(t)
	ctx := context.Background()
	store := NewRedisStore(client, "mindra:db", 3)

	runs := 0
	err := store.Update(ctx, func(s *model.Snapshot) error {
		runs++
		if runs == 1 {
			mr.Set("mindra:db", `{"users":[{"id":"user_other"}]}`)
		}
		s.Users = append(s.Users, model.User{ID: "user_mine"})
		return nil
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if runs != 2 {
		t.Fatalf("expected one retry, ran %d times", runs)
	}

	snap, _ := store.Read(ctx)
	if len(snap.Users) != 2 {
		t.Fatalf("expected both users, got %+v", snap.Users)
	}
}

func TestRedisStoreGivesUpAfterRetries(t *testing.T) {
	mr, client := newTestRedis(t)
	store := NewRedisStore(client, "mindra:db", 2)

	err := store.Update(context.Background(), func(s *model.Snapshot) error {
		mr.Set("mindra:db", "{}")
		return nil
	})
	if err != util.ErrStoreConflict {
		t.Fatalf("expected ErrStoreConflict, got %v", err)
	}
}

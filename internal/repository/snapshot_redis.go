package repository

import (
	"context"
	"errors"

	"mindra_backend/internal/model"
	"mindra_backend/internal/util"

	"github.com/go-redis/redis/v8"
)

// RedisStore keeps the snapshot under a single key and updates it inside a
// WATCH/MULTI transaction.
type RedisStore struct {
	client     *redis.Client
	key        string
	maxRetries int
}

func NewRedisStore(client *redis.Client, key string, maxRetries int) *RedisStore {
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &RedisStore{client: client, key: key, maxRetries: maxRetries}
}

func (s *RedisStore) Read(ctx context.Context) (*model.Snapshot, error) {
	return s.get(ctx, s.client)
}

func (s *RedisStore) Write(ctx context.Context, snap *model.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key, data, 0).Err()
}

func (s *RedisStore) Update(ctx context.Context, fn func(*model.Snapshot) error) error {
	txf := func(tx *redis.Tx) error {
		snap, err := s.get(ctx, tx)
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
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, s.key, data, 0)
			return nil
		})
		return err
	}

	for attempt := 0; attempt < s.maxRetries; attempt++ {
		err := s.client.Watch(ctx, txf, s.key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return util.ErrStoreConflict
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func (s *RedisStore) get(ctx context.Context, c stringGetter) (*model.Snapshot, error) {
	data, err := c.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.NewSnapshot(), nil
	}
	if err != nil {
		return nil, err
	}
	return decodeSnapshot(data)
}

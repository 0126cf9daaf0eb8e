package repository

import (
	"bytes"
	"context"
	"io"
	"sync"

	"mindra_backend/internal/model"

	"github.com/minio/minio-go/v7"
)

// ObjectStore keeps the snapshot as one JSON object in a bucket. Object
// storage has no conditional overwrite here, so updates are serialised in
// process and a single writer process is assumed.
type ObjectStore struct {
	client *minio.Client
	bucket string
	key    string
	mu     sync.Mutex
}

func NewObjectStore(client *minio.Client, bucket, key string) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, key: key + ".json"}
}

func (s *ObjectStore) Read(ctx context.Context) (*model.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.get(ctx)
}

func (s *ObjectStore) Write(ctx context.Context, snap *model.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(ctx, snap)
}

func (s *ObjectStore) Update(ctx context.Context, fn func(*model.Snapshot) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.get(ctx)
	if err != nil {
		return err
	}
	if err := fn(snap); err != nil {
		return err
	}
	return s.put(ctx, snap)
}

func (s *ObjectStore) get(ctx context.Context) (*model.Snapshot, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, s.key, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return model.NewSnapshot(), nil
		}
		return nil, err
	}
	return decodeSnapshot(data)
}

func (s *ObjectStore) put(ctx context.Context, snap *model.Snapshot) error {
	data, err := encodeSnapshot(snap)
	if err != nil {
		return err
	}
	_, err = s.client.PutObject(ctx, s.bucket, s.key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	return err
}

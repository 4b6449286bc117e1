package repository

import (
	"context"
	"sync"
)

type MemoryBlobStore struct {
	blobs sync.Map
}

var _ BlobStore = (*MemoryBlobStore)(nil)

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{}
}

func (s *MemoryBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, ok := s.blobs.Load(key)
	if !ok {
		return nil, ErrBlobNotFound
	}
	return clone(val.([]byte)), nil
}

func (s *MemoryBlobStore) Put(ctx context.Context, key string, data []byte) error {
	s.blobs.Store(key, clone(data))
	return nil
}

func (s *MemoryBlobStore) Delete(ctx context.Context, key string) error {
	s.blobs.Delete(key)
	return nil
}

func clone(b []byte) []byte {
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

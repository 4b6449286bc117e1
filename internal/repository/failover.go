package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Domenick1991/railbooking/internal/logging"
	"github.com/rs/zerolog"
)

const recheckInterval = time.Minute

// FailoverBlobStore writes through the primary store and switches to the
// fallback when the primary errors. The primary is retried once a minute;
// on recovery the keys written during the outage are copied back to it.
type FailoverBlobStore struct {
	primary   BlobStore
	fallback  BlobStore
	logger    *zerolog.Logger
	isDown    atomic.Bool
	lastCheck atomic.Int64
	dirty     sync.Map // keys written to the fallback while the primary was down
	now       func() time.Time
}

var _ BlobStore = (*FailoverBlobStore)(nil)

func NewFailoverBlobStore(primary, fallback BlobStore, logger *zerolog.Logger) *FailoverBlobStore {
	logger = logging.OrNop(logger)
	return &FailoverBlobStore{
		primary:  primary,
		fallback: fallback,
		logger:   logger,
		now:      time.Now,
	}
}

func (r *FailoverBlobStore) markDown(err error, op string) {
	r.logger.Error().Err(err).Str("op", op).Msg("Primary blob store failed, falling back to memory")
	r.isDown.Store(true)
	r.lastCheck.Store(r.now().UnixNano())
}

func (r *FailoverBlobStore) shouldRetry() bool {
	return r.now().Sub(time.Unix(0, r.lastCheck.Load())) > recheckInterval
}

func (r *FailoverBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	if !r.isDown.Load() {
		data, err := r.primary.Get(ctx, key)
		if err == nil || errors.Is(err, ErrBlobNotFound) {
			return data, err
		}
		r.markDown(err, "get")
	} else if r.shouldRetry() {
		_, dirty := r.dirty.Load(key)
		data, err := r.primary.Get(ctx, key)
		if err == nil || errors.Is(err, ErrBlobNotFound) {
			if r.resync(ctx) && !dirty {
				return data, err
			}
		} else {
			r.lastCheck.Store(r.now().UnixNano())
		}
	}

	return r.fallback.Get(ctx, key)
}

func (r *FailoverBlobStore) Put(ctx context.Context, key string, data []byte) error {
	if !r.isDown.Load() || r.shouldRetry() {
		err := r.primary.Put(ctx, key, data)
		if err == nil {
			r.dirty.Delete(key)
			r.resync(ctx)
			return nil
		}
		r.markDown(err, "put")
	}

	r.dirty.Store(key, struct{}{})
	return r.fallback.Put(ctx, key, data)
}

func (r *FailoverBlobStore) Delete(ctx context.Context, key string) error {
	if !r.isDown.Load() || r.shouldRetry() {
		err := r.primary.Delete(ctx, key)
		if err == nil {
			r.dirty.Delete(key)
			r.resync(ctx)
			return r.fallback.Delete(ctx, key)
		}
		r.markDown(err, "delete")
	}

	r.dirty.Store(key, struct{}{})
	return r.fallback.Delete(ctx, key)
}

// resync clears the down flag and copies every key changed during the
// outage back to the primary. It reports whether the primary is usable.
func (r *FailoverBlobStore) resync(ctx context.Context) bool {
	if !r.isDown.CompareAndSwap(true, false) {
		return !r.isDown.Load()
	}
	r.logger.Info().Msg("Primary blob store recovered")

	var syncErr error
	synced := 0
	r.dirty.Range(func(k, _ any) bool {
		key := k.(string)
		data, err := r.fallback.Get(ctx, key)
		switch {
		case errors.Is(err, ErrBlobNotFound):
			err = r.primary.Delete(ctx, key)
		case err == nil:
			err = r.primary.Put(ctx, key, data)
		}
		if err != nil {
			syncErr = err
			return false
		}
		r.dirty.Delete(key)
		synced++
		return true
	})

	if syncErr != nil {
		r.markDown(syncErr, "resync")
		return false
	}
	if synced > 0 {
		r.logger.Info().Int("keys", synced).Msg("Copied fallback writes back to primary")
	}
	return true
}

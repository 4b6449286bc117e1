package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys under which application state is persisted.
const (
	KeyBookings      = "irctc-bookings"
	KeyNotifications = "irctc-notifications"
	KeySearchParams  = "irctc-search-params"
	KeyDarkMode      = "irctc-dark-mode"
)

// AllKeys lists every key the application writes.
var AllKeys = []string{KeyBookings, KeyNotifications, KeySearchParams, KeyDarkMode}

var ErrBlobNotFound = errors.New("blob not found")

// BlobStore keeps opaque JSON documents under fixed keys.
type BlobStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
	Delete(ctx context.Context, key string) error
}

type LoadStatus int

const (
	LoadOK LoadStatus = iota
	LoadMissing
	LoadCorrupt
)

func (s LoadStatus) String() string {
	switch s {
	case LoadOK:
		return "ok"
	case LoadMissing:
		return "missing"
	case LoadCorrupt:
		return "corrupt"
	default:
		return fmt.Sprintf("LoadStatus(%d)", int(s))
	}
}

// LoadJSON reads key into v. A missing key and an unparsable document are
// reported through the status; err is only set when the backend itself fails.
func LoadJSON(ctx context.Context, store BlobStore, key string, v any) (LoadStatus, error) {
	data, err := store.Get(ctx, key)
	if errors.Is(err, ErrBlobNotFound) {
		return LoadMissing, nil
	}
	if err != nil {
		return LoadMissing, fmt.Errorf("load %s: %w", key, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return LoadCorrupt, nil
	}
	return LoadOK, nil
}

func SaveJSON(ctx context.Context, store BlobStore, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Put(ctx, key, data); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

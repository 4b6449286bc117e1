package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const pgSchema = `CREATE TABLE IF NOT EXISTS kv_blobs (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

type PGBlobStore struct {
	db *pgxpool.Pool
}

var _ BlobStore = (*PGBlobStore)(nil)

func NewPGBlobStore(db *pgxpool.Pool) *PGBlobStore {
	return &PGBlobStore{db: db}
}

func (s *PGBlobStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.Exec(ctx, pgSchema)
	return err
}

func (s *PGBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.QueryRow(ctx, `SELECT value FROM kv_blobs WHERE key=$1`, key).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBlobNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (s *PGBlobStore) Put(ctx context.Context, key string, data []byte) error {
	_, err := s.db.Exec(ctx, `INSERT INTO kv_blobs (key, value, updated_at) VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`, key, data)
	return err
}

func (s *PGBlobStore) Delete(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, `DELETE FROM kv_blobs WHERE key=$1`, key)
	return err
}

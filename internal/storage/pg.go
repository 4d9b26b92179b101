package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/singhdivyam772/workflow-builder-assignment/internal/model"
)

// PgStorage keeps slots in a PostgreSQL key/value table.
type PgStorage struct {
	pool *pgxpool.Pool
	key  string
}

// Connect opens a pool for databaseURL and checks it answers.
func Connect(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return pool, nil
}

func NewPgStorage(pool *pgxpool.Pool, key string) *PgStorage {
	return &PgStorage{pool: pool, key: normalizeKey(key)}
}

// EnsureTable creates the slot table if it doesn't exist.
func (s *PgStorage) EnsureTable(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS workflow_slots (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL DEFAULT '[]',
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

func (s *PgStorage) Load(ctx context.Context) ([]model.Task, error) {
	var raw []byte
	err := s.pool.QueryRow(ctx, `SELECT value FROM workflow_slots WHERE key = $1`, s.key).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return []model.Task{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load slot %s: %w", s.key, err)
	}
	return Decode(raw)
}

func (s *PgStorage) Save(ctx context.Context, tasks []model.Task) error {
	b, err := Encode(tasks)
	if err != nil {
		return err
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO workflow_slots (key, value, updated_at)
		VALUES ($1, $2::jsonb, $3)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		s.key, string(b), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save slot %s: %w", s.key, err)
	}
	return nil
}

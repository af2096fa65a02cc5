package export

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore persists artifacts in a Postgres table so that multiple
// instances can serve downloads for each other's scrape runs.
type PostgresStore struct {
	pool *pgxpool.Pool
	ttl  time.Duration
}

const artifactSchema = `
CREATE TABLE IF NOT EXISTS csv_artifacts (
    id         TEXT PRIMARY KEY,
    content    TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// ConnectPostgres establishes a connection pool and ensures the artifact
// table exists.
func ConnectPostgres(ctx context.Context, databaseURL string, ttl time.Duration) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	if _, err := pool.Exec(ctx, artifactSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ensure artifact table: %w", err)
	}
	return &PostgresStore{pool: pool, ttl: ttl}, nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Save inserts the CSV under a fresh ID and returns it.
func (s *PostgresStore) Save(ctx context.Context, csvText string) (string, error) {
	id := NewID()
	_, err := s.pool.Exec(ctx,
		`INSERT INTO csv_artifacts (id, content) VALUES ($1, $2)`,
		id, csvText,
	)
	if err != nil {
		return "", fmt.Errorf("failed to save artifact: %w", err)
	}
	return id, nil
}

// Load retrieves a stored artifact by ID.
func (s *PostgresStore) Load(ctx context.Context, id string) (string, error) {
	if !ValidID(id) {
		return "", ErrInvalidID
	}
	var content string
	err := s.pool.QueryRow(ctx,
		`SELECT content FROM csv_artifacts WHERE id = $1`, id,
	).Scan(&content)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to load artifact: %w", err)
	}
	return content, nil
}

// StartSweeper runs Sweep on the given interval until ctx is cancelled.
func (s *PostgresStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := s.Sweep(ctx); err != nil {
					log.Printf("[export] artifact sweep failed: %v", err)
				}
			}
		}
	}()
}

// Sweep deletes artifacts older than the store TTL.
func (s *PostgresStore) Sweep(ctx context.Context) error {
	if s.ttl <= 0 {
		return nil
	}
	_, err := s.pool.Exec(ctx,
		`DELETE FROM csv_artifacts WHERE created_at < NOW() - $1::interval`,
		fmt.Sprintf("%d seconds", int(s.ttl.Seconds())),
	)
	if err != nil {
		return fmt.Errorf("failed to sweep artifacts: %w", err)
	}
	return nil
}

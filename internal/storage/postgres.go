package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"carrental-backend/internal/logger"
)

const DefaultTable = "documents"

// PostgresStore keeps each document as one row of a name/body table
type PostgresStore struct {
	db    *sql.DB
	table string
}

func NewPostgresStore(db *sql.DB, table string) *PostgresStore {
	if table == "" {
		table = DefaultTable
	}
	return &PostgresStore{db: db, table: pq.QuoteIdentifier(table)}
}

// EnsureSchema creates the document table if it is missing
func (p *PostgresStore) EnsureSchema(ctx context.Context) error {
	query := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
		name TEXT PRIMARY KEY,
		body TEXT NOT NULL,
		updated_on TIMESTAMPTZ NOT NULL
	)`, p.table)
	if _, err := p.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to create document table: %w", err)
	}
	return nil
}

func (p *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	logger.StorageCall(TypePostgres, "get", key)
	query := fmt.Sprintf(`SELECT body FROM %s WHERE name = $1`, p.table)

	var body string
	err := p.db.QueryRowContext(ctx, query, key).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		logger.StorageResult(TypePostgres, "get", key, 0, nil)
		return nil, ErrKeyNotFound
	}
	logger.StorageResult(TypePostgres, "get", key, len(body), err)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return []byte(body), nil
}

func (p *PostgresStore) Put(ctx context.Context, key string, data []byte) error {
	logger.StorageCall(TypePostgres, "put", key)
	query := fmt.Sprintf(`INSERT INTO %s (name, body, updated_on) VALUES ($1, $2, $3)
	          ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_on = EXCLUDED.updated_on`, p.table)

	_, err := p.db.ExecContext(ctx, query, key, string(data), time.Now())
	logger.StorageResult(TypePostgres, "put", key, len(data), err)
	if err != nil {
		return fmt.Errorf("failed to write document: %w", err)
	}
	return nil
}

package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"gpupricewatcher/internal/scraper"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS product_records (
	captured_at TIMESTAMP NOT NULL,
	seller      TEXT NOT NULL,
	name        TEXT NOT NULL,
	price       INTEGER NOT NULL,
	in_stock    BOOLEAN NOT NULL,
	is_deal     BOOLEAN NOT NULL,
	url         TEXT NOT NULL,
	CONSTRAINT product_records_uniq UNIQUE (captured_at, seller, name, price, in_stock, is_deal, url)
)`

// PostgresStore implements Store on a Postgres pool
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore connects to the given DSN and ensures the schema exists
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, err
	}

	return &PostgresStore{pool: pool}, nil
}

// Insert appends one record; duplicates are ignored
func (s *PostgresStore) Insert(ctx context.Context, rec scraper.Record) error {
	_, err := s.pool.Exec(ctx,
		"INSERT INTO product_records ("+columns+") VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT DO NOTHING",
		rec.CapturedAt,
		rec.Seller,
		rec.Name,
		rec.Price,
		rec.InStock,
		rec.IsDeal,
		rec.URL,
	)
	return err
}

// Close releases the pool
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

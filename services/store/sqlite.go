package store

import (
	"context"
	"database/sql"

	_ "github.com/mattn/go-sqlite3"

	"gpupricewatcher/internal/scraper"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS product_records (
	captured_at TEXT NOT NULL,
	seller      TEXT NOT NULL,
	name        TEXT NOT NULL,
	price       INTEGER NOT NULL,
	in_stock    INTEGER NOT NULL,
	is_deal     INTEGER NOT NULL,
	url         TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS product_records_uniq
	ON product_records (captured_at, seller, name, price, in_stock, is_deal, url);
`

// timeLayout matches the second-precision capture timestamps
const timeLayout = "2006-01-02 15:04:05"

// SQLiteStore implements Store on a local SQLite file
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) the database at path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLiteStore{db: db}, nil
}

// Insert appends one record; duplicates are ignored
func (s *SQLiteStore) Insert(ctx context.Context, rec scraper.Record) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO product_records ("+columns+") VALUES (?, ?, ?, ?, ?, ?, ?)",
		rec.CapturedAt.Format(timeLayout),
		rec.Seller,
		rec.Name,
		rec.Price,
		rec.InStock,
		rec.IsDeal,
		rec.URL,
	)
	return err
}

// Count returns the number of stored records
func (s *SQLiteStore) Count(ctx context.Context) (int, error) {
	var n int
	err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM product_records").Scan(&n)
	return n, err
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

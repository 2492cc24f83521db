package store

import (
	"context"

	"gpupricewatcher/internal/scraper"
)

// Store persists captured records. Inserting a record that already
// exists under the store's uniqueness rule is a silent no-op, not an
// error; implementations only return errors for genuine failures.
type Store interface {
	// Insert appends one record, ignoring duplicates
	Insert(ctx context.Context, rec scraper.Record) error

	// Close releases the underlying connection
	Close() error
}

// The uniqueness rule covers the full field tuple, so re-running the
// pipeline over unchanged pages inserts nothing new.
const columns = "captured_at, seller, name, price, in_stock, is_deal, url"

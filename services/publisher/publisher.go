package publisher

import (
	"context"

	"gpupricewatcher/internal/scraper"
)

// Publisher fans captured records out to downstream consumers
type Publisher interface {
	// Publish emits one normalized record
	Publish(ctx context.Context, rec scraper.Record) error

	// Close closes the publisher connection
	Close() error
}

package scraper

import (
	"context"
	"time"

	"gpupricewatcher/internal/source"
)

// Scraper runs the fetch, extract and normalize stages for one source
type Scraper struct {
	fetcher    *Fetcher
	normalizer *Normalizer
}

// New creates a scraper with the given transport timeout and deal threshold
func New(fetchTimeout time.Duration, threshold int) *Scraper {
	return &Scraper{
		fetcher:    NewFetcher(fetchTimeout),
		normalizer: NewNormalizer(threshold),
	}
}

// Scrape produces the canonical record for one configured source.
// Any stage failure is returned as-is and scoped to this source.
func (s *Scraper) Scrape(ctx context.Context, src source.Source) (*Record, error) {
	doc, err := s.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		return nil, err
	}

	frags := Extract(doc, src)

	return s.normalizer.Normalize(frags, src)
}

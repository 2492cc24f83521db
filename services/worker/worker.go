package worker

import (
	"context"
	"errors"
	"sync"

	"gpupricewatcher/internal/scraper"
	"gpupricewatcher/internal/source"
	"gpupricewatcher/logger"
	"gpupricewatcher/services/publisher"
	"gpupricewatcher/services/store"
)

var (
	// ErrEmptyRegistry signals a run with nothing to scrape
	ErrEmptyRegistry = errors.New("source registry is empty")

	// ErrNoRecords signals a run where every source failed
	ErrNoRecords = errors.New("no records were produced")
)

// Scraper produces the canonical record for one source
type Scraper interface {
	Scrape(ctx context.Context, src source.Source) (*scraper.Record, error)
}

// Notifier dispatches a deal summary for a run's records
type Notifier interface {
	Notify(records []scraper.Record) error
}

// Worker drives the pipeline: scrape every source, then feed the
// collected records to the notifier, the store and (optionally) the
// publisher.
type Worker struct {
	sources   []source.Source
	scraper   Scraper
	store     store.Store
	notifier  Notifier
	publisher publisher.Publisher
	log       *logger.Logger
}

// New creates a worker. publisher may be nil.
func New(
	sources []source.Source,
	s Scraper,
	st store.Store,
	n Notifier,
	pub publisher.Publisher,
	log *logger.Logger,
) *Worker {
	return &Worker{
		sources:   sources,
		scraper:   s,
		store:     st,
		notifier:  n,
		publisher: pub,
		log:       log,
	}
}

// Run executes one full pipeline pass and returns the collected records.
// An empty registry or a run with zero records terminates before any
// side effect. Notification and persistence run independently off the
// same record list; only a notify failure is returned as terminal.
func (w *Worker) Run(ctx context.Context) ([]scraper.Record, error) {
	if len(w.sources) == 0 {
		return nil, ErrEmptyRegistry
	}

	records := w.collect(ctx)
	if len(records) == 0 {
		return nil, ErrNoRecords
	}

	var wg sync.WaitGroup
	var notifyErr error

	wg.Add(1)
	go func() {
		defer wg.Done()
		notifyErr = w.notifier.Notify(records)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		w.persist(ctx, records)
	}()

	if w.publisher != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.publish(ctx, records)
		}()
	}

	wg.Wait()

	if notifyErr != nil {
		return records, notifyErr
	}

	w.log.Info().Int("records", len(records)).Msg("run completed")
	return records, nil
}

// collect scrapes all sources in parallel. Sources are independent
// units of work; one failure never blocks another.
func (w *Worker) collect(ctx context.Context) []scraper.Record {
	var mu sync.Mutex
	var records []scraper.Record
	var wg sync.WaitGroup

	for _, src := range w.sources {
		wg.Add(1)
		go func(src source.Source) {
			defer wg.Done()

			rec, err := w.scraper.Scrape(ctx, src)
			if err != nil {
				w.log.Warn().Err(err).Str("source", src.ID).Str("url", src.URL).Msg("source skipped")
				return
			}

			w.log.Info().Str("source", src.ID).Str("url", src.URL).Msg("source scraped")

			mu.Lock()
			records = append(records, *rec)
			mu.Unlock()
		}(src)
	}

	wg.Wait()
	return records
}

// persist appends every record independently; a failing record is
// logged and never aborts the batch
func (w *Worker) persist(ctx context.Context, records []scraper.Record) {
	for _, rec := range records {
		if err := w.store.Insert(ctx, rec); err != nil {
			w.log.Warn().Err(err).Str("seller", rec.Seller).Str("url", rec.URL).Msg("record not stored")
		}
	}
}

func (w *Worker) publish(ctx context.Context, records []scraper.Record) {
	for _, rec := range records {
		if err := w.publisher.Publish(ctx, rec); err != nil {
			w.log.Warn().Err(err).Str("seller", rec.Seller).Str("url", rec.URL).Msg("record not published")
		}
	}
}

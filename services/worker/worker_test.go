package worker

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"gpupricewatcher/internal/scraper"
	"gpupricewatcher/internal/source"
	"gpupricewatcher/logger"
)

// mockScraper returns a canned record or error per source id
type mockScraper struct {
	records map[string]*scraper.Record
	errs    map[string]error
}

var _ Scraper = (*mockScraper)(nil)

func (m *mockScraper) Scrape(ctx context.Context, src source.Source) (*scraper.Record, error) {
	if err, ok := m.errs[src.ID]; ok {
		return nil, err
	}
	if rec, ok := m.records[src.ID]; ok {
		return rec, nil
	}
	return nil, errors.New("unknown source")
}

type mockStore struct {
	mu        sync.Mutex
	inserted  []scraper.Record
	insertErr error
}

func (m *mockStore) Insert(ctx context.Context, rec scraper.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.insertErr != nil {
		return m.insertErr
	}
	m.inserted = append(m.inserted, rec)
	return nil
}

func (m *mockStore) Close() error { return nil }

type mockNotifier struct {
	mu        sync.Mutex
	notified  [][]scraper.Record
	notifyErr error
}

var _ Notifier = (*mockNotifier)(nil)

func (m *mockNotifier) Notify(records []scraper.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notified = append(m.notified, records)
	return m.notifyErr
}

func testSources(ids ...string) []source.Source {
	var sources []source.Source
	for _, id := range ids {
		sources = append(sources, source.Source{
			ID:          id,
			URL:         "https://www." + id + ".com/p",
			NameMarker:  "title",
			PriceMarker: "price",
			StockMarker: "buy",
		})
	}
	return sources
}

func testLog() *logger.Logger {
	return logger.ForComponent("worker-test")
}

func TestRunEmptyRegistry(t *testing.T) {
	st := &mockStore{}
	n := &mockNotifier{}
	w := New(nil, &mockScraper{}, st, n, nil, testLog())

	_, err := w.Run(context.Background())
	assert.ErrorIs(t, err, ErrEmptyRegistry)

	// neither downstream phase may run
	assert.Empty(t, st.inserted)
	assert.Empty(t, n.notified)
}

func TestRunNoRecords(t *testing.T) {
	st := &mockStore{}
	n := &mockNotifier{}
	s := &mockScraper{errs: map[string]error{
		"shop1": errors.New("status 503"),
		"shop2": errors.New("name not found"),
	}}
	w := New(testSources("shop1", "shop2"), s, st, n, nil, testLog())

	_, err := w.Run(context.Background())
	assert.ErrorIs(t, err, ErrNoRecords)
	assert.Empty(t, st.inserted)
	assert.Empty(t, n.notified)
}

func TestRunIsolatesFailingSource(t *testing.T) {
	st := &mockStore{}
	n := &mockNotifier{}
	s := &mockScraper{
		records: map[string]*scraper.Record{
			"shop1": {Seller: "shop1", Name: "CARD A", Price: 1700, InStock: true, IsDeal: true},
			"shop3": {Seller: "shop3", Name: "CARD B", Price: 2000, InStock: true},
		},
		errs: map[string]error{
			"shop2": errors.New("connection refused"),
		},
	}
	w := New(testSources("shop1", "shop2", "shop3"), s, st, n, nil, testLog())

	records, err := w.Run(context.Background())
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	sellers := []string{records[0].Seller, records[1].Seller}
	assert.ElementsMatch(t, []string{"shop1", "shop3"}, sellers)

	assert.Len(t, st.inserted, 2)
	assert.Len(t, n.notified, 1)
}

func TestRunStoreFailureIsNotTerminal(t *testing.T) {
	st := &mockStore{insertErr: errors.New("storage unavailable")}
	n := &mockNotifier{}
	s := &mockScraper{records: map[string]*scraper.Record{
		"shop1": {Seller: "shop1", Name: "CARD", Price: 1700},
	}}
	w := New(testSources("shop1"), s, st, n, nil, testLog())

	records, err := w.Run(context.Background())
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Len(t, n.notified, 1, "notification still runs when the store fails")
}

func TestRunNotifyFailureIsTerminal(t *testing.T) {
	st := &mockStore{}
	n := &mockNotifier{notifyErr: errors.New("authentication failed")}
	s := &mockScraper{records: map[string]*scraper.Record{
		"shop1": {Seller: "shop1", Name: "CARD", Price: 1700, InStock: true, IsDeal: true},
	}}
	w := New(testSources("shop1"), s, st, n, nil, testLog())

	records, err := w.Run(context.Background())
	assert.Error(t, err)
	assert.Len(t, records, 1)
	assert.Len(t, st.inserted, 1, "persistence still runs when notification fails")
}

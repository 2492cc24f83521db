package notifier

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gpupricewatcher/internal/scraper"
	"gpupricewatcher/logger"
	errs "gpupricewatcher/pkg/errors"
)

type mockDispatcher struct {
	subjects []string
	bodies   []string
	sendErr  error
}

var _ Dispatcher = (*mockDispatcher)(nil)

func (m *mockDispatcher) Send(subject, body string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.subjects = append(m.subjects, subject)
	m.bodies = append(m.bodies, body)
	return nil
}

type mockSeenCache struct {
	data map[string][]byte
}

func newMockSeenCache() *mockSeenCache {
	return &mockSeenCache{data: make(map[string][]byte)}
}

func (m *mockSeenCache) Get(key string) ([]byte, error) {
	if v, ok := m.data[key]; ok {
		return v, nil
	}
	return nil, errors.New("cache miss")
}

func (m *mockSeenCache) Set(key string, value []byte, ttl time.Duration) error {
	m.data[key] = value
	return nil
}

func testLog() *logger.Logger {
	return logger.ForComponent("notifier-test")
}

func TestNotifyFiltersDeals(t *testing.T) {
	dispatcher := &mockDispatcher{}
	n := New(dispatcher, nil, 0, testLog())

	records := []scraper.Record{
		{Seller: "coolmod", Price: 1700, InStock: true, IsDeal: true, URL: "https://www.coolmod.com/p"},
		{Seller: "pccomponentes", Price: 2000, InStock: true, IsDeal: false, URL: "https://www.pccomponentes.com/p"},
	}

	assert.NoError(t, n.Notify(records))
	assert.Len(t, dispatcher.bodies, 1)

	body := dispatcher.bodies[0]
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	assert.Len(t, lines, 1)
	assert.Contains(t, body, "coolmod")
	assert.Contains(t, body, "1700")
	assert.NotContains(t, body, "pccomponentes")
	assert.Equal(t, "Price Alert", dispatcher.subjects[0])
}

func TestNotifySkipsOutOfStockDeals(t *testing.T) {
	dispatcher := &mockDispatcher{}
	n := New(dispatcher, nil, 0, testLog())

	records := []scraper.Record{
		{Seller: "coolmod", Price: 1700, InStock: false, IsDeal: true, URL: "https://www.coolmod.com/p"},
	}

	assert.NoError(t, n.Notify(records))
	assert.Empty(t, dispatcher.bodies, "out-of-stock deals must not be dispatched")
}

func TestNotifyNoDealsSendsNothing(t *testing.T) {
	dispatcher := &mockDispatcher{}
	n := New(dispatcher, nil, 0, testLog())

	assert.NoError(t, n.Notify(nil))
	assert.Empty(t, dispatcher.bodies)
}

func TestNotifyDispatchFailure(t *testing.T) {
	dispatcher := &mockDispatcher{sendErr: errors.New("connection refused")}
	n := New(dispatcher, nil, 0, testLog())

	err := n.Notify([]scraper.Record{
		{Seller: "coolmod", Price: 1700, InStock: true, IsDeal: true},
	})

	assert.Error(t, err)

	var perr *errs.PipelineError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, errs.ErrorTypeNotify, perr.Type)
	assert.True(t, perr.IsTerminal())
}

func TestNotifySeenCacheSuppressesRepeats(t *testing.T) {
	dispatcher := &mockDispatcher{}
	seen := newMockSeenCache()
	n := New(dispatcher, seen, time.Hour, testLog())

	records := []scraper.Record{
		{Seller: "coolmod", Name: "ASUS RTX 3090 TURBO", Price: 1700, InStock: true, IsDeal: true},
	}

	assert.NoError(t, n.Notify(records))
	assert.Len(t, dispatcher.bodies, 1)

	// The same deal on a second run stays quiet
	assert.NoError(t, n.Notify(records))
	assert.Len(t, dispatcher.bodies, 1)

	// A different price alerts again
	records[0].Price = 1650
	assert.NoError(t, n.Notify(records))
	assert.Len(t, dispatcher.bodies, 2)
}

func TestComposeMessage(t *testing.T) {
	deals := []scraper.Record{
		{Seller: "coolmod", Price: 1700, URL: "https://www.coolmod.com/a"},
		{Seller: "xtremmedia", Price: 1750, URL: "https://www.xtremmedia.com/b"},
	}

	body := ComposeMessage(deals)
	assert.Equal(t,
		"The item sold by coolmod is on sale for 1700 euros @ https://www.coolmod.com/a\n"+
			"The item sold by xtremmedia is on sale for 1750 euros @ https://www.xtremmedia.com/b\n",
		body)
}

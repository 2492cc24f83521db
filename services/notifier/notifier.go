package notifier

import (
	"time"

	"gpupricewatcher/internal/scraper"
	"gpupricewatcher/logger"
	errs "gpupricewatcher/pkg/errors"
	"gpupricewatcher/services/cache"
)

// Subject line used for every alert
const subject = "Price Alert"

// Dispatcher hands a composed alert to the outside world
type Dispatcher interface {
	Send(subject, body string) error
}

// Notifier filters in-stock deals out of a run's records and dispatches
// one summary message when there is anything to report.
type Notifier struct {
	dispatcher Dispatcher
	seen       cache.Cache
	seenTTL    time.Duration
	log        *logger.Logger
}

// New creates a notifier. seen may be nil, in which case repeated runs
// re-alert on the same deal.
func New(dispatcher Dispatcher, seen cache.Cache, seenTTL time.Duration, log *logger.Logger) *Notifier {
	return &Notifier{
		dispatcher: dispatcher,
		seen:       seen,
		seenTTL:    seenTTL,
		log:        log,
	}
}

// Notify sends one message covering all in-stock deals in the record
// list. An empty deal set sends nothing and is not a failure; a dispatch
// failure is returned untouched for the run to treat as terminal.
func (n *Notifier) Notify(records []scraper.Record) error {
	deals := FilterDeals(records)
	deals = n.dropSeen(deals)

	if len(deals) == 0 {
		n.log.Debug().Msg("no deals to notify")
		return nil
	}

	body := ComposeMessage(deals)
	if err := n.dispatcher.Send(subject, body); err != nil {
		return errs.NewNotify("failed to dispatch deal alert", err)
	}

	n.markSeen(deals)
	n.log.Info().Int("deals", len(deals)).Msg("deal alert dispatched")
	return nil
}

// FilterDeals keeps the records that are both in stock and at or below
// the deal threshold
func FilterDeals(records []scraper.Record) []scraper.Record {
	var deals []scraper.Record
	for _, rec := range records {
		if rec.InStock && rec.IsDeal {
			deals = append(deals, rec)
		}
	}
	return deals
}

func (n *Notifier) dropSeen(deals []scraper.Record) []scraper.Record {
	if n.seen == nil {
		return deals
	}

	var fresh []scraper.Record
	for _, d := range deals {
		if _, err := n.seen.Get(cache.DealKey(d.Seller, d.Name, d.Price)); err == nil {
			continue
		}
		fresh = append(fresh, d)
	}
	return fresh
}

func (n *Notifier) markSeen(deals []scraper.Record) {
	if n.seen == nil {
		return
	}

	for _, d := range deals {
		key := cache.DealKey(d.Seller, d.Name, d.Price)
		if err := n.seen.Set(key, []byte("1"), n.seenTTL); err != nil {
			n.log.Warn().Err(err).Str("key", key).Msg("failed to mark deal as seen")
		}
	}
}

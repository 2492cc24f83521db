package scraper

import "time"

// Record is the canonical unit of captured product data. Once built it is
// read-only; the notifier, store and publisher all consume the same value.
type Record struct {
	CapturedAt time.Time `json:"captured_at"`
	Seller     string    `json:"seller"`
	Name       string    `json:"name"`
	Price      int       `json:"price"`
	InStock    bool      `json:"in_stock"`
	IsDeal     bool      `json:"is_deal"`
	URL        string    `json:"url"`

	// PriceKnown distinguishes a parsed zero price from a missing one.
	// It is not persisted; IsDeal keeps the documented threshold behavior
	// either way.
	PriceKnown bool `json:"-"`
}

// Fragment is one raw text fragment located by a marker, or its explicit
// absence when the marker did not match.
type Fragment struct {
	Text  string
	Found bool
}

// Fragments is the raw per-fetch fragment set handed to the normalizer
type Fragments struct {
	Name  Fragment
	Price Fragment
	Stock Fragment
}

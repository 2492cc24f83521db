package source

import "fmt"

// Source describes one configured retailer product page and the class
// markers used to locate its fields. Markers are HTML class-attribute
// values and may contain several class tokens.
type Source struct {
	ID                  string `yaml:"id"`
	URL                 string `yaml:"url"`
	NameMarker          string `yaml:"name_marker"`
	PriceMarker         string `yaml:"price_marker"`
	StockMarker         string `yaml:"stock_marker"`
	FallbackPriceMarker string `yaml:"fallback_price_marker,omitempty"`
}

// Validate checks that the source carries everything the pipeline needs
func (s Source) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("source has no id")
	}
	if s.URL == "" {
		return fmt.Errorf("source %q has no url", s.ID)
	}
	if s.NameMarker == "" || s.PriceMarker == "" || s.StockMarker == "" {
		return fmt.Errorf("source %q is missing a marker", s.ID)
	}
	return nil
}

package notifier

import (
	"fmt"
	"strings"

	"gpupricewatcher/internal/scraper"
)

// ComposeMessage builds the multi-line alert body, one line per deal
func ComposeMessage(deals []scraper.Record) string {
	var b strings.Builder
	for _, d := range deals {
		fmt.Fprintf(&b, "The item sold by %s is on sale for %d euros @ %s\n", d.Seller, d.Price, d.URL)
	}
	return b.String()
}

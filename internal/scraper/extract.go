package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"gpupricewatcher/internal/source"
)

// Extract locates the name, price and stock fields in a fetched page
// using the source's markers. Each marker independently matches the
// first element carrying its classes, in document order, or is reported
// absent. The fallback price marker is tried only when the primary one
// misses. A non-matching marker is never an error.
func Extract(doc *goquery.Document, src source.Source) Fragments {
	frags := Fragments{
		Name:  findByClasses(doc, src.NameMarker),
		Price: findByClasses(doc, src.PriceMarker),
		Stock: findByClasses(doc, src.StockMarker),
	}

	if !frags.Price.Found && src.FallbackPriceMarker != "" {
		frags.Price = findByClasses(doc, src.FallbackPriceMarker)
	}

	return frags
}

// findByClasses matches the first element whose class attribute carries
// every token of the marker
func findByClasses(doc *goquery.Document, marker string) Fragment {
	sel := doc.Find(classSelector(marker)).First()
	if sel.Length() == 0 {
		return Fragment{}
	}
	return Fragment{Text: sel.Text(), Found: true}
}

// classSelector turns a class-attribute marker such as
// "mb-3 h2 product-title" into the selector ".mb-3.h2.product-title"
func classSelector(marker string) string {
	tokens := strings.Fields(marker)
	return "." + strings.Join(tokens, ".")
}

package scraper

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"gpupricewatcher/internal/source"
	errs "gpupricewatcher/pkg/errors"
)

// DefaultDealThreshold is the price at or below which a record counts as
// a deal, in whole euros.
const DefaultDealThreshold = 1800

// maxPriceDigits caps the parsed price at its leading digits; retailer
// pages repeat the amount with cents and VAT variants in one fragment.
const maxPriceDigits = 4

type substitution struct {
	pattern     *regexp.Regexp
	replacement string
}

// Name cleanup is an ordered rule list; later rules depend on the output
// of earlier ones. preCaseRules run on the raw fragment, postCaseRules
// after upper-casing.
var (
	preCaseRules = []substitution{
		{regexp.MustCompile(`GeForce`), ""},
		{regexp.MustCompile(`®`), ""},
		{regexp.MustCompile(` -  Tarjeta Gráfica`), ""},
		{regexp.MustCompile(` {2}`), " "},
		// GDDR6X loses its R to the trademark-substring removal on some
		// pages; fold the leftover DDD back to DD
		{regexp.MustCompile(`DDD`), "DD"},
	}

	postCaseRules = []substitution{
		// align coolmod's and ibertronica's word order for the same card
		{regexp.MustCompile(`ASUS TURBO RTX 3090`), "ASUS RTX 3090 TURBO"},
	}

	nonDigit = regexp.MustCompile(`[^0-9]`)
)

// Normalizer converts raw fragments into canonical records
type Normalizer struct {
	Threshold int
}

// NewNormalizer creates a normalizer with the given deal threshold
func NewNormalizer(threshold int) *Normalizer {
	if threshold <= 0 {
		threshold = DefaultDealThreshold
	}
	return &Normalizer{Threshold: threshold}
}

// Normalize builds a Record from one source's fragments. A missing or
// empty product name is fatal for the source; a missing price or stock
// marker is not.
func (n *Normalizer) Normalize(frags Fragments, src source.Source) (*Record, error) {
	if !frags.Name.Found {
		return nil, errs.NewNormalization(src.ID, "product name not found")
	}

	name := CleanName(frags.Name.Text)
	if strings.TrimSpace(name) == "" {
		return nil, errs.NewNormalization(src.ID, "product name is empty after cleanup")
	}

	seller := SellerID(src.URL)
	if seller == "" {
		return nil, errs.NewNormalization(src.ID, "could not derive seller from url")
	}

	var price int
	var priceKnown bool
	if frags.Price.Found {
		price, priceKnown = ParsePrice(frags.Price.Text)
	}

	return &Record{
		CapturedAt: time.Now().Truncate(time.Second),
		Seller:     seller,
		Name:       name,
		Price:      price,
		InStock:    frags.Stock.Found,
		IsDeal:     price <= n.Threshold,
		URL:        src.URL,
		PriceKnown: priceKnown,
	}, nil
}

// CleanName applies the ordered substitution rules to a raw product name
func CleanName(raw string) string {
	name := raw
	for _, rule := range preCaseRules {
		name = rule.pattern.ReplaceAllString(name, rule.replacement)
	}
	name = strings.ToUpper(name)
	for _, rule := range postCaseRules {
		name = rule.pattern.ReplaceAllString(name, rule.replacement)
	}
	return name
}

// ParsePrice strips every non-digit character from a raw price fragment
// and keeps at most the first four digits as a whole-euro amount. The
// second return value is false when no digits were found.
func ParsePrice(raw string) (int, bool) {
	digits := nonDigit.ReplaceAllString(raw, "")
	if digits == "" {
		return 0, false
	}
	if len(digits) > maxPriceDigits {
		digits = digits[:maxPriceDigits]
	}
	price, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return price, true
}

// SellerID derives the human-facing retailer name from a source URL:
// the host without the www. prefix, cut before its top-level domain.
// ibertronica is the one .es seller; everything else is .com.
func SellerID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Hostname() == "" {
		return ""
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	var seller string
	if strings.Contains(host, "ibertronica") {
		seller, _, _ = strings.Cut(host, ".es")
	} else {
		seller, _, _ = strings.Cut(host, ".com")
	}
	return seller
}

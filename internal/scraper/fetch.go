package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	errs "gpupricewatcher/pkg/errors"
)

// userAgent is sent with every request. Retailer pages serve a consent
// wall to clients without a browser identity.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/88.0.4324.104 Safari/537.36"

// Fetcher performs a single GET per source and parses the body into a
// goquery document. No retries; a slow or unreachable page fails only
// the source it belongs to.
type Fetcher struct {
	client *http.Client
}

// NewFetcher creates a fetcher with the given transport timeout
func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves a URL and returns the parsed document
func (f *Fetcher) Fetch(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errs.NewFetch(url, "failed to create request", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errs.NewFetch(url, "request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errs.NewFetch(url, fmt.Sprintf("unexpected status code: %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errs.NewFetch(url, "failed to read response body", err)
	}

	utf8Body, err := toUTF8(body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, errs.NewFetch(url, "failed to decode response body", err)
	}

	doc, err := goquery.NewDocumentFromReader(utf8Body)
	if err != nil {
		return nil, errs.NewFetch(url, "failed to parse HTML", err)
	}

	return doc, nil
}

// toUTF8 converts the body to UTF-8 based on the Content-Type header and
// the body content itself
func toUTF8(body []byte, contentType string) (io.Reader, error) {
	encoding, name, _ := charset.DetermineEncoding(body, contentType)
	if name == "utf-8" || name == "UTF-8" {
		return bytes.NewReader(body), nil
	}

	decoded := encoding.NewDecoder().Reader(bytes.NewReader(body))
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, decoded); err != nil {
		return nil, err
	}
	return &buf, nil
}

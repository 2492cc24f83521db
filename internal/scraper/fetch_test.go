package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	errs "gpupricewatcher/pkg/errors"
)

func TestFetcherFetch(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		w.Write([]byte(`<html><body><div class="product-title">RTX 3090</div></body></html>`))
	}))
	defer server.Close()

	f := NewFetcher(5 * time.Second)
	doc, err := f.Fetch(context.Background(), server.URL)

	assert.NoError(t, err)
	assert.Equal(t, userAgent, gotUserAgent)
	assert.Equal(t, "RTX 3090", doc.Find(".product-title").Text())
}

func TestFetcherFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	f := NewFetcher(5 * time.Second)
	_, err := f.Fetch(context.Background(), server.URL)

	assert.Error(t, err)

	var perr *errs.PipelineError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, errs.ErrorTypeFetch, perr.Type)
	assert.Equal(t, server.URL, perr.Source)
	assert.Contains(t, perr.Message, "503")
}

func TestFetcherFetchUnreachable(t *testing.T) {
	f := NewFetcher(500 * time.Millisecond)
	_, err := f.Fetch(context.Background(), "http://127.0.0.1:1/never")

	assert.Error(t, err)

	var perr *errs.PipelineError
	assert.ErrorAs(t, err, &perr)
	assert.Equal(t, errs.ErrorTypeFetch, perr.Type)
}

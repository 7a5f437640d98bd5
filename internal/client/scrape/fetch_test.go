package scrape

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingPage = `<html><head><title>Acme - Go Engineer</title></head>
<body><h1 class="job-title">Go Engineer</h1><div class="company-name">Acme</div>
<div class="job-description">Build things.</div></body></html>`

func TestFetcher_Scrape(t *testing.T) {
	fixedNow(t)
	var ua string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ua = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte(postingPage))
	}))
	defer srv.Close()

	f := NewFetcher(0, time.Second)
	p, isJob, err := f.Scrape(context.Background(), srv.URL+"/jobs/1")
	require.NoError(t, err)

	assert.True(t, isJob)
	assert.Equal(t, Posting{
		Title:       "Go Engineer",
		Company:     "Acme",
		Link:        srv.URL + "/jobs/1",
		DateApplied: "2024-05-17",
		Notes:       "Build things.",
	}, p)
	assert.Equal(t, userAgent, ua)
}

func TestFetcher_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := NewFetcher(0, time.Second).Fetch(context.Background(), srv.URL)
	require.ErrorContains(t, err, "unexpected status 404")
}

func TestFetcher_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, _, err := NewFetcher(0, time.Second).Scrape(context.Background(), url)
	require.Error(t, err)
}

func TestFetcher_RateLimited(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("<html></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(0.01, time.Second)

	_, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = f.Fetch(ctx, srv.URL)
	require.Error(t, err)
	assert.Equal(t, 1, hits)
}

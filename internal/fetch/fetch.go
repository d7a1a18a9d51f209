// Package fetch downloads pages from the news site.
package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	fetcherrs "github.com/jdholdren/ternafeed/internal/errors"
)

const (
	UserAgent      = "Mozilla/5.0 (compatible; RSSBot/1.0)"
	AcceptLanguage = "it-IT,it;q=0.9,en;q=0.8"
	Accept         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"

	DefaultTimeout = 30 * time.Second

	maxRedirects = 10
)

// Fetcher issues one GET per call, with no retries.
type Fetcher struct {
	client *http.Client
}

// New returns a Fetcher whose requests, redirects included, give up after `timeout`.
func New(timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Fetcher{
		client: &http.Client{
			Timeout:       timeout,
			CheckRedirect: followRedirect,
		},
	}
}

// Follows up to maxRedirects hops, keeping our headers on every one of them.
func followRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= maxRedirects {
		return fmt.Errorf("stopped after %d redirects", maxRedirects)
	}
	setHeaders(req)

	return nil
}

func setHeaders(req *http.Request) {
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept-Language", AcceptLanguage)
	req.Header.Set("Accept", Accept)
}

// Fetch returns the body of the page at `url`.
//
// Any failure, including a 4xx/5xx answer, comes back as a *fetcherrs.Error.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return "", fetcherrs.E(fmt.Errorf("error creating request: %w", err), fetcherrs.URL(url))
	}
	setHeaders(req)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return "", fetcherrs.E(err, fetcherrs.URL(url))
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return "", fetcherrs.E(
			fmt.Sprintf("unexpected status code: %d", resp.StatusCode),
			resp.StatusCode,
			fetcherrs.URL(url),
		)
	}

	byts, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fetcherrs.E(fmt.Errorf("error reading body: %w", err), resp.StatusCode, fetcherrs.URL(url))
	}

	slog.DebugContext(ctx, "fetched page",
		"url", url,
		"final_url", resp.Request.URL.String(),
		"status", resp.StatusCode,
		"bytes", len(byts),
		"duration", time.Since(start),
	)

	return string(byts), nil
}

// Package bridge runs the listing page -> RSS file pipeline.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/jdholdren/ternafeed/internal/news"
	"github.com/jdholdren/ternafeed/internal/rss"
	"github.com/jdholdren/ternafeed/internal/scrape"
	"github.com/jdholdren/ternafeed/logger"
)

// Fetcher gets the body of a page.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Service generates the feed. It holds no state between runs.
type Service struct {
	cfg     Config
	base    *url.URL
	fetcher Fetcher
	now     func() time.Time
}

func NewService(cfg Config, fetcher Fetcher) (*Service, error) {
	base, err := cfg.Validate()
	if err != nil {
		return nil, err
	}

	return &Service{
		cfg:     cfg,
		base:    base,
		fetcher: fetcher,
		now:     time.Now,
	}, nil
}

// Run builds the feed and writes it to the configured output, replacing any previous file.
//
// Only a failure to get or parse the listing page, or to write the file, is an error.
func (s *Service) Run(ctx context.Context) error {
	feed, err := s.Build(ctx)
	if err != nil {
		return err
	}

	if err := rss.WriteFile(s.cfg.Output, feed); err != nil {
		return fmt.Errorf("error writing feed: %w", err)
	}
	slog.InfoContext(ctx, "wrote feed", "path", s.cfg.Output, "entries", len(feed.Entries))

	return nil
}

// Build fetches the listing and every article on it, in order, and assembles the feed.
func (s *Service) Build(ctx context.Context) (news.Feed, error) {
	runAt := s.now().UTC()

	page, err := s.fetcher.Fetch(ctx, s.cfg.ListURL)
	if err != nil {
		return news.Feed{}, fmt.Errorf("error fetching listing: %w", err)
	}
	listing, err := scrape.Listing(page, s.base, s.cfg.DetailPath)
	if err != nil {
		return news.Feed{}, err
	}

	listing = scrape.Dedup(listing)
	if len(listing) > s.cfg.MaxItems {
		listing = listing[:s.cfg.MaxItems]
	}
	slog.InfoContext(ctx, "found articles", "count", len(listing))

	feed := news.Feed{
		Title:       s.cfg.Title,
		Link:        s.cfg.ListURL,
		SelfLink:    s.cfg.SelfURL,
		Description: s.cfg.Description,
		Language:    s.cfg.Language,
		BuiltAt:     runAt,
		Entries:     make([]news.Entry, 0, len(listing)),
	}

	if len(listing) == 0 {
		slog.WarnContext(ctx, "no articles on listing page, adding placeholder")
		feed.Entries = append(feed.Entries, news.Entry{
			Title:       placeholderTitle,
			Link:        s.cfg.ListURL,
			GUID:        placeholderGUIDPrefix + s.cfg.ListURL,
			IsPermaLink: false,
			Published:   runAt,
		})
		return feed, nil
	}

	for _, le := range listing {
		published, ok := s.articleDate(logger.Ctx(ctx, slog.String("url", le.URL)), le.URL)
		if !ok {
			published = runAt
		}

		feed.Entries = append(feed.Entries, news.Entry{
			Title:       le.Title,
			Link:        le.URL,
			GUID:        le.URL,
			IsPermaLink: true,
			Published:   published,
		})
	}

	return feed, nil
}

// Best effort: any failure just means the article has no known date.
func (s *Service) articleDate(ctx context.Context, articleURL string) (time.Time, bool) {
	page, err := s.fetcher.Fetch(ctx, articleURL)
	if err != nil {
		slog.WarnContext(ctx, "error fetching article", "error", err)
		return time.Time{}, false
	}

	text, err := scrape.PageText(page)
	if err != nil {
		slog.WarnContext(ctx, "error reading article", "error", err)
		return time.Time{}, false
	}

	published, ok := scrape.Date(text)
	if !ok {
		slog.DebugContext(ctx, "no date found in article")
		return time.Time{}, false
	}

	return published, true
}

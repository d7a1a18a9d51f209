// Package scrape pulls article links, titles and dates out of the news site's html.
package scrape

import (
	"fmt"
	"html"
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"

	"github.com/jdholdren/ternafeed/internal/news"
)

// Listing extracts links to detail pages from the listing page.
//
// Anchors whose href contains detailPath are taken in document order. Only if there
// are none does it fall back to JSON-LD ItemList blocks embedded in the page.
// Relative links are resolved against base. Duplicates are left in.
func Listing(doc string, base *url.URL, detailPath string) ([]news.ListingEntry, error) {
	d, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("error parsing listing html: %w", err)
	}

	entries := anchors(d, base, detailPath)
	if len(entries) > 0 {
		return entries, nil
	}

	slog.Debug("no detail anchors on listing page, trying json-ld")
	return jsonLD(d, base, detailPath), nil
}

func anchors(d *goquery.Document, base *url.URL, detailPath string) []news.ListingEntry {
	entries := []news.ListingEntry{}
	d.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href := strings.TrimSpace(a.AttrOr("href", ""))
		if href == "" || !strings.Contains(href, detailPath) {
			return
		}
		title := visibleText(a)
		if title == "" {
			return
		}
		abs, ok := resolve(base, href)
		if !ok {
			return
		}

		entries = append(entries, news.ListingEntry{Title: title, URL: abs})
	})

	return entries
}

// Turns href into an absolute http(s) url, false if that can't be done.
func resolve(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	abs := base.ResolveReference(ref)
	if abs.Scheme != "http" && abs.Scheme != "https" {
		return "", false
	}
	if abs.Host == "" {
		return "", false
	}

	return abs.String(), true
}

var stripPolicy = bluemonday.StrictPolicy()

// Structured data names sometimes carry markup and entities; reduce them to plain text.
func plainTitle(s string) string {
	return collapse(html.UnescapeString(stripPolicy.Sanitize(s)))
}

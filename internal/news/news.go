// Package news holds the types that flow through a feed generation run.
package news

import "time"

type (
	// ListingEntry is an article link found on the listing page.
	//
	// Entries are unique by URL, never by title.
	ListingEntry struct {
		Title string
		URL   string // Always absolute
	}

	// Entry is a single item in the generated feed.
	Entry struct {
		Title       string
		Link        string
		GUID        string
		IsPermaLink bool
		Published   time.Time
	}

	// Feed is the whole document written out on every run.
	Feed struct {
		Title       string
		Link        string // The listing page, rel=alternate
		SelfLink    string // Where the feed itself is published
		Description string
		Language    string
		BuiltAt     time.Time
		Entries     []Entry
	}
)

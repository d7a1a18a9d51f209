package scrape

import "github.com/jdholdren/ternafeed/internal/news"

// Dedup drops every entry whose URL was already seen, keeping the first one.
func Dedup(entries []news.ListingEntry) []news.ListingEntry {
	seen := make(map[string]struct{}, len(entries))
	ret := make([]news.ListingEntry, 0, len(entries))
	for _, e := range entries {
		if _, ok := seen[e.URL]; ok {
			continue
		}
		seen[e.URL] = struct{}{}
		ret = append(ret, e)
	}

	return ret
}

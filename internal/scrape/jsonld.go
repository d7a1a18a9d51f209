package scrape

import (
	"log/slog"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/tidwall/gjson"

	"github.com/jdholdren/ternafeed/internal/news"
)

// Reads links out of every <script type="application/ld+json"> ItemList.
// Blocks that aren't valid JSON are skipped.
func jsonLD(d *goquery.Document, base *url.URL, detailPath string) []news.ListingEntry {
	entries := []news.ListingEntry{}
	d.Find(`script[type="application/ld+json"]`).Each(func(i int, s *goquery.Selection) {
		raw := strings.TrimSpace(s.Text())
		if !gjson.Valid(raw) {
			slog.Debug("skipping malformed json-ld block", "index", i)
			return
		}

		for _, node := range nodes(gjson.Parse(raw)) {
			if !isItemList(key(node, "@type")) {
				continue
			}
			for _, el := range key(node, "itemListElement").Array() {
				if item := key(el, "item"); item.IsObject() {
					el = item
				}

				href := strings.TrimSpace(key(el, "url").String())
				title := plainTitle(key(el, "name").String())
				if href == "" || title == "" || !strings.Contains(href, detailPath) {
					continue
				}
				abs, ok := resolve(base, href)
				if !ok {
					continue
				}

				entries = append(entries, news.ListingEntry{Title: title, URL: abs})
			}
		}
	})

	return entries
}

// A lone object counts as a list of one.
func nodes(v gjson.Result) []gjson.Result {
	switch {
	case v.IsArray():
		return v.Array()
	case v.IsObject():
		return []gjson.Result{v}
	default:
		return nil
	}
}

// @type may be a single string or a list of them.
func isItemList(t gjson.Result) bool {
	if t.IsArray() {
		for _, v := range t.Array() {
			if v.String() == "ItemList" {
				return true
			}
		}
		return false
	}

	return t.Type == gjson.String && t.String() == "ItemList"
}

// Looks up a key literally. gjson paths treat '@' and '.' specially, which JSON-LD keys use.
func key(obj gjson.Result, name string) gjson.Result {
	var found gjson.Result
	if !obj.IsObject() {
		return found
	}
	obj.ForEach(func(k, v gjson.Result) bool {
		if k.String() == name {
			found = v
			return false
		}
		return true
	})

	return found
}

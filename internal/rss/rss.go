// Package rss serializes a [news.Feed] as an RSS 2.0 document.
package rss

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/jdholdren/ternafeed/internal/news"
)

const (
	atomNS    = "http://www.w3.org/2005/Atom"
	generator = "ternafeed"
	docsURL   = "https://www.rssboard.org/rss-specification"
)

type (
	document struct {
		XMLName xml.Name `xml:"rss"`
		Version string   `xml:"version,attr"`
		AtomNS  string   `xml:"xmlns:atom,attr"`
		Channel channel  `xml:"channel"`
	}

	channel struct {
		Title         string   `xml:"title"`
		Link          string   `xml:"link"`
		Description   string   `xml:"description"`
		AtomLink      atomLink `xml:"atom:link"`
		Docs          string   `xml:"docs"`
		Generator     string   `xml:"generator"`
		Language      string   `xml:"language"`
		LastBuildDate string   `xml:"lastBuildDate"`
		Items         []item   `xml:"item"`
	}

	atomLink struct {
		Href string `xml:"href,attr"`
		Rel  string `xml:"rel,attr"`
		Type string `xml:"type,attr"`
	}

	item struct {
		Title   string `xml:"title"`
		Link    string `xml:"link"`
		GUID    guid   `xml:"guid"`
		PubDate string `xml:"pubDate"`
	}

	guid struct {
		IsPermaLink string `xml:"isPermaLink,attr"`
		Value       string `xml:",chardata"`
	}
)

// Dates in RFC 822 form with a four digit year and numeric zone, as feed validators want.
func pubDate(t time.Time) string {
	return t.Format(time.RFC1123Z)
}

func toDocument(f news.Feed) document {
	items := make([]item, 0, len(f.Entries))
	for _, e := range f.Entries {
		items = append(items, item{
			Title: e.Title,
			Link:  e.Link,
			GUID: guid{
				IsPermaLink: strconv.FormatBool(e.IsPermaLink),
				Value:       e.GUID,
			},
			PubDate: pubDate(e.Published),
		})
	}

	return document{
		Version: "2.0",
		AtomNS:  atomNS,
		Channel: channel{
			Title:       f.Title,
			Link:        f.Link,
			Description: f.Description,
			AtomLink: atomLink{
				Href: f.SelfLink,
				Rel:  "self",
				Type: "application/rss+xml",
			},
			Docs:          docsURL,
			Generator:     generator,
			Language:      f.Language,
			LastBuildDate: pubDate(f.BuiltAt),
			Items:         items,
		},
	}
}

// Encode writes the feed as an indented RSS document, xml declaration included.
func Encode(w io.Writer, f news.Feed) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}

	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(toDocument(f)); err != nil {
		return fmt.Errorf("error encoding feed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("error flushing feed: %w", err)
	}

	_, err := io.WriteString(w, "\n")
	return err
}

// WriteFile replaces the file at path with the encoded feed.
//
// The document is written to a temporary file next to path and renamed over it,
// so readers see either the previous feed or the new one, never half of one.
func WriteFile(path string, f news.Feed) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err := Encode(tmp, f); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("error closing temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("error setting feed permissions: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("error replacing %s: %w", path, err)
	}

	return nil
}

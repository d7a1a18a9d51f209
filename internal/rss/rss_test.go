package rss

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	gofeedrss "github.com/mmcdole/gofeed/rss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdholdren/ternafeed/internal/news"
)

var builtAt = time.Date(2026, time.January, 9, 8, 30, 0, 0, time.UTC)

func testFeed() news.Feed {
	return news.Feed{
		Title:       "Terna – News Operatori (RSS automatico)",
		Link:        "https://www.terna.it/it/sistema-elettrico/pubblicazioni/news-operatori",
		SelfLink:    "https://example.com/rss.xml",
		Description: "Feed RSS generato automaticamente dalla pagina News Operatori di Terna.",
		Language:    "it",
		BuiltAt:     builtAt,
		Entries: []news.Entry{
			{
				Title:       "Avviso <urgente> & importante",
				Link:        "https://www.terna.it/it/a",
				GUID:        "https://www.terna.it/it/a",
				IsPermaLink: true,
				Published:   time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC),
			},
			{
				Title:       "Secondo avviso",
				Link:        "https://www.terna.it/it/b",
				GUID:        "https://www.terna.it/it/b",
				IsPermaLink: true,
				Published:   builtAt,
			},
		},
	}
}

func parse(t *testing.T, byts []byte) *gofeedrss.Feed {
	t.Helper()
	fp := gofeedrss.Parser{}
	feed, err := fp.Parse(bytes.NewReader(byts))
	require.NoError(t, err)
	return feed
}

func TestEncode(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, testFeed()))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, out, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	assert.Contains(t, out, `<atom:link href="https://example.com/rss.xml" rel="self" type="application/rss+xml"></atom:link>`)
	assert.Contains(t, out, `<guid isPermaLink="true">https://www.terna.it/it/a</guid>`)
	assert.Contains(t, out, `<pubDate>Wed, 07 Jan 2026 00:00:00 +0000</pubDate>`)

	feed := parse(t, buf.Bytes())
	assert.Equal(t, "2.0", feed.Version)
	assert.Equal(t, "Terna – News Operatori (RSS automatico)", feed.Title)
	assert.Equal(t, "https://www.terna.it/it/sistema-elettrico/pubblicazioni/news-operatori", feed.Link)
	assert.Equal(t, "it", feed.Language)
	assert.Equal(t, "Feed RSS generato automaticamente dalla pagina News Operatori di Terna.", feed.Description)

	require.Len(t, feed.Items, 2)
	first := feed.Items[0]
	assert.Equal(t, "Avviso <urgente> & importante", first.Title)
	assert.Equal(t, "https://www.terna.it/it/a", first.Link)
	require.NotNil(t, first.GUID)
	assert.Equal(t, "https://www.terna.it/it/a", first.GUID.Value)
	require.NotNil(t, first.PubDateParsed)
	assert.True(t, first.PubDateParsed.Equal(time.Date(2026, time.January, 7, 0, 0, 0, 0, time.UTC)))

	assert.Equal(t, "Secondo avviso", feed.Items[1].Title)
}

func TestEncode_Placeholder(t *testing.T) {
	f := testFeed()
	f.Entries = []news.Entry{{
		Title:     "Nessuna news disponibile al momento (feed attivo)",
		Link:      f.Link,
		GUID:      "placeholder-" + f.Link,
		Published: builtAt,
	}}

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, f))

	feed := parse(t, buf.Bytes())
	require.Len(t, feed.Items, 1)
	assert.True(t, strings.HasPrefix(feed.Items[0].GUID.Value, "placeholder-"))
	// gofeed reads the attribute as "isPermalink", so check the document itself.
	assert.Contains(t, buf.String(), `<guid isPermaLink="false">placeholder-https://www.terna.it/`)
	assert.NotContains(t, buf.String(), `isPermaLink="true"`)
}

func TestWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rss.xml")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is much longer than nothing"), 0o600))

	require.NoError(t, WriteFile(path, testFeed()))

	byts, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(byts), "stale content")
	assert.Len(t, parse(t, byts).Items, 2)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	// No temp files left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteFile_MissingDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "rss.xml")

	err := WriteFile(path, testFeed())
	assert.Error(t, err)
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

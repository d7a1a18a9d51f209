package bridge

import (
	"errors"
	"fmt"
	"net/url"
)

const (
	DefaultListURL    = "https://www.terna.it/it/sistema-elettrico/pubblicazioni/news-operatori"
	DefaultBaseURL    = "https://www.terna.it"
	DefaultDetailPath = "/it/sistema-elettrico/pubblicazioni/news-operatori/dettaglio/"
	DefaultSelfURL    = "rss.xml"
	DefaultOutput     = "rss.xml"
	DefaultMaxItems   = 50

	feedTitle       = "Terna – News Operatori (RSS automatico)"
	feedDescription = "Feed RSS generato automaticamente dalla pagina News Operatori di Terna."
	feedLanguage    = "it"

	placeholderTitle      = "Nessuna news disponibile al momento (feed attivo)"
	placeholderGUIDPrefix = "placeholder-"
)

// Config is everything a run needs to know about the site and the feed it produces.
type Config struct {
	ListURL    string // Listing page, also the feed's alternate link
	BaseURL    string // Relative article links resolve against this
	DetailPath string // Substring identifying an article link
	SelfURL    string // Where the feed is published
	Output     string // File the feed is written to
	MaxItems   int

	Title       string
	Description string
	Language    string
}

// DefaultConfig points at Terna's "News Operatori" page.
func DefaultConfig() Config {
	return Config{
		ListURL:     DefaultListURL,
		BaseURL:     DefaultBaseURL,
		DetailPath:  DefaultDetailPath,
		SelfURL:     DefaultSelfURL,
		Output:      DefaultOutput,
		MaxItems:    DefaultMaxItems,
		Title:       feedTitle,
		Description: feedDescription,
		Language:    feedLanguage,
	}
}

var (
	errNoDetailPath = errors.New("detail path is required")
	errNoOutput     = errors.New("output path is required")
	errMaxItems     = errors.New("max items must be at least 1")
)

// Validate checks the config and returns the parsed base url.
func (c Config) Validate() (*url.URL, error) {
	if _, err := absURL(c.ListURL); err != nil {
		return nil, fmt.Errorf("invalid list url: %w", err)
	}
	base, err := absURL(c.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base url: %w", err)
	}
	if c.DetailPath == "" {
		return nil, errNoDetailPath
	}
	if c.Output == "" {
		return nil, errNoOutput
	}
	if c.MaxItems < 1 {
		return nil, errMaxItems
	}

	return base, nil
}

func absURL(s string) (*url.URL, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute http(s) url", s)
	}

	return u, nil
}

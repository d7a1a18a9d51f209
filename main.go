// Ternafeed turns Terna's "News Operatori" page into an RSS feed.
//
// Each run fetches the listing page, visits every article on it to find its
// publication date, and rewrites rss.xml. It is meant to be run on a schedule.
package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/sethvargo/go-envconfig"
	_ "golang.org/x/crypto/x509roots/fallback"

	"github.com/jdholdren/ternafeed/internal/bridge"
	"github.com/jdholdren/ternafeed/internal/fetch"
	"github.com/jdholdren/ternafeed/logger"
)

type config struct {
	ListURL    string        `env:"LIST_URL, default=https://www.terna.it/it/sistema-elettrico/pubblicazioni/news-operatori"`
	BaseURL    string        `env:"BASE_URL, default=https://www.terna.it"`
	DetailPath string        `env:"DETAIL_PATH, default=/it/sistema-elettrico/pubblicazioni/news-operatori/dettaglio/"`
	SelfURL    string        `env:"SELF_URL, default=rss.xml"`
	Output     string        `env:"OUTPUT, default=rss.xml"`
	MaxItems   int           `env:"MAX_ITEMS, default=50"`
	Timeout    time.Duration `env:"TIMEOUT, default=30s"`

	// Which format to use for logging: either text or json
	LoggerFormat string `env:"LOGGER_FORMAT, default=text"`
	LogLevel     string `env:"LOG_LEVEL, default=info"`
}

func (c config) bridgeConfig() bridge.Config {
	cfg := bridge.DefaultConfig()
	cfg.ListURL = c.ListURL
	cfg.BaseURL = c.BaseURL
	cfg.DetailPath = c.DetailPath
	cfg.SelfURL = c.SelfURL
	cfg.Output = c.Output
	cfg.MaxItems = c.MaxItems

	return cfg
}

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Parse the config
	var cfg config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		log.Fatalf("error parsing config: %s", err)
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Fatalf("error parsing config: %s", err)
	}
	l, err := logger.New(os.Stderr, cfg.LoggerFormat, level)
	if err != nil {
		log.Fatalf("error parsing config: %s", err)
	}
	slog.SetDefault(l)

	if err := run(ctx, cfg); err != nil {
		slog.Error("error running", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config) error {
	slog.Info("running", "config", cfg)
	start := time.Now()

	svc, err := bridge.NewService(cfg.bridgeConfig(), fetch.New(cfg.Timeout))
	if err != nil {
		return fmt.Errorf("error configuring: %w", err)
	}
	if err := svc.Run(ctx); err != nil {
		return err
	}

	slog.Info("done", "duration", time.Since(start))
	return nil
}

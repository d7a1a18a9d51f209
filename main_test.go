package main

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jdholdren/ternafeed/internal/bridge"
)

func TestConfigDefaults(t *testing.T) {
	var cfg config
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target:   &cfg,
		Lookuper: envconfig.MapLookuper(map[string]string{}),
	})
	require.NoError(t, err)

	got := cfg.bridgeConfig()
	assert.Equal(t, bridge.DefaultConfig(), got)
	assert.Equal(t, "30s", cfg.Timeout.String())
	assert.Equal(t, "text", cfg.LoggerFormat)
}

func TestRun(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<p>Nessuna notizia</p>`)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "rss.xml")
	var cfg config
	err := envconfig.ProcessWith(context.Background(), &envconfig.Config{
		Target: &cfg,
		Lookuper: envconfig.MapLookuper(map[string]string{
			"LIST_URL": srv.URL + "/news",
			"BASE_URL": srv.URL,
			"OUTPUT":   out,
		}),
	})
	require.NoError(t, err)

	require.NoError(t, run(context.Background(), cfg))

	byts, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(byts), `<guid isPermaLink="false">placeholder-`+srv.URL+`/news</guid>`)
}

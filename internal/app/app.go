package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/five82/dex/internal/config"
	"github.com/five82/dex/internal/logging"
	"github.com/five82/dex/internal/pokeapi"
	"github.com/five82/dex/internal/prefs"
	"github.com/five82/dex/internal/ui"
)

// Options configure the dex application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/dex/prefs.toml
	PageSize   int    // entries per list page; zero uses the config value
}

// Run boots the dex TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.WithPageSize(opts.PageSize)

	logger, err := logging.New(cfg.LogPath(), cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	log := logger.Sugar()

	client, err := newCatalogClient(cfg, log)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	log.Infow("dex starting",
		"base_url", client.BaseURL(),
		"page_size", cfg.PageSize,
		"timeout", cfg.Timeout.String(),
		"theme", userPrefs.Theme,
	)

	err = ui.Run(ui.Options{
		Context:   ctx,
		Catalog:   client,
		Logger:    log,
		PageSize:  cfg.PageSize,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
		LogPath:   cfg.LogPath(),
	})
	if err != nil {
		log.Errorw("ui exited with error", "error", err)
		return err
	}
	log.Info("dex stopped")
	return nil
}

// newCatalogClient builds the one catalog client both screens share.
func newCatalogClient(cfg config.Config, log *zap.SugaredLogger) (*pokeapi.Client, error) {
	return pokeapi.NewClient(cfg.BaseURL,
		pokeapi.WithHTTPClient(httpClientFor(cfg.Timeout)),
		pokeapi.WithLogger(log),
	)
}

// httpClientFor returns the process-wide client for the default timeout and a
// dedicated one when the config overrides it.
func httpClientFor(timeout time.Duration) *http.Client {
	if timeout <= 0 || timeout == pokeapi.DefaultTimeout {
		return pokeapi.SharedHTTPClient()
	}
	return pokeapi.NewHTTPClient(timeout)
}

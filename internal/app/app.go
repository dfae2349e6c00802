// internal/app/app.go
//
// Process bootstrap shared by cmd/web and cmd/theme.
//
// Boot order
// ----------
//
//  1. Config   – koanf layers; Vault is dialled only when a `vault:` value
//     is present.
//  2. Logger   – daily JSON file, console tee on a TTY.
//  3. Store    – file or MySQL backend for the activated theme.
//  4. Services – view finder, translator, URL generator, mix resolver.
//  5. Manager  – theme runtime helper wired to the services above.
//
// Callers own the returned App and must Close it.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/AdeptTravel/adept-theme/internal/asset"
	"github.com/AdeptTravel/adept-theme/internal/config"
	"github.com/AdeptTravel/adept-theme/internal/lang"
	"github.com/AdeptTravel/adept-theme/internal/logger"
	"github.com/AdeptTravel/adept-theme/internal/store"
	"github.com/AdeptTravel/adept-theme/internal/theme"
	"github.com/AdeptTravel/adept-theme/internal/vault"
	"github.com/AdeptTravel/adept-theme/internal/view"
)

// Options tune Open.
type Options struct {
	Root    string // empty: discover
	Tee     bool   // mirror logs to stderr
	Verbose bool   // debug level
}

// App bundles the long-lived services of one process.
type App struct {
	Config  *config.Config
	Log     *zap.SugaredLogger
	Store   store.Store
	Manager *theme.Manager
}

// Open boots every layer in order.  ctx bounds the boot itself and the
// Vault renew loop.
func Open(ctx context.Context, opt Options) (*App, error) {
	root := opt.Root
	if root == "" {
		root = config.Root()
	}

	level := zapcore.InfoLevel
	if opt.Verbose {
		level = zapcore.DebugLevel
	}
	log, err := logger.NewLevel(root, opt.Tee, level)
	if err != nil {
		return nil, fmt.Errorf("start logger: %w", err)
	}

	var secrets config.SecretResolver
	if config.NeedsSecrets(root) {
		vc, err := vault.New(ctx, log.Infof)
		if err != nil {
			return nil, fmt.Errorf("vault: %w", err)
		}
		secrets = vc
	}

	cfg, err := config.LoadDir(ctx, root, secrets)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	st, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	m, err := NewManager(cfg, st)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	log.Infow("app online", "root", root, "themes", cfg.Theme.Path, "store", cfg.Store.Driver)
	return &App{Config: cfg, Log: log, Store: st, Manager: m}, nil
}

// NewManager wires a theme manager with services built from cfg.
func NewManager(cfg *config.Config, st store.Store) (*theme.Manager, error) {
	urls, err := asset.NewGenerator(cfg.Asset.BaseURL, cfg.Asset.Secure)
	if err != nil {
		return nil, fmt.Errorf("asset url generator: %w", err)
	}
	return theme.New(cfg.Theme, theme.Deps{
		Finder:     view.NewFinder(),
		Translator: lang.New(cfg.Theme.Locale, cfg.Theme.FallbackLocale, ""),
		URLs:       urls,
		Mix:        asset.NewMix(cfg.Theme.PublicPath),
		Store:      st,
	})
}

// Close releases the store and flushes the logger.
func (a *App) Close() error {
	err := a.Store.Close()
	_ = a.Log.Sync()
	return err
}

// Package store persists small key/value settings, most importantly which
// theme is activated.  Two backends exist:
//
//   - SQLStore  – a `theme_config` table reached through sqlx (MySQL).
//   - FileStore – a YAML file, for single-host installs and the CLI.
//
// Open picks one from configuration.
package store

import (
	"context"
	"fmt"

	"github.com/AdeptTravel/adept-theme/internal/config"
	"github.com/AdeptTravel/adept-theme/internal/database"
)

// Well-known keys.
const (
	// KeyActiveTheme is read by IsActive.
	KeyActiveTheme = "active_theme"
	// KeyActivatedTheme is written by Activate and Deactivate.
	KeyActivatedTheme = "activated_theme"
)

// Store is a string key/value store.  Get returns "" for missing keys.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	All(ctx context.Context) (map[string]string, error)
	Close() error
}

// Open builds the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg config.Store) (Store, error) {
	switch cfg.Driver {
	case "mysql":
		db, err := database.Open(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		s := NewSQL(db)
		if err := s.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, err
		}
		return s, nil
	case "file", "":
		return NewFile(cfg.File), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

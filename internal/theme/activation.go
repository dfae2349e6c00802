package theme

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/AdeptTravel/adept-theme/internal/fsutil"
	"github.com/AdeptTravel/adept-theme/internal/store"
)

// ErrNoStore is returned by persistence calls on a Manager built without a
// store.
var ErrNoStore = errors.New("theme manager has no config store")

// IsActive reports whether the store marks name as the active theme.
func (m *Manager) IsActive(ctx context.Context, name string) (bool, error) {
	if m.store == nil {
		return false, ErrNoStore
	}
	v, err := m.store.Get(ctx, store.KeyActiveTheme)
	if err != nil {
		return false, err
	}
	return v == name, nil
}

// Activate records name as the activated theme.  It does not switch the
// running process; call Set for that.
func (m *Manager) Activate(ctx context.Context, name string) (*Manager, error) {
	if m.store == nil {
		return m, ErrNoStore
	}
	if !m.Has(name) {
		return m, notFound(name)
	}
	if err := m.store.Set(ctx, store.KeyActivatedTheme, name); err != nil {
		return m, fmt.Errorf("activate %s: %w", name, err)
	}
	zap.S().Infow("theme activated", "theme", name)
	return m, nil
}

// Deactivate clears every store key that currently names the theme.
func (m *Manager) Deactivate(ctx context.Context, name string) (*Manager, error) {
	if m.store == nil {
		return m, ErrNoStore
	}
	for _, key := range []string{store.KeyActivatedTheme, store.KeyActiveTheme} {
		v, err := m.store.Get(ctx, key)
		if err != nil {
			return m, err
		}
		if v != name {
			continue
		}
		if err := m.store.Delete(ctx, key); err != nil {
			return m, fmt.Errorf("deactivate %s: %w", name, err)
		}
	}
	zap.S().Infow("theme deactivated", "theme", name)
	return m, nil
}

// Delete deactivates name when it is active and empties its directory.
// The directory itself is kept.
func (m *Manager) Delete(ctx context.Context, name string) error {
	if !m.Has(name) {
		return notFound(name)
	}
	if m.store != nil {
		active, err := m.IsActive(ctx, name)
		if err != nil {
			return err
		}
		if active {
			if _, err := m.Deactivate(ctx, name); err != nil {
				return err
			}
		}
	}
	if err := fsutil.EmptyDir(m.Path(name)); err != nil {
		return fmt.Errorf("delete %s: %w", name, err)
	}

	m.mu.Lock()
	delete(m.themes, name)
	m.mu.Unlock()

	zap.S().Infow("theme deleted", "theme", name, "path", m.Path(name))
	return nil
}

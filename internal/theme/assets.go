package theme

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/AdeptTravel/adept-theme/internal/fsutil"
	"github.com/AdeptTravel/adept-theme/internal/manifest"
	"github.com/AdeptTravel/adept-theme/internal/metrics"
)

// assetsDir is the folder inside a theme holding public files.
const assetsDir = "assets"

// ErrBadAssetPath rejects paths that are empty or climb out of the assets
// folder.
var ErrBadAssetPath = errors.New("invalid asset path")

// themeDir is the on-disk directory assets are published from: the symlink
// target when symlinking is on, the theme directory otherwise.
func (m *Manager) themeDir(name, dir string) string {
	if m.cfg.Symlink {
		return filepath.Join(m.cfg.SymlinkPath, name)
	}
	return dir
}

// FullPath resolves an asset to a path relative to the public directory.
//
// `ocean:css/app.css` addresses theme ocean; a bare `css/app.css` addresses
// the active theme; `:css/app.css` yields "".  When the file is missing and
// the theme declares a parent, the parent's path is returned without
// checking it, one level deep.
func (m *Manager) FullPath(p string) (string, error) {
	name := m.Current()
	if before, after, ok := strings.Cut(p, ":"); ok {
		if before == "" {
			return "", nil
		}
		name, p = before, after
	}

	info, err := m.lookup(name)
	if err != nil {
		metrics.AssetLookupTotal.WithLabelValues(metrics.AssetMiss).Inc()
		return "", err
	}

	disk := filepath.Join(m.themeDir(name, info.Path), assetsDir, filepath.FromSlash(p))
	full := m.publicPath(name, info.Path, p)

	if !fsutil.IsFile(disk) && info.HasParent() {
		parent, err := m.Info(info.Parent)
		if err != nil {
			metrics.AssetLookupTotal.WithLabelValues(metrics.AssetMiss).Inc()
			return full, nil
		}
		metrics.AssetLookupTotal.WithLabelValues(metrics.AssetParent).Inc()
		return m.publicPath(info.Parent, parent.Path, p), nil
	}

	if fsutil.IsFile(disk) {
		metrics.AssetLookupTotal.WithLabelValues(metrics.AssetHit).Inc()
	} else {
		metrics.AssetLookupTotal.WithLabelValues(metrics.AssetMiss).Inc()
	}
	return full, nil
}

func (m *Manager) publicPath(name, dir, p string) string {
	base := fsutil.Rel(m.cfg.PublicPath, m.themeDir(name, dir))
	return path.Join(base, assetsDir, filepath.ToSlash(p))
}

// Asset returns the URL of a theme asset.  secure, when non-nil, overrides
// the generator's scheme choice.
func (m *Manager) Asset(p string, secure *bool) (string, error) {
	full, err := m.FullPath(p)
	if err != nil || full == "" {
		return "", err
	}
	return m.urls.Asset(full, secure), nil
}

// Mix returns the versioned URL of a theme asset from a mix manifest.
func (m *Manager) Mix(p, manifestDir string) (string, error) {
	full, err := m.FullPath(p)
	if err != nil || full == "" {
		return "", err
	}
	return m.mix.Resolve(full, manifestDir)
}

// AssetFile returns the file on disk serving asset p of theme name, trying
// the theme and then its parent.  p must stay inside the assets folder.
func (m *Manager) AssetFile(name, p string) (string, error) {
	clean := path.Clean("/" + filepath.ToSlash(p))[1:]
	if clean == "" || clean != strings.TrimPrefix(filepath.ToSlash(p), "/") {
		return "", fmt.Errorf("%w: %s", ErrBadAssetPath, p)
	}

	info, err := m.lookup(name)
	if err != nil {
		return "", err
	}
	candidates := []string{filepath.Join(info.Path, assetsDir, filepath.FromSlash(clean))}
	if info.HasParent() && validName(info.Parent) {
		candidates = append(candidates,
			filepath.Join(m.Path(info.Parent), assetsDir, filepath.FromSlash(clean)))
	}
	for _, c := range candidates {
		if fsutil.IsFile(c) {
			return c, nil
		}
	}
	return "", fmt.Errorf("%w: %s:%s", os.ErrNotExist, name, p)
}

// lookup is Info with a missing manifest reported as an unknown theme.
// Other failures, such as a malformed manifest, pass through.
func (m *Manager) lookup(name string) (*manifest.Manifest, error) {
	info, err := m.Info(name)
	switch {
	case err == nil:
		return info, nil
	case errors.Is(err, manifest.ErrNotFound), errors.Is(err, ErrThemeNotFound):
		return nil, notFound(name)
	default:
		return nil, fmt.Errorf("theme %s: %w", name, err)
	}
}

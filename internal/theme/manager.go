package theme

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/AdeptTravel/adept-theme/internal/asset"
	"github.com/AdeptTravel/adept-theme/internal/config"
	"github.com/AdeptTravel/adept-theme/internal/fsutil"
	"github.com/AdeptTravel/adept-theme/internal/lang"
	"github.com/AdeptTravel/adept-theme/internal/manifest"
	"github.com/AdeptTravel/adept-theme/internal/metrics"
	"github.com/AdeptTravel/adept-theme/internal/store"
	"github.com/AdeptTravel/adept-theme/internal/view"
)

// maxDepth bounds the parent chain followed during activation.
const maxDepth = 8

// Deps are the services a Manager plugs themes into.
type Deps struct {
	Finder     *view.Finder
	Translator *lang.Translator
	URLs       *asset.Generator
	Mix        *asset.Mix
	Store      store.Store
}

// Manager is safe for concurrent use.  Zero value is invalid; use New.
type Manager struct {
	cfg      config.Theme
	finder   *view.Finder
	renderer *view.Renderer
	lang     *lang.Translator
	urls     *asset.Generator
	mix      *asset.Mix
	store    store.Store

	sfg singleflight.Group

	mu     sync.RWMutex
	active string
	themes map[string]*manifest.Manifest // last scan, keyed by manifest name
}

// New wires a Manager.  Missing deps are replaced with defaults built from
// cfg, except Store, which is required for activation calls only.
func New(cfg config.Theme, deps Deps) (*Manager, error) {
	if deps.Finder == nil {
		deps.Finder = view.NewFinder()
	}
	if deps.Translator == nil {
		deps.Translator = lang.New(cfg.Locale, cfg.FallbackLocale, "")
	}
	if deps.URLs == nil {
		g, err := asset.NewGenerator("", false)
		if err != nil {
			return nil, err
		}
		deps.URLs = g
	}
	if deps.Mix == nil {
		deps.Mix = asset.NewMix(cfg.PublicPath)
	}

	m := &Manager{
		cfg:      cfg,
		finder:   deps.Finder,
		renderer: view.NewRenderer(deps.Finder),
		lang:     deps.Translator,
		urls:     deps.URLs,
		mix:      deps.Mix,
		store:    deps.Store,
		themes:   map[string]*manifest.Manifest{},
	}
	m.renderer.Funcs(m.FuncMap())
	return m, nil
}

// Renderer exposes the view renderer bound to this manager.
func (m *Manager) Renderer() *view.Renderer { return m.renderer }

// Translator exposes the translator themes register with.
func (m *Manager) Translator() *lang.Translator { return m.lang }

// BasePath returns the themes directory.
func (m *Manager) BasePath() string { return m.cfg.Path }

// validName accepts a single directory name below the themes path.
func validName(name string) bool {
	return name != "" && name != "." && name != ".." &&
		!strings.ContainsAny(name, `/\`) && name == filepath.Base(name)
}

// Has reports whether a theme directory exists.
func (m *Manager) Has(name string) bool {
	return validName(name) && fsutil.IsDir(m.Path(name))
}

// Path returns the directory of a theme, existing or not.  Names that are
// not a single path element map to "".
func (m *Manager) Path(name string) string {
	if !validName(name) {
		return ""
	}
	return filepath.Join(m.cfg.Path, name)
}

// Info loads the manifest of a theme and fills its derived fields.
// Concurrent calls for the same theme share one read.
func (m *Manager) Info(name string) (*manifest.Manifest, error) {
	if !validName(name) {
		return nil, notFound(name)
	}
	v, err, _ := m.sfg.Do("info:"+name, func() (any, error) {
		dir := m.Path(name)
		info, err := manifest.Load(filepath.Join(dir, manifest.FileName))
		if err != nil {
			return nil, err
		}
		info.Path = dir
		if fsutil.IsFile(filepath.Join(dir, manifest.ScreenshotName)) {
			info.Screenshot = m.urls.Asset(
				fsutil.Rel(m.cfg.PublicPath, m.themeDir(name, dir))+"/"+manifest.ScreenshotName, nil)
		} else {
			info.Screenshot = m.urls.Asset(m.cfg.DefaultScreenshot, nil)
		}
		return info, nil
	})
	if err != nil {
		return nil, err
	}
	cp := *v.(*manifest.Manifest)
	return &cp, nil
}

// ChangeLog returns the parsed changelog.yml of a theme, or nil when the
// theme has none.
func (m *Manager) ChangeLog(name string) (map[string]any, error) {
	if !validName(name) {
		return nil, notFound(name)
	}
	log, err := manifest.LoadChangelog(filepath.Join(m.Path(name), manifest.ChangelogName))
	if errors.Is(err, manifest.ErrNotFound) {
		return nil, nil
	}
	return log, err
}

// All rescans the themes directory.  Directories without a manifest, or
// whose manifest has no name, are skipped.
func (m *Manager) All() (map[string]*manifest.Manifest, error) {
	dirs, err := fsutil.SubDirs(m.cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", m.cfg.Path, err)
	}

	found := make(map[string]*manifest.Manifest, len(dirs))
	for _, dir := range dirs {
		info, err := m.Info(filepath.Base(dir))
		if err != nil {
			if !errors.Is(err, manifest.ErrNotFound) {
				zap.S().Warnw("theme manifest skipped", "dir", dir, "err", err)
			}
			continue
		}
		if info.Name == "" {
			continue
		}
		found[info.Name] = info
	}

	m.mu.Lock()
	m.themes = found
	m.mu.Unlock()

	metrics.ScanTotal.Inc()
	metrics.InstalledThemes.Set(float64(len(found)))
	zap.S().Debugw("themes scanned", "path", m.cfg.Path, "count", len(found))
	return found, nil
}

// List rescans and returns the manifests sorted by name.
func (m *Manager) List() ([]*manifest.Manifest, error) {
	all, err := m.All()
	if err != nil {
		return nil, err
	}
	out := make([]*manifest.Manifest, 0, len(all))
	for _, info := range all {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Get returns the manifest of name from the last scan.  An empty or
// unknown name selects the active theme instead.
func (m *Manager) Get(name string) (*manifest.Manifest, error) {
	if name == "" || !m.Has(name) {
		name = m.Current()
	}
	m.mu.RLock()
	info, ok := m.themes[name]
	m.mu.RUnlock()
	if ok {
		return info, nil
	}
	if name == "" {
		return nil, notFound(name)
	}
	// Not scanned yet: read it directly.
	info, err := m.Info(name)
	if err != nil {
		return nil, notFound(name)
	}
	return info, nil
}

// Set activates a theme for this process: its chain is registered with the
// view finder and translator, and it becomes Current.
func (m *Manager) Set(name string) error {
	if !m.Has(name) {
		metrics.ActivationErrorsTotal.Inc()
		return notFound(name)
	}
	if err := m.load(name, map[string]bool{}); err != nil {
		metrics.ActivationErrorsTotal.Inc()
		return err
	}

	m.mu.Lock()
	m.active = name
	m.mu.Unlock()

	metrics.ActivationTotal.WithLabelValues(name).Inc()
	zap.S().Infow("theme set", "theme", name)
	return nil
}

// load registers name after its parent, so name ends up in front.
func (m *Manager) load(name string, seen map[string]bool) error {
	if name == "" {
		return notFound(name)
	}
	if seen[name] || len(seen) >= maxDepth {
		return fmt.Errorf("%w: %s", ErrParentCycle, name)
	}
	seen[name] = true

	info, err := m.Info(name)
	if err != nil {
		if errors.Is(err, manifest.ErrNotFound) {
			return notFound(name)
		}
		return err
	}
	if info.HasParent() {
		if err := m.load(info.Parent, seen); err != nil {
			return err
		}
	}

	views := filepath.Join(info.Path, "views")
	m.finder.PrependLocation(views)
	m.finder.PrependNamespace(name, views)
	m.lang.AddNamespace(name, filepath.Join(info.Path, "lang"))
	return nil
}

// Current returns the active theme name, "" before Set.
func (m *Manager) Current() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.active
}

// CurrentInfo returns the manifest of the active theme.
func (m *Manager) CurrentInfo() (*manifest.Manifest, error) {
	return m.Info(m.Current())
}

// Boot activates the theme recorded in the store, or fallback when the
// store holds none.  An empty result leaves no theme active.
func (m *Manager) Boot(ctx context.Context, fallback string) error {
	name := fallback
	if m.store != nil {
		stored, err := m.store.Get(ctx, store.KeyActivatedTheme)
		if err != nil {
			return fmt.Errorf("read activated theme: %w", err)
		}
		if stored != "" {
			name = stored
		}
	}
	if name == "" {
		zap.S().Warnw("no theme to boot", "path", m.cfg.Path)
		return nil
	}
	return m.Set(name)
}

// Render executes a view of the active chain.
func (m *Manager) Render(w io.Writer, name string, data any) error {
	return m.renderer.Render(w, name, data)
}

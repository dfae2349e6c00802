// internal/view/render.go
//
// Template renderer on top of Finder.
//
// Lookup and parsing
// ------------------
//   - The requested view is resolved through the Finder.
//   - Every `layouts/*.html` below each location is parsed first, lowest
//     precedence first, so a child theme's `master.html` replaces its
//     parent's.
//   - The view file is parsed last so its `{{ define }}` blocks override
//     the `{{ block }}` defaults of the layout.
//   - The set executes the template named after the view's file.
//
// Parsed sets live in an LRU keyed on file path plus finder version.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/AdeptTravel/adept-theme/internal/cache"
	"github.com/AdeptTravel/adept-theme/internal/fsutil"
)

// CacheSize bounds the number of parsed template sets.
const CacheSize = 256

// Renderer is safe for concurrent use.
type Renderer struct {
	finder *Finder

	mu    sync.RWMutex
	funcs template.FuncMap

	sets *cache.LRU[string, *template.Template]
}

// NewRenderer returns a Renderer resolving views through f.
func NewRenderer(f *Finder) *Renderer {
	return &Renderer{
		finder: f,
		funcs:  template.FuncMap{"dict": dict},
		sets:   cache.New[string, *template.Template](CacheSize),
	}
}

// Finder exposes the underlying finder.
func (r *Renderer) Finder() *Finder { return r.finder }

// Funcs merges fm into the helper map.  Cached sets are dropped because
// they captured the previous map.
func (r *Renderer) Funcs(fm template.FuncMap) {
	r.mu.Lock()
	for k, v := range fm {
		r.funcs[k] = v
	}
	r.mu.Unlock()
	r.sets.Purge()
}

// Render executes view name into w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	path, err := r.finder.Find(name)
	if err != nil {
		return err
	}
	t, err := r.load(path)
	if err != nil {
		return err
	}
	return t.ExecuteTemplate(w, filepath.Base(path), data)
}

// RenderToString returns the rendered view as safe HTML.
func (r *Renderer) RenderToString(name string, data any) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.Render(&buf, name, data); err != nil {
		return "", err
	}
	return template.HTML(buf.String()), nil
}

func (r *Renderer) load(path string) (*template.Template, error) {
	key := path + "@" + strconv.FormatUint(r.finder.Version(), 10)
	if t, ok := r.sets.Get(key); ok {
		return t, nil
	}

	r.mu.RLock()
	t := template.New(filepath.Base(path)).Funcs(r.funcs)
	r.mu.RUnlock()

	locs := r.finder.Locations()
	for i := len(locs) - 1; i >= 0; i-- {
		files, err := fsutil.CollectHTML(filepath.Join(locs[i], "layouts"))
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("collect layouts in %s: %w", locs[i], err)
		}
		if len(files) == 0 {
			continue
		}
		if _, err := t.ParseFiles(files...); err != nil {
			return nil, fmt.Errorf("parse layouts in %s: %w", locs[i], err)
		}
	}

	if _, err := t.ParseFiles(path); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	r.sets.Add(key, t)
	return t, nil
}

// dict builds a map in templates: {{ dict "k" 1 "k2" "v" }}.
func dict(kv ...any) map[string]any {
	m := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		key, _ := kv[i].(string)
		m[key] = kv[i+1]
	}
	return m
}

// internal/view/finder.go
//
// View finder: turns a logical view name into a file on disk.
//
// Context
// -------
// A name is either plain (`layouts.master`) or namespaced
// (`ocean::layouts.master`).  Dots map to directory separators and the
// `.html` extension is appended, so both forms end up as
// `<dir>/layouts/master.html`.
//
// Plain names are searched through the ordered location list.  Namespaced
// names are searched only through the directories registered for that
// namespace.  First hit wins in both cases.
//
// Activating a theme prepends its views directory (and its parent's, one
// step earlier) so theme files shadow whatever the application ships.
//
// Notes
// -----
// • Every mutation bumps Version; the renderer keys its cache on it.
package view

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Ext is the file extension of every view.
const Ext = ".html"

// HintDelimiter separates a namespace from the view name.
const HintDelimiter = "::"

// ErrNotFound wraps every failed lookup.
var ErrNotFound = errors.New("view not found")

// Finder is safe for concurrent use.
type Finder struct {
	mu        sync.RWMutex
	locations []string
	hints     map[string][]string
	version   uint64
}

// NewFinder returns a Finder seeded with the given locations, highest
// precedence first.
func NewFinder(locations ...string) *Finder {
	return &Finder{
		locations: append([]string(nil), locations...),
		hints:     make(map[string][]string),
	}
}

// AddLocation appends a directory with the lowest precedence.
func (f *Finder) AddLocation(dir string) {
	f.mu.Lock()
	f.locations = append(f.locations, dir)
	f.version++
	f.mu.Unlock()
}

// PrependLocation moves dir to the highest precedence, dropping any earlier
// occurrence so repeated activations do not grow the search path.
func (f *Finder) PrependLocation(dir string) {
	f.mu.Lock()
	f.locations = append([]string{dir}, without(f.locations, dir)...)
	f.version++
	f.mu.Unlock()
}

// AddNamespace appends directories to a namespace.
func (f *Finder) AddNamespace(ns string, dirs ...string) {
	f.mu.Lock()
	f.hints[ns] = append(f.hints[ns], dirs...)
	f.version++
	f.mu.Unlock()
}

// PrependNamespace inserts directories in front of a namespace.
func (f *Finder) PrependNamespace(ns string, dirs ...string) {
	f.mu.Lock()
	rest := f.hints[ns]
	for _, d := range dirs {
		rest = without(rest, d)
	}
	f.hints[ns] = append(append([]string(nil), dirs...), rest...)
	f.version++
	f.mu.Unlock()
}

// Locations returns a copy of the search path.
func (f *Finder) Locations() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.locations...)
}

// Namespace returns a copy of the directories registered for ns.
func (f *Finder) Namespace(ns string) []string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]string(nil), f.hints[ns]...)
}

// Version changes whenever the search path does.
func (f *Finder) Version() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.version
}

// Find resolves name to an existing file.
func (f *Finder) Find(name string) (string, error) {
	ns, rel := parseName(name)

	f.mu.RLock()
	dirs := f.locations
	if ns != "" {
		dirs = f.hints[ns]
	}
	dirs = append([]string(nil), dirs...)
	f.mu.RUnlock()

	if ns != "" && len(dirs) == 0 {
		return "", fmt.Errorf("%w: no hint path defined for [%s]", ErrNotFound, ns)
	}

	for _, dir := range dirs {
		p := filepath.Join(dir, rel)
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Exists reports whether name resolves.
func (f *Finder) Exists(name string) bool {
	_, err := f.Find(name)
	return err == nil
}

func without(list []string, drop string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s != drop {
			out = append(out, s)
		}
	}
	return out
}

// parseName splits `ns::a.b` into ("ns", "a/b.html").
func parseName(name string) (ns, rel string) {
	if before, after, ok := strings.Cut(name, HintDelimiter); ok {
		ns, name = before, after
	}
	name = strings.TrimSuffix(name, Ext)
	rel = filepath.FromSlash(strings.ReplaceAll(name, ".", "/")) + Ext
	return ns, rel
}

// Package lang is a small namespaced translator.
//
// Keys look like `ns::group.item`.  The namespace selects a directory
// registered with AddNamespace; without a namespace the default directory
// is used.  Inside the directory, `<locale>/<group>.yaml` (or .yml, .json)
// holds the lines, nested maps addressed with dots.  A key missing in the
// current locale is retried in the fallback locale, and when both miss the
// key itself is returned.
//
// Lines may carry `:placeholder` tokens, filled from the replace map in
// three casings: `:name`, `:Name`, and `:NAME`.
package lang

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// Delimiter separates a namespace from the rest of a key.
const Delimiter = "::"

var extensions = []string{".yaml", ".yml", ".json"}

// Translator is safe for concurrent use.
type Translator struct {
	mu       sync.RWMutex
	locale   string
	fallback string
	dir      string            // default namespace
	hints    map[string]string // namespace → directory
	loaded   map[string]map[string]string
}

// New returns a Translator.  dir is the default namespace directory and may
// be empty.
func New(locale, fallback, dir string) *Translator {
	return &Translator{
		locale:   locale,
		fallback: fallback,
		dir:      dir,
		hints:    make(map[string]string),
		loaded:   make(map[string]map[string]string),
	}
}

// AddNamespace registers (or replaces) the directory for ns.
func (t *Translator) AddNamespace(ns, dir string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hints[ns] = dir
	for k := range t.loaded {
		if strings.HasPrefix(k, ns+"|") {
			delete(t.loaded, k)
		}
	}
}

// Namespaces returns a copy of the namespace table.
func (t *Translator) Namespaces() map[string]string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[string]string, len(t.hints))
	for k, v := range t.hints {
		out[k] = v
	}
	return out
}

// Locale returns the current locale.
func (t *Translator) Locale() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.locale
}

// SetLocale switches the current locale.
func (t *Translator) SetLocale(locale string) {
	t.mu.Lock()
	t.locale = locale
	t.mu.Unlock()
}

// Has reports whether key translates in the current or fallback locale.
func (t *Translator) Has(key string) bool {
	_, ok := t.lookup(key)
	return ok
}

// Get translates key, returning key itself when no line exists.
func (t *Translator) Get(key string, replace map[string]string) string {
	line, ok := t.lookup(key)
	if !ok {
		return key
	}
	return makeReplacements(line, replace)
}

func (t *Translator) lookup(key string) (string, bool) {
	ns, group, item := parseKey(key)
	if group == "" || item == "" {
		return "", false
	}

	t.mu.RLock()
	locales := []string{t.locale}
	if t.fallback != "" && t.fallback != t.locale {
		locales = append(locales, t.fallback)
	}
	t.mu.RUnlock()

	for _, loc := range locales {
		lines := t.group(ns, loc, group)
		if line, ok := lines[item]; ok {
			return line, true
		}
	}
	return "", false
}

// group returns the flattened lines of one file, loading it once.
func (t *Translator) group(ns, locale, group string) map[string]string {
	cacheKey := ns + "|" + locale + "|" + group

	t.mu.RLock()
	lines, ok := t.loaded[cacheKey]
	dir := t.dir
	if ns != "" {
		dir = t.hints[ns]
	}
	t.mu.RUnlock()
	if ok {
		return lines
	}

	lines = map[string]string{}
	if dir != "" {
		lines = loadGroup(filepath.Join(dir, locale), group)
	}

	t.mu.Lock()
	t.loaded[cacheKey] = lines
	t.mu.Unlock()
	return lines
}

func loadGroup(dir, group string) map[string]string {
	lines := map[string]string{}
	for _, ext := range extensions {
		p := filepath.Join(dir, group+ext)
		if _, err := os.Stat(p); err != nil {
			continue
		}
		k := koanf.New(".")
		if err := k.Load(file.Provider(p), yaml.Parser()); err != nil {
			zap.S().Warnw("language file unreadable", "file", p, "err", err)
			continue
		}
		for key, val := range k.All() {
			lines[key] = fmt.Sprint(val)
		}
		break
	}
	return lines
}

// parseKey splits `ns::group.item.sub` into ("ns", "group", "item.sub").
func parseKey(key string) (ns, group, item string) {
	if before, after, ok := strings.Cut(key, Delimiter); ok {
		ns, key = before, after
	}
	group, item, _ = strings.Cut(key, ".")
	return ns, group, item
}

func makeReplacements(line string, replace map[string]string) string {
	if len(replace) == 0 {
		return line
	}
	// Longest keys first so `:name` never eats the prefix of `:names`.
	keys := make([]string, 0, len(replace))
	for k := range replace {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return len(keys[i]) > len(keys[j]) })

	pairs := make([]string, 0, len(keys)*6)
	for _, k := range keys {
		v := replace[k]
		pairs = append(pairs,
			":"+strings.ToUpper(k), strings.ToUpper(v),
			":"+upperFirst(k), upperFirst(v),
			":"+k, v,
		)
	}
	return strings.NewReplacer(pairs...).Replace(line)
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

//
//  internal/theme/helper.go
//
//  Template functions exposing the active theme to views with short,
//  ergonomic names:
//
//	{{ asset "css/app.css" }}          → /themes/ocean/assets/css/app.css
//	{{ asset "base:img/logo.png" }}    → explicit theme
//	{{ mix "js/app.js" }}              → versioned URL
//	{{ lang "content.welcome" }}       → current, then parent namespace
//	{{ lang "content.hi" "name" .N }}  → with :name replacement
//	{{ theme }} / {{ themeInfo }}      → active name / manifest
//

package theme

import (
	"html/template"

	"github.com/AdeptTravel/adept-theme/internal/manifest"
)

// FuncMap returns the helpers bound to this manager.
func (m *Manager) FuncMap() template.FuncMap {
	return template.FuncMap{
		"asset": func(p string) (string, error) {
			return m.Asset(p, nil)
		},
		"mix": func(p string, manifestDir ...string) (string, error) {
			dir := ""
			if len(manifestDir) > 0 {
				dir = manifestDir[0]
			}
			return m.Mix(p, dir)
		},
		"lang": func(key string, pairs ...string) string {
			return m.Lang(key, pairsToMap(pairs))
		},
		"theme": func() string {
			return m.Current()
		},
		"themeInfo": func() (*manifest.Manifest, error) {
			return m.CurrentInfo()
		},
	}
}

// pairsToMap turns "k1", "v1", "k2", "v2" into a map; a dangling key is
// dropped.
func pairsToMap(pairs []string) map[string]string {
	if len(pairs) < 2 {
		return nil
	}
	out := make(map[string]string, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out[pairs[i]] = pairs[i+1]
	}
	return out
}

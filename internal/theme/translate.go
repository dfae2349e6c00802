package theme

import (
	"strings"

	"github.com/AdeptTravel/adept-theme/internal/lang"
)

// Lang translates key for the active theme.
//
// `ns::key` is passed through, `::key` drops the namespace, and a bare key
// is tried as `<current>::key`, then as `<parent>::key` when the active
// theme lacks it.
func (m *Manager) Lang(key string, replace map[string]string) string {
	if before, after, ok := strings.Cut(key, lang.Delimiter); ok {
		if before == "" {
			key = after
		}
		return m.lang.Get(key, replace)
	}

	current := m.Current()
	scoped := current + lang.Delimiter + key
	if !m.lang.Has(scoped) {
		if info, err := m.Info(current); err == nil && info.HasParent() {
			scoped = info.Parent + lang.Delimiter + key
		}
	}
	return m.lang.Get(scoped, replace)
}

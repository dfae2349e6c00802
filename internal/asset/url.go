// Package asset builds public URLs for theme files.
//
// Generator prefixes a public path with the configured base URL (or "/"
// when none is set) and can force https.  Mix resolves versioned file names
// through a `mix-manifest.json` produced by the front-end build.
package asset

import (
	"net/url"
	"strings"
)

// Generator is immutable after construction.
type Generator struct {
	base   *url.URL
	secure bool
}

// NewGenerator parses baseURL (may be empty).  secure forces https for
// every URL unless a call overrides it.
func NewGenerator(baseURL string, secure bool) (*Generator, error) {
	g := &Generator{secure: secure}
	if baseURL != "" {
		u, err := url.Parse(strings.TrimRight(baseURL, "/"))
		if err != nil {
			return nil, err
		}
		g.base = u
	}
	return g, nil
}

// Asset returns the URL of a public path.  Absolute URLs pass through.
// secure, when non-nil, overrides the generator default.
func (g *Generator) Asset(path string, secure *bool) string {
	if isValidURL(path) {
		return path
	}
	path = "/" + strings.TrimLeft(strings.ReplaceAll(path, "\\", "/"), "/")

	useTLS := g.secure
	if secure != nil {
		useTLS = *secure
	}

	if g.base == nil {
		return path
	}
	u := *g.base
	switch {
	case useTLS:
		u.Scheme = "https"
	case secure != nil && u.Scheme == "https":
		u.Scheme = "http"
	}
	return u.String() + path
}

// Bool is a helper for Asset's optional secure argument.
func Bool(b bool) *bool { return &b }

func isValidURL(p string) bool {
	for _, prefix := range []string{"http://", "https://", "//", "mailto:", "tel:", "#"} {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

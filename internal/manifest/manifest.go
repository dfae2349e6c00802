// Package manifest reads the per-theme metadata files.
//
// Every theme directory carries a `theme.json` describing it and may carry a
// `changelog.yml`.  Both are parsed with Koanf's YAML parser: JSON is a
// subset of YAML, so a manifest may be written in either syntax regardless
// of its extension.
package manifest

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/AdeptTravel/adept-theme/internal/config"
)

// File names looked up inside a theme directory.
const (
	FileName       = "theme.json"
	ChangelogName  = "changelog.yml"
	ScreenshotName = "screenshot.png"
)

// ErrNotFound is returned when a theme directory has no manifest.
var ErrNotFound = errors.New("theme manifest not found")

// Manifest mirrors theme.json.  Path and Screenshot are derived by the
// theme manager after loading.
type Manifest struct {
	Name        string `koanf:"name"        json:"name"`
	Title       string `koanf:"title"       json:"title"`
	Description string `koanf:"description" json:"description"`
	Author      string `koanf:"author"      json:"author"`
	Version     string `koanf:"version"     json:"version"`
	Parent      string `koanf:"parent"      json:"parent"      validate:"omitempty,excludesall=/\\"`

	Path       string `koanf:"-" json:"path"`
	Screenshot string `koanf:"-" json:"screenshot"`

	// Extra keeps every key of the file, known or not.
	Extra map[string]any `koanf:"-" json:"-"`
}

// HasParent reports whether a non-empty parent theme is declared.
func (m *Manifest) HasParent() bool { return m != nil && m.Parent != "" }

// All flattens the manifest into a map including derived and unknown keys.
func (m *Manifest) All() map[string]any {
	out := make(map[string]any, len(m.Extra)+8)
	for k, v := range m.Extra {
		out[k] = v
	}
	out["name"] = m.Name
	out["title"] = m.Title
	out["description"] = m.Description
	out["author"] = m.Author
	out["version"] = m.Version
	out["parent"] = m.Parent
	out["path"] = m.Path
	out["screenshot"] = m.Screenshot
	return out
}

// Load parses the manifest at path.  Names are free-form; only a parent
// containing a path separator is rejected, since it can never name a
// sibling directory.
func Load(path string) (*Manifest, error) {
	k, err := read(path)
	if err != nil {
		return nil, err
	}

	var m Manifest
	if err := k.Unmarshal("", &m); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := config.Validator().Struct(&m); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	m.Extra = k.Raw()
	return &m, nil
}

// LoadChangelog returns the changelog document as a plain map.  Version
// keys contain dots, so it is decoded directly rather than through Koanf,
// which would split them into nested maps.
func LoadChangelog(path string) (map[string]any, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	out := map[string]any{}
	if err := yamlv3.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, nil
}

func read(path string) (*koanf.Koanf, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return k, nil
}

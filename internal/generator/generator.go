// Package generator scaffolds a new theme from stub files.
//
// Stubs carry bracketed tokens such as `[NAME]` and `[TITLE]`, replaced in a
// single pass with the answers gathered from the user.  The default stubs
// are embedded; a directory may be supplied to override them.  A stub that
// is missing from the set is skipped, so an override directory may ship a
// subset.
package generator

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/AdeptTravel/adept-theme/internal/config"
	"github.com/AdeptTravel/adept-theme/internal/fsutil"
	"github.com/AdeptTravel/adept-theme/internal/metrics"
)

//go:embed stubs/*.stub
var embedded embed.FS

// ErrThemeExists is returned when the target directory is already present.
var ErrThemeExists = errors.New("theme folder already exists")

// DefaultVersion is used when the version answer is blank.
const DefaultVersion = "1.0.0"

// Folders created inside every new theme.
var Folders = []string{
	"assets",
	"views",
	"lang",
	"lang/en",
	"assets/css",
	"assets/js",
	"assets/images",
	"views/layouts",
}

// StubFile maps one stub to its destination inside the theme.
type StubFile struct {
	Stub string
	Dest string
}

// Files lists the stubs copied into every new theme, in order.
var Files = []StubFile{
	{Stub: "css", Dest: "assets/css/app.css"},
	{Stub: "layout", Dest: "views/layouts/master.html"},
	{Stub: "page", Dest: "views/welcome.html"},
	{Stub: "lang", Dest: "lang/en/content.yaml"},
	{Stub: "theme", Dest: "theme.json"},
	{Stub: "changelog", Dest: "changelog.yml"},
}

// Answers describe the theme being generated.
type Answers struct {
	Name        string `validate:"required,themename"`
	Title       string `validate:"required"`
	Description string
	Author      string
	Version     string
	Parent      string `validate:"omitempty,themename"`
}

// Generator writes new themes below a themes directory.
type Generator struct {
	themesPath   string
	assetsFolder string
	stubs        fs.FS
}

// New returns a Generator.  stubDir may be empty to use the embedded stubs.
func New(themesPath, assetsFolder, stubDir string) (*Generator, error) {
	var stubs fs.FS
	if stubDir == "" {
		sub, err := fs.Sub(embedded, "stubs")
		if err != nil {
			return nil, err
		}
		stubs = sub
	} else {
		if !fsutil.IsDir(stubDir) {
			return nil, fmt.Errorf("stub directory %s does not exist", stubDir)
		}
		stubs = os.DirFS(stubDir)
	}
	if assetsFolder == "" {
		assetsFolder = "assets"
	}
	return &Generator{themesPath: themesPath, assetsFolder: assetsFolder, stubs: stubs}, nil
}

// Target returns the directory a theme named name would be written to.
func (g *Generator) Target(name string) string {
	return filepath.Join(g.themesPath, strings.ToLower(name))
}

// Exists reports whether a theme named name is already present.
func (g *Generator) Exists(name string) bool {
	return fsutil.IsDir(g.Target(name))
}

// Generate creates the theme directory, its folders, and its stub files,
// returning the directory.  Nothing is written when it already exists.
func (g *Generator) Generate(a Answers) (string, error) {
	a = a.normalize()
	if err := config.Validator().Struct(&a); err != nil {
		return "", fmt.Errorf("invalid theme answers: %w", err)
	}

	dir := g.Target(a.Name)
	if fsutil.IsDir(dir) {
		return "", fmt.Errorf("%w: %s", ErrThemeExists, dir)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := g.populate(dir, a); err != nil {
		// A half-written theme would block every retry with ErrThemeExists.
		if rmErr := os.RemoveAll(dir); rmErr != nil {
			zap.S().Warnw("partial theme not removed", "path", dir, "err", rmErr)
		}
		return "", err
	}

	metrics.GeneratedTotal.Inc()
	zap.S().Infow("theme generated", "theme", a.Name, "path", dir)
	return dir, nil
}

// populate writes the folders and stub files of a new theme into dir.
func (g *Generator) populate(dir string, a Answers) error {
	for _, f := range Folders {
		if err := os.MkdirAll(filepath.Join(dir, filepath.FromSlash(f)), 0o755); err != nil {
			return err
		}
	}

	tokens := g.tokens(a)
	for _, f := range Files {
		raw, err := fs.ReadFile(g.stubs, f.Stub+".stub")
		if errors.Is(err, fs.ErrNotExist) {
			zap.S().Debugw("stub missing, skipped", "stub", f.Stub)
			continue
		}
		if err != nil {
			return fmt.Errorf("read stub %s: %w", f.Stub, err)
		}
		out := Replace(string(raw), tokens, escaperFor(f.Dest))
		dest := filepath.Join(dir, filepath.FromSlash(f.Dest))
		if err := os.WriteFile(dest, []byte(out), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", dest, err)
		}
	}
	return nil
}

// tokens builds the placeholder table.  CSSNAME and JSNAME are the
// destinations of the css and js stubs relative to the assets folder.
func (g *Generator) tokens(a Answers) map[string]string {
	t := map[string]string{
		"NAME":        a.Name,
		"TITLE":       a.Title,
		"DESCRIPTION": a.Description,
		"AUTHOR":      a.Author,
		"PARENT":      a.Parent,
		"VERSION":     a.Version,
		"CSSNAME":     "",
		"JSNAME":      "",
	}
	prefix := strings.TrimRight(g.assetsFolder, "/") + "/"
	for _, f := range Files {
		switch f.Stub {
		case "css":
			t["CSSNAME"] = strings.TrimPrefix(f.Dest, prefix)
		case "js":
			t["JSNAME"] = strings.TrimPrefix(f.Dest, prefix)
		}
	}
	return t
}

func (a Answers) normalize() Answers {
	a.Name = strings.ToLower(strings.TrimSpace(a.Name))
	a.Parent = strings.ToLower(strings.TrimSpace(a.Parent))
	a.Title = strings.TrimSpace(a.Title)
	a.Description = strings.TrimSpace(a.Description)
	a.Author = strings.TrimSpace(a.Author)
	a.Version = strings.TrimSpace(a.Version)
	if a.Version == "" {
		a.Version = DefaultVersion
	}
	return a
}

// Replace substitutes `[KEY]` tokens in one pass.  Unknown tokens stay.
// escape, when non-nil, is applied to every value.
func Replace(contents string, tokens map[string]string, escape func(string) string) string {
	pairs := make([]string, 0, len(tokens)*2)
	for k, v := range tokens {
		if escape != nil {
			v = escape(v)
		}
		pairs = append(pairs, "["+k+"]", v)
	}
	return strings.NewReplacer(pairs...).Replace(contents)
}

// escaperFor keeps generated files parseable.  JSON and YAML values land
// inside double-quoted strings; HTML values become text that html/template
// will not read as an action.
func escaperFor(dest string) func(string) string {
	switch path.Ext(dest) {
	case ".json", ".yml", ".yaml":
		return jsonEscape
	case ".html":
		return htmlEscape
	}
	return nil
}

// htmlEscape escapes markup and splits template delimiters with an
// entity, which browsers render as the original braces.
func htmlEscape(s string) string {
	s = html.EscapeString(s)
	s = strings.ReplaceAll(s, "{{", "&#123;&#123;")
	return strings.ReplaceAll(s, "}}", "&#125;&#125;")
}

func jsonEscape(s string) string {
	b, _ := json.Marshal(s)
	return string(b[1 : len(b)-1])
}

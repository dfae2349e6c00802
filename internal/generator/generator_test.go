package generator

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AdeptTravel/adept-theme/internal/config"
	"github.com/AdeptTravel/adept-theme/internal/manifest"
	"github.com/AdeptTravel/adept-theme/internal/theme"
)

func TestGenerateCreatesStructure(t *testing.T) {
	themes := t.TempDir()
	g, err := New(themes, "assets", "")
	require.NoError(t, err)

	dir, err := g.Generate(Answers{
		Name:        "Ocean",
		Title:       `Ocean "Blue"`,
		Description: "Sea Things",
		Author:      "Jane Doe",
		Parent:      "Base",
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(themes, "ocean"), dir)

	for _, f := range Folders {
		assert.DirExists(t, filepath.Join(dir, filepath.FromSlash(f)))
	}
	for _, f := range Files {
		assert.FileExists(t, filepath.Join(dir, filepath.FromSlash(f.Dest)))
	}

	m, err := manifest.Load(filepath.Join(dir, manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, "ocean", m.Name)
	assert.Equal(t, `Ocean "Blue"`, m.Title)
	assert.Equal(t, "base", m.Parent)
	assert.Equal(t, DefaultVersion, m.Version)
	assert.Equal(t, "css/app.css", m.All()["css"])
	assert.Equal(t, "", m.All()["js"])

	layout, err := os.ReadFile(filepath.Join(dir, "views", "layouts", "master.html"))
	require.NoError(t, err)
	assert.Contains(t, string(layout), `{{ asset "css/app.css" }}`)
	assert.NotContains(t, string(layout), "[")

	log, err := manifest.LoadChangelog(filepath.Join(dir, manifest.ChangelogName))
	require.NoError(t, err)
	assert.Contains(t, log, DefaultVersion)
}

func TestGenerateRefusesExisting(t *testing.T) {
	themes := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(themes, "ocean"), 0o755))

	g, err := New(themes, "assets", "")
	require.NoError(t, err)
	assert.True(t, g.Exists("OCEAN"))

	_, err = g.Generate(Answers{Name: "ocean", Title: "Ocean"})
	assert.True(t, errors.Is(err, ErrThemeExists))
	entries, _ := os.ReadDir(filepath.Join(themes, "ocean"))
	assert.Empty(t, entries)
}

func TestGenerateRejectsBadNames(t *testing.T) {
	g, err := New(t.TempDir(), "assets", "")
	require.NoError(t, err)

	_, err = g.Generate(Answers{Name: "../escape", Title: "X"})
	assert.Error(t, err)
	_, err = g.Generate(Answers{Name: "ok", Title: ""})
	assert.Error(t, err)
}

func TestGenerateWithStubOverride(t *testing.T) {
	stubs := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(stubs, "css.stub"), []byte("/* [NAME] [UNKNOWN] */"), 0o644))

	g, err := New(t.TempDir(), "assets", stubs)
	require.NoError(t, err)
	dir, err := g.Generate(Answers{Name: "mini", Title: "Mini"})
	require.NoError(t, err)

	css, err := os.ReadFile(filepath.Join(dir, "assets", "css", "app.css"))
	require.NoError(t, err)
	assert.Equal(t, "/* mini [UNKNOWN] */", string(css))
	assert.NoFileExists(t, filepath.Join(dir, "theme.json"))

	_, err = New(t.TempDir(), "assets", filepath.Join(stubs, "missing"))
	assert.Error(t, err)
}

func TestReplace(t *testing.T) {
	got := Replace("[A]-[B]-[A]-[C]", map[string]string{"A": "1", "B": "[A]"}, nil)
	assert.Equal(t, "1-[A]-1-[C]", got)
	assert.Equal(t, `a\"b`, jsonEscape(`a"b`))
}

func TestGather(t *testing.T) {
	in := strings.NewReader(strings.Join([]string{
		"",           // title left blank once
		"Ocean",      // title
		"sea THINGS", // description
		"jane doe",   // author
		"",           // version → default
		"y",          // parent?
		"BASE",       // parent name
	}, "\n") + "\n")
	var out strings.Builder

	a, err := Gather(NewLinePrompter(in, &out), "Ocean")
	require.NoError(t, err)
	assert.Equal(t, Answers{
		Name:        "ocean",
		Title:       "Ocean",
		Description: "Sea Things",
		Author:      "Jane Doe",
		Version:     DefaultVersion,
		Parent:      "base",
	}, a)
	assert.Contains(t, out.String(), "What is theme title?")
}

func TestGatherNoParent(t *testing.T) {
	in := strings.NewReader("Forest\n\n\n2.0.0\nn\n")
	a, err := Gather(NewLinePrompter(in, &strings.Builder{}), "forest")
	require.NoError(t, err)
	assert.Equal(t, "2.0.0", a.Version)
	assert.Empty(t, a.Parent)
	assert.Empty(t, a.Author)
}

// A freshly generated child of a generated parent activates and renders.
func TestGeneratedThemeRenders(t *testing.T) {
	root := t.TempDir()
	themes := filepath.Join(root, "themes")
	g, err := New(themes, "assets", "")
	require.NoError(t, err)

	_, err = g.Generate(Answers{Name: "base", Title: "Base", Description: "The Base"})
	require.NoError(t, err)
	_, err = g.Generate(Answers{Name: "child", Title: "Child", Parent: "base"})
	require.NoError(t, err)

	m, err := theme.New(config.Theme{
		Path:           themes,
		PublicPath:     root,
		AssetsFolder:   "assets",
		Locale:         "en",
		FallbackLocale: "en",
	}, theme.Deps{})
	require.NoError(t, err)
	require.NoError(t, m.Set("child"))

	var sb strings.Builder
	require.NoError(t, m.Render(&sb, "welcome", nil))
	out := sb.String()
	assert.Contains(t, out, "<title>Child</title>")
	assert.Contains(t, out, "Welcome to Child")
	assert.Contains(t, out, `href="/themes/child/assets/css/app.css"`)
}

func TestGenerateRemovesPartialTheme(t *testing.T) {
	stubs := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(stubs, "css.stub"), []byte("[NAME]"), 0o644))
	// A directory where a stub file is expected makes the read fail midway.
	require.NoError(t, os.MkdirAll(filepath.Join(stubs, "layout.stub"), 0o755))

	themes := t.TempDir()
	g, err := New(themes, "assets", stubs)
	require.NoError(t, err)

	_, err = g.Generate(Answers{Name: "half", Title: "Half"})
	require.Error(t, err)
	assert.NoDirExists(t, filepath.Join(themes, "half"))
	assert.False(t, g.Exists("half"))

	require.NoError(t, os.Remove(filepath.Join(stubs, "layout.stub")))
	_, err = g.Generate(Answers{Name: "half", Title: "Half"})
	require.NoError(t, err)
}

func TestGenerateEscapesHTMLValues(t *testing.T) {
	root := t.TempDir()
	themes := filepath.Join(root, "themes")
	g, err := New(themes, "assets", "")
	require.NoError(t, err)

	_, err = g.Generate(Answers{Name: "odd", Title: `{{ .Secret }} <b>&</b>`})
	require.NoError(t, err)

	m, err := theme.New(config.Theme{
		Path:           themes,
		PublicPath:     root,
		AssetsFolder:   "assets",
		Locale:         "en",
		FallbackLocale: "en",
	}, theme.Deps{})
	require.NoError(t, err)
	require.NoError(t, m.Set("odd"))

	var sb strings.Builder
	require.NoError(t, m.Render(&sb, "welcome", nil))
	out := sb.String()
	assert.Contains(t, out, "<title>&#123;&#123; .Secret &#125;&#125; &lt;b&gt;&amp;&lt;/b&gt;</title>")
	assert.NotContains(t, out, "<b>")

	info, err := manifest.Load(filepath.Join(themes, "odd", manifest.FileName))
	require.NoError(t, err)
	assert.Equal(t, `{{ .Secret }} <b>&</b>`, info.Title)
}

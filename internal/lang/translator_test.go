package lang

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func put(t *testing.T, root, rel, body string) {
	t.Helper()
	p := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
}

func TestParseKey(t *testing.T) {
	ns, g, i := parseKey("ocean::content.menu.home")
	assert.Equal(t, []string{"ocean", "content", "menu.home"}, []string{ns, g, i})

	ns, g, i = parseKey("content")
	assert.Equal(t, []string{"", "content", ""}, []string{ns, g, i})
}

func TestNamespacedLookupWithFallbackLocale(t *testing.T) {
	dir := t.TempDir()
	put(t, dir, "en/content.yaml", "welcome: Welcome\nmenu:\n  home: Home\n")
	put(t, dir, "fr/content.json", `{"welcome": "Bienvenue"}`)

	tr := New("fr", "en", "")
	tr.AddNamespace("ocean", dir)

	assert.Equal(t, "Bienvenue", tr.Get("ocean::content.welcome", nil))
	assert.Equal(t, "Home", tr.Get("ocean::content.menu.home", nil))
	assert.True(t, tr.Has("ocean::content.menu.home"))
	assert.False(t, tr.Has("ocean::content.missing"))
	assert.Equal(t, "ocean::content.missing", tr.Get("ocean::content.missing", nil))
	assert.False(t, tr.Has("forest::content.welcome"))
}

func TestDefaultNamespace(t *testing.T) {
	dir := t.TempDir()
	put(t, dir, "en/messages.yml", "hi: Hi there\n")

	tr := New("en", "", dir)
	assert.Equal(t, "Hi there", tr.Get("messages.hi", nil))
}

func TestReplacements(t *testing.T) {
	dir := t.TempDir()
	put(t, dir, "en/content.yaml", `greet: "Hello :name, :NAME, :Name and :names"`+"\n")

	tr := New("en", "en", dir)
	got := tr.Get("content.greet", map[string]string{"name": "ann", "names": "all"})
	assert.Equal(t, "Hello ann, ANN, Ann and all", got)
}

func TestReplacementsNonASCII(t *testing.T) {
	dir := t.TempDir()
	put(t, dir, "en/content.yaml", `greet: "Hello :Name / :name / :NAME"`+"\n")

	tr := New("en", "en", dir)
	got := tr.Get("content.greet", map[string]string{"name": "élodie"})
	assert.Equal(t, "Hello Élodie / élodie / ÉLODIE", got)
}

func TestAddNamespaceResetsCache(t *testing.T) {
	a, b := t.TempDir(), t.TempDir()
	put(t, a, "en/content.yaml", "x: A\n")
	put(t, b, "en/content.yaml", "x: B\n")

	tr := New("en", "", "")
	tr.AddNamespace("ns", a)
	assert.Equal(t, "A", tr.Get("ns::content.x", nil))
	tr.AddNamespace("ns", b)
	assert.Equal(t, "B", tr.Get("ns::content.x", nil))
	assert.Equal(t, map[string]string{"ns": b}, tr.Namespaces())
}

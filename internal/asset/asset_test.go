package asset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorAsset(t *testing.T) {
	g, err := NewGenerator("", false)
	require.NoError(t, err)
	assert.Equal(t, "/themes/ocean/assets/app.css", g.Asset("themes/ocean/assets/app.css", nil))
	assert.Equal(t, "https://cdn.example/x.js", g.Asset("https://cdn.example/x.js", nil))

	g, err = NewGenerator("http://example.test/", false)
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/a.css", g.Asset("/a.css", nil))
	assert.Equal(t, "https://example.test/a.css", g.Asset("a.css", Bool(true)))

	g, err = NewGenerator("http://example.test", true)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/a.css", g.Asset("a.css", nil))
	assert.Equal(t, "http://example.test/a.css", g.Asset("a.css", Bool(false)))

	g, err = NewGenerator("https://example.test", false)
	require.NoError(t, err)
	assert.Equal(t, "https://example.test/a.css", g.Asset("a.css", nil))
	assert.Equal(t, "http://example.test/a.css", g.Asset("a.css", Bool(false)))
}

func TestMixResolve(t *testing.T) {
	public := t.TempDir()
	dir := filepath.Join(public, "build")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mix-manifest.json"),
		[]byte(`{"/css/app.css": "/css/app.css?id=abc"}`), 0o644))

	m := NewMix(public)
	got, err := m.Resolve("css/app.css", "build")
	require.NoError(t, err)
	assert.Equal(t, "/build/css/app.css?id=abc", got)

	_, err = m.Resolve("css/none.css", "build")
	assert.True(t, errors.Is(err, ErrMixNotFound))

	_, err = m.Resolve("css/app.css", "")
	assert.Error(t, err)
}

func TestMixHot(t *testing.T) {
	public := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(public, "hot"), []byte("http://localhost:8081/\n"), 0o644))

	got, err := NewMix(public).Resolve("js/app.js", "")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8081/js/app.js", got)
}

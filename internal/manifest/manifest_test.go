package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, dir, name, body string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(body), 0o644))
	return p
}

func TestLoad_JSON(t *testing.T) {
	dir := t.TempDir()
	p := write(t, dir, FileName, `{
  "name": "ocean",
  "title": "Ocean",
  "description": "Blue Things",
  "author": "Jane Doe",
  "version": "1.2.0",
  "parent": "base",
  "css": "css/app.css"
}`)

	m, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "ocean", m.Name)
	assert.Equal(t, "Ocean", m.Title)
	assert.Equal(t, "base", m.Parent)
	assert.True(t, m.HasParent())
	assert.Equal(t, "css/app.css", m.All()["css"])
}

func TestLoad_YAMLSyntax(t *testing.T) {
	dir := t.TempDir()
	p := write(t, dir, FileName, "name: forest\nversion: 0.1.0\n")

	m, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "forest", m.Name)
	assert.False(t, m.HasParent())
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestLoad_FreeFormNames(t *testing.T) {
	dir := t.TempDir()
	p := write(t, dir, FileName, `{"name": "Sunset Deluxe", "parent": "Sunset"}`)

	m, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, "Sunset Deluxe", m.Name)
	assert.Equal(t, "Sunset", m.Parent)
}

func TestLoad_ParentWithSeparator(t *testing.T) {
	dir := t.TempDir()
	p := write(t, dir, FileName, `{"name": "kid", "parent": "../etc"}`)

	_, err := Load(p)
	assert.Error(t, err)
}

func TestLoadChangelog(t *testing.T) {
	dir := t.TempDir()
	p := write(t, dir, ChangelogName, "1.0.0:\n  - Initial release\n")

	log, err := LoadChangelog(p)
	require.NoError(t, err)
	assert.Contains(t, log, "1.0.0")
}

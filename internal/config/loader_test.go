package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets map[string]string

func (f fakeSecrets) Resolve(_ context.Context, ref string) (string, error) {
	if v, ok := f[ref]; ok {
		return v, nil
	}
	return "", errors.New("missing " + ref)
}

func writeConf(t *testing.T, root, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "conf"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "conf", FileName), []byte(body), 0o644))
}

func TestLoadDir_Defaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := LoadDir(context.Background(), root, nil)
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.ListenAddr)
	assert.Equal(t, filepath.Join(root, "themes"), cfg.Theme.Path)
	assert.Equal(t, root, cfg.Theme.PublicPath)
	assert.Equal(t, "file", cfg.Store.Driver)
	assert.Equal(t, filepath.Join(root, "storage", "theme.yaml"), cfg.Store.File)
	assert.Same(t, cfg, Get())
}

func TestLoadDir_YAMLAndEnvOverlay(t *testing.T) {
	root := t.TempDir()
	writeConf(t, root, `
http:
  listen_addr: "127.0.0.1:9000"
theme:
  path: /srv/themes
  default: ocean
  symlink: true
`)
	t.Setenv("ADEPT_THEME__DEFAULT", "forest")

	cfg, err := LoadDir(context.Background(), root, nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTP.ListenAddr)
	assert.Equal(t, "/srv/themes", cfg.Theme.Path)
	assert.Equal(t, "forest", cfg.Theme.Default)
	assert.True(t, cfg.Theme.Symlink)
}

func TestLoadDir_ValidationFailure(t *testing.T) {
	root := t.TempDir()
	writeConf(t, root, `
store:
  driver: redis
`)
	_, err := LoadDir(context.Background(), root, nil)
	assert.Error(t, err)
}

func TestLoadDir_InvalidThemeName(t *testing.T) {
	root := t.TempDir()
	writeConf(t, root, `
theme:
  default: "Not A Name"
`)
	_, err := LoadDir(context.Background(), root, nil)
	assert.Error(t, err)
}

func TestLoadDir_VaultReference(t *testing.T) {
	root := t.TempDir()
	writeConf(t, root, `
store:
  driver: mysql
  dsn: "vault:secret/theme#dsn"
`)
	require.True(t, NeedsSecrets(root))

	_, err := LoadDir(context.Background(), root, nil)
	assert.Error(t, err, "vault ref without resolver must fail")

	cfg, err := LoadDir(context.Background(), root, fakeSecrets{
		"secret/theme#dsn": "user:pw@tcp(db:3306)/app",
	})
	require.NoError(t, err)
	assert.Equal(t, "user:pw@tcp(db:3306)/app", cfg.Store.DSN)
}

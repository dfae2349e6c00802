package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, root, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--root", root}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestMakeListInfo(t *testing.T) {
	root := t.TempDir()

	out, err := run(t, root, "", "make", "Ocean", "--no-interaction",
		"--title", "Ocean", "--author", "jane doe", "--version", "2.1.0")
	require.NoError(t, err)
	assert.Contains(t, out, "Ocean theme folder successfully generated")
	assert.FileExists(t, filepath.Join(root, "themes", "ocean", "theme.json"))
	assert.FileExists(t, filepath.Join(root, "themes", "ocean", "assets", "css", "app.css"))

	_, err = run(t, root, "", "make", "ocean", "--no-interaction", "--title", "Again")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	out, err = run(t, root, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ocean")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "2.1.0")

	out, err = run(t, root, "", "info", "ocean")
	require.NoError(t, err)
	assert.Contains(t, out, "Title:       Ocean")
	assert.Contains(t, out, "Changelog:")
}

func TestMakeInteractive(t *testing.T) {
	root := t.TempDir()
	answers := strings.Join([]string{"Forest", "green and calm", "", "", "y", "Ocean"}, "\n") + "\n"

	_, err := run(t, root, answers, "make", "forest")
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(root, "themes", "forest", "theme.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"Green And Calm"`)
	assert.Contains(t, string(raw), `"ocean"`)
	assert.Contains(t, string(raw), `"1.0.0"`)
}

func TestMakeRequiresTitleWithoutInteraction(t *testing.T) {
	_, err := run(t, t.TempDir(), "", "make", "x", "--no-interaction")
	require.Error(t, err)
}

func TestActivateDeactivateDelete(t *testing.T) {
	root := t.TempDir()
	_, err := run(t, root, "", "make", "ocean", "-n", "--title", "Ocean")
	require.NoError(t, err)

	_, err = run(t, root, "", "activate", "ocean")
	require.NoError(t, err)
	out, err := run(t, root, "", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "ocean *")

	_, err = run(t, root, "", "activate", "missing")
	require.Error(t, err)

	_, err = run(t, root, "", "deactivate", "ocean")
	require.NoError(t, err)
	out, err = run(t, root, "", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "ocean *")

	out, err = run(t, root, "n\n", "delete", "ocean")
	require.NoError(t, err)
	assert.Contains(t, out, "aborted")
	assert.FileExists(t, filepath.Join(root, "themes", "ocean", "theme.json"))

	_, err = run(t, root, "", "delete", "ocean", "--force")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(root, "themes", "ocean"))
	assert.NoFileExists(t, filepath.Join(root, "themes", "ocean", "theme.json"))
}

package asset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// ErrMixNotFound is returned when a manifest has no entry for a path.
var ErrMixNotFound = errors.New("unable to locate mix file")

// Mix reads mix manifests below a public directory.  Manifests are cached
// and re-read when their modification time changes.
type Mix struct {
	public string

	mu        sync.Mutex
	manifests map[string]mixManifest
}

type mixManifest struct {
	mod     time.Time
	entries map[string]string
}

// NewMix returns a Mix rooted at the public directory.
func NewMix(publicPath string) *Mix {
	return &Mix{public: publicPath, manifests: make(map[string]mixManifest)}
}

// Resolve maps path to its versioned form using
// `<public>/<manifestDir>/mix-manifest.json`.  When a `hot` file exists in
// that directory the dev-server URL it names is used instead.
func (m *Mix) Resolve(path, manifestDir string) (string, error) {
	path = "/" + strings.TrimLeft(filepath.ToSlash(path), "/")
	if manifestDir != "" {
		manifestDir = "/" + strings.Trim(filepath.ToSlash(manifestDir), "/")
	}
	dir := filepath.Join(m.public, filepath.FromSlash(manifestDir))

	if hot, err := os.ReadFile(filepath.Join(dir, "hot")); err == nil {
		u := strings.TrimRight(strings.TrimSpace(string(hot)), "/")
		return u + path, nil
	}

	entries, err := m.load(filepath.Join(dir, "mix-manifest.json"))
	if err != nil {
		return "", err
	}
	v, ok := entries[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMixNotFound, path)
	}
	return manifestDir + v, nil
}

func (m *Mix) load(file string) (map[string]string, error) {
	info, err := os.Stat(file)
	if err != nil {
		return nil, fmt.Errorf("mix manifest does not exist: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.manifests[file]; ok && c.mod.Equal(info.ModTime()) {
		return c.entries, nil
	}

	raw, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	entries := map[string]string{}
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode %s: %w", file, err)
	}
	m.manifests[file] = mixManifest{mod: info.ModTime(), entries: entries}
	return entries, nil
}

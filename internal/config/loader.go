// internal/config/loader.go
//
// Configuration loader.
//
/*
Context
--------
`Load()` builds one immutable `Config` from four layers (highest precedence
last):

  1. Built-in defaults (`defaults` below).
  2. Optional `.env` file at `<root>/conf/.env`.
  3. Optional `conf/theme.yaml`.
  4. Environment variables prefixed `ADEPT_`, where `__` maps to “.”
     (e.g., `ADEPT_THEME__PATH → theme.path`).

After merging, the tree is unmarshalled into typed structs, `vault:`
references are resolved, relative directories are anchored at the root,
and the result is validated and cached in an `atomic.Pointer`.

Instrumentation
---------------
  • DEBUG spans – root discovery, YAML read, env overlay.
  • ERROR spans – YAML parse, env overlay, unmarshal, validation failures.
  • INFO  span  – final “config loaded” with key highlights.
  • Logs use the global sugared logger (`zap.S()`), so boot issues surface
    even before the file logger is installed.
*/
package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	koanf "github.com/knadh/koanf/v2"
	"go.uber.org/zap"
)

// FileName is the YAML file looked up under `<root>/conf`.
const FileName = "theme.yaml"

const vaultPrefix = "vault:"

var current atomic.Pointer[Config]

// SecretResolver turns a `<mount>/<path>#<key>` reference into its value.
// *vault.Client satisfies it through its Resolve method.
type SecretResolver interface {
	Resolve(ctx context.Context, ref string) (string, error)
}

var defaults = map[string]any{
	"http.listen_addr":         ":8080",
	"http.force_https":         false,
	"theme.path":               "themes",
	"theme.public_path":        ".",
	"theme.symlink":            false,
	"theme.symlink_path":       "public/themes",
	"theme.default_screenshot": "/vendor/adept/images/theme.png",
	"theme.assets_folder":      "assets",
	"theme.locale":             "en",
	"theme.fallback_locale":    "en",
	"asset.base_url":           "",
	"asset.manifest_dir":       "",
	"store.driver":             "file",
	"store.file":               "storage/theme.yaml",
}

/*──────────────────────────── root discovery ───────────────────────────────*/

// rootDir resolves ADEPT_ROOT or climbs directories until conf/theme.yaml
// is found.  Falls back to the working directory.
func rootDir() string {
	if r := os.Getenv("ADEPT_ROOT"); r != "" {
		return r
	}

	wd, _ := os.Getwd()
	dir := wd
	for {
		if _, err := os.Stat(filepath.Join(dir, "conf", FileName)); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir { // reached filesystem root
			break
		}
		dir = parent
	}
	return wd
}

/*─────────────────────────────── loader ───────────────────────────────────*/

// Load discovers the root directory and loads from it.
func Load(ctx context.Context, secrets SecretResolver) (*Config, error) {
	return LoadDir(ctx, rootDir(), secrets)
}

// LoadDir reads defaults, .env, YAML, and env overrides below root,
// resolves secrets, validates, and caches the Config.  secrets may be nil
// when no value uses the `vault:` prefix.
func LoadDir(ctx context.Context, root string, secrets SecretResolver) (*Config, error) {
	zap.S().Debugw("config root resolved", "root", root)

	// .env (optional, no error if missing)
	_ = godotenv.Load(filepath.Join(root, "conf", ".env"))

	k := koanf.New(".")
	for key, val := range defaults {
		if err := k.Set(key, val); err != nil {
			return nil, err
		}
	}

	yamlPath := filepath.Join(root, "conf", FileName)
	if _, err := os.Stat(yamlPath); err == nil {
		if err := k.Load(file.Provider(yamlPath), yaml.Parser()); err != nil {
			zap.S().Errorw("config yaml load failed", "file", yamlPath, "err", err)
			return nil, err
		}
		zap.S().Debugw("config yaml loaded", "file", yamlPath)
	}

	// Env overrides: ADEPT_THEME__PATH → theme.path
	if err := k.Load(env.Provider("ADEPT_", ".", func(s string) string {
		s = strings.TrimPrefix(s, "ADEPT_")
		return strings.ToLower(strings.ReplaceAll(s, "__", "."))
	}), nil); err != nil {
		zap.S().Errorw("config env overlay failed", "err", err)
		return nil, err
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		zap.S().Errorw("config unmarshal failed", "err", err)
		return nil, err
	}

	if err := resolveSecrets(ctx, &cfg, secrets); err != nil {
		zap.S().Errorw("config secret resolution failed", "err", err)
		return nil, err
	}

	cfg.Paths.Root = root
	anchor(&cfg)

	if err := validateStruct(&cfg); err != nil {
		zap.S().Errorw("config validation failed", "err", err)
		return nil, err
	}

	current.Store(&cfg)
	zap.S().Infow("config loaded",
		"listen_addr", cfg.HTTP.ListenAddr,
		"themes", cfg.Theme.Path,
		"store", cfg.Store.Driver,
		"root", cfg.Paths.Root,
	)
	return &cfg, nil
}

/*──────────────────────────── helpers ─────────────────────────────────────*/

// Get returns the last successfully loaded Config, or nil.
func Get() *Config { return current.Load() }

// anchor makes every configured directory absolute.
func anchor(c *Config) {
	abs := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(c.Paths.Root, p)
	}
	c.Theme.Path = abs(c.Theme.Path)
	c.Theme.PublicPath = abs(c.Theme.PublicPath)
	c.Theme.SymlinkPath = abs(c.Theme.SymlinkPath)
	c.Theme.StubPath = abs(c.Theme.StubPath)
	if c.Store.Driver == "file" {
		c.Store.File = abs(c.Store.File)
	}
}

// resolveSecrets swaps `vault:` references for their values.  Only fields
// that may carry credentials are inspected.
func resolveSecrets(ctx context.Context, c *Config, secrets SecretResolver) error {
	fields := []*string{&c.Store.DSN}
	for _, f := range fields {
		if !strings.HasPrefix(*f, vaultPrefix) {
			continue
		}
		if secrets == nil {
			return errors.New("vault reference found but no secret resolver configured")
		}
		val, err := secrets.Resolve(ctx, strings.TrimPrefix(*f, vaultPrefix))
		if err != nil {
			return fmt.Errorf("resolve %s: %w", *f, err)
		}
		*f = val
	}
	return nil
}

// NeedsSecrets reports whether the environment or YAML under root carries a
// vault reference, so callers only dial Vault when required.
func NeedsSecrets(root string) bool {
	if strings.HasPrefix(os.Getenv("ADEPT_STORE__DSN"), vaultPrefix) {
		return true
	}
	raw, err := os.ReadFile(filepath.Join(root, "conf", FileName))
	if err != nil {
		return false
	}
	return strings.Contains(string(raw), vaultPrefix)
}

// Root exposes root discovery to entry points.
func Root() string { return rootDir() }

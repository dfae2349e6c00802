// internal/config/model.go
//
// Typed configuration model for the theme layer.
//
// Context
// -------
// These structs define the shape of the tree that `loader.go` builds from
// the overlay layers:
//
//   • built-in defaults                        – see `defaults` in loader.go,
//   • optional `.env`                          – dotenv values,
//   • `conf/theme.yaml`                        – primary static file,
//   • `ADEPT_`-prefixed environment overrides  – highest precedence.
//
// Any string that begins with `vault:` is resolved through the Vault client
// after unmarshalling, so the model only ever holds plain values.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Relative directories are anchored at `Paths.Root` by the loader.

package config

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr string `koanf:"listen_addr" validate:"required,hostname_port"`
	ForceHTTPS bool   `koanf:"force_https"`
}

//
// Theme section
//

// Theme locates installed themes and tunes how their assets are exposed.
//
// When Symlink is true the public URL of a theme's assets is built from
// SymlinkPath (a directory inside PublicPath that links to Path) instead of
// the theme's own directory.
type Theme struct {
	Path              string `koanf:"path"               validate:"required"`
	PublicPath        string `koanf:"public_path"        validate:"required"`
	Symlink           bool   `koanf:"symlink"`
	SymlinkPath       string `koanf:"symlink_path"       validate:"required_if=Symlink true"`
	DefaultScreenshot string `koanf:"default_screenshot"`
	Default           string `koanf:"default"            validate:"omitempty,themename"`
	StubPath          string `koanf:"stub_path"`
	AssetsFolder      string `koanf:"assets_folder"      validate:"required"`
	Locale            string `koanf:"locale"             validate:"required"`
	FallbackLocale    string `koanf:"fallback_locale"`
}

//
// Asset section
//

// Asset controls URL generation for theme assets.
type Asset struct {
	BaseURL     string `koanf:"base_url" validate:"omitempty,url"`
	Secure      bool   `koanf:"secure"`
	ManifestDir string `koanf:"manifest_dir"`
}

//
// Store section
//

// Store selects where the activated theme is persisted.  The DSN may be a
// `vault:<mount>/<path>#<key>` reference.
type Store struct {
	Driver string `koanf:"driver" validate:"required,oneof=file mysql"`
	DSN    string `koanf:"dsn"    validate:"required_if=Driver mysql"`
	File   string `koanf:"file"   validate:"required_if=Driver file"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.
type Paths struct {
	Root string
}

//
// Root aggregate
//

// Config is the immutable aggregate returned by Load() and cached for
// lock-free reads.
type Config struct {
	HTTP  HTTP  `koanf:"http"`
	Theme Theme `koanf:"theme"`
	Asset Asset `koanf:"asset"`
	Store Store `koanf:"store"`
	Paths Paths `koanf:"-"`
}

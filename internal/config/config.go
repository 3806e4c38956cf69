// Package config handles global odfkit configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPathSeparator is the separator GrandOrgue writes into organ-relative
// references.
const DefaultPathSeparator = `\`

// Config represents the global odfkit configuration.
type Config struct {
	// Catalog is the path of the SQLite organ catalog. Relative paths are
	// resolved against the directory of the config file.
	Catalog string `toml:"catalog"`

	// Write controls how organ definitions are written back.
	Write WriteConfig `toml:"write"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// WriteConfig holds the defaults for normalize and new.
type WriteConfig struct {
	// BOM prefixes written files with a UTF-8 byte order mark. Default true.
	BOM *bool `toml:"bom"`

	// Backup keeps <file>.bak when overwriting. Default true.
	Backup *bool `toml:"backup"`

	// PathSeparator is used for organ-relative paths in written files.
	PathSeparator string `toml:"path_separator"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output.
	// Supported values are ANSI color codes ("0" to "255") or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`

	// ShowNotices includes notice-level diagnostics (dropped references) in
	// check output.
	ShowNotices bool `toml:"show_notices"`
}

// UseBOM reports whether written files get a byte order mark.
func (w WriteConfig) UseBOM() bool {
	return w.BOM == nil || *w.BOM
}

// KeepBackup reports whether overwritten files are kept as .bak.
func (w WriteConfig) KeepBackup() bool {
	return w.Backup == nil || *w.Backup
}

// Separator returns "/" when configured, otherwise the GrandOrgue default.
func (w WriteConfig) Separator() string {
	if strings.TrimSpace(w.PathSeparator) == "/" {
		return "/"
	}
	return DefaultPathSeparator
}

// CatalogPath resolves the catalog location for a config loaded from
// configPath.
func (c *Config) CatalogPath(configPath string) string {
	dir := filepath.Dir(ResolveConfigPath(configPath))
	p := strings.TrimSpace(c.Catalog)
	if p == "" {
		return filepath.Join(dir, "catalog.db")
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, filepath.FromSlash(p[2:]))
		}
	}
	if filepath.IsAbs(p) || strings.HasPrefix(filepath.ToSlash(p), "/") {
		return filepath.Clean(filepath.FromSlash(p))
	}
	return filepath.Join(dir, filepath.FromSlash(p))
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path. A missing file is
// not an error.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &config, nil
	}
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// ResolveConfigPath returns the explicit path when given, else DefaultPath.
func ResolveConfigPath(explicitConfigPath string) string {
	if strings.TrimSpace(explicitConfigPath) != "" {
		return explicitConfigPath
	}
	return DefaultPath()
}

// DefaultPath returns the default config file path.
// Checks ~/.config/odfkit/config.toml first (XDG style),
// then falls back to OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "odfkit", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "odfkit", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// XDGPath returns the XDG-style config path (~/.config/odfkit/config.toml).
func XDGPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "odfkit", "config.toml"), nil
}

const defaultConfig = `# odfkit configuration

# SQLite catalog of organs added with 'odfkit catalog add'.
# Relative paths are resolved against this file's directory.
# catalog = "catalog.db"

# How organ definitions are written by 'normalize' and 'new'.
[write]
bom = true
backup = true
path_separator = "\\"

# Optional UI accent color for headers in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
[ui]
# accent = "39"
show_notices = false
`

// CreateDefault writes a commented default config to path unless a file is
// already there. It reports whether a file was created.
func CreateDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return false, fmt.Errorf("failed to write config file: %w", err)
	}

	return true, nil
}

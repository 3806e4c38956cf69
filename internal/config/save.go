package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/aidanlsb/odfkit/internal/atomicfile"
)

type persistedConfig struct {
	Catalog *string                 `toml:"catalog,omitempty"`
	Write   *persistedWriteSettings `toml:"write,omitempty"`
	UI      *persistedUISettings    `toml:"ui,omitempty"`
}

type persistedWriteSettings struct {
	BOM           *bool   `toml:"bom,omitempty"`
	Backup        *bool   `toml:"backup,omitempty"`
	PathSeparator *string `toml:"path_separator,omitempty"`
}

type persistedUISettings struct {
	Accent      *string `toml:"accent,omitempty"`
	ShowNotices bool    `toml:"show_notices,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save writes the global config to the default config path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the global config to a specific path atomically.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{Catalog: nonEmptyPtr(cfg.Catalog)}

	sep := nonEmptyPtr(cfg.Write.PathSeparator)
	if cfg.Write.BOM != nil || cfg.Write.Backup != nil || sep != nil {
		out.Write = &persistedWriteSettings{
			BOM:           cfg.Write.BOM,
			Backup:        cfg.Write.Backup,
			PathSeparator: sep,
		}
	}

	accent := nonEmptyPtr(cfg.UI.Accent)
	if accent != nil || cfg.UI.ShowNotices {
		out.UI = &persistedUISettings{
			Accent:      accent,
			ShowNotices: cfg.UI.ShowNotices,
		}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}

package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWriteConfigDefaults(t *testing.T) {
	off := false

	tests := []struct {
		name   string
		cfg    WriteConfig
		bom    bool
		backup bool
		sep    string
	}{
		{"empty", WriteConfig{}, true, true, `\`},
		{"disabled", WriteConfig{BOM: &off, Backup: &off}, false, false, `\`},
		{"slash separator", WriteConfig{PathSeparator: "/"}, true, true, "/"},
		{"unknown separator", WriteConfig{PathSeparator: ":"}, true, true, `\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.UseBOM(); got != tt.bom {
				t.Errorf("UseBOM() = %v, want %v", got, tt.bom)
			}
			if got := tt.cfg.KeepBackup(); got != tt.backup {
				t.Errorf("KeepBackup() = %v, want %v", got, tt.backup)
			}
			if got := tt.cfg.Separator(); got != tt.sep {
				t.Errorf("Separator() = %q, want %q", got, tt.sep)
			}
		})
	}
}

func TestCatalogPath(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")
	abs := filepath.Join(tmpDir, "elsewhere", "organs.db")

	tests := []struct {
		name    string
		catalog string
		want    string
	}{
		{"default next to config", "", filepath.Join(tmpDir, "catalog.db")},
		{"relative to config", "data/organs.db", filepath.Join(tmpDir, "data", "organs.db")},
		{"absolute", abs, abs},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{Catalog: tt.catalog}
			if got := cfg.CatalogPath(configPath); got != tt.want {
				t.Errorf("CatalogPath() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoadFrom(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `catalog = "organs.db"

[write]
bom = false
path_separator = "/"

[ui]
accent = "39"
show_notices = true
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadFrom(configPath)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Catalog != "organs.db" {
		t.Errorf("expected catalog 'organs.db', got %q", cfg.Catalog)
	}
	if cfg.Write.UseBOM() {
		t.Error("expected write.bom=false")
	}
	if !cfg.Write.KeepBackup() {
		t.Error("expected write.backup to default to true")
	}
	if cfg.Write.Separator() != "/" {
		t.Errorf("expected separator '/', got %q", cfg.Write.Separator())
	}
	if cfg.UI.Accent != "39" || !cfg.UI.ShowNotices {
		t.Errorf("unexpected ui settings: %+v", cfg.UI)
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg == nil || cfg.Catalog != "" {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.toml")

	content := `this is not valid toml {{{{`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := LoadFrom(configPath)
	if err == nil {
		t.Error("expected error for invalid TOML")
	}
}

func TestCreateDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	created, err := CreateDefault(path)
	if err != nil {
		t.Fatalf("CreateDefault: %v", err)
	}
	if !created {
		t.Fatal("expected file to be created")
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("default config does not parse: %v", err)
	}
	if !cfg.Write.UseBOM() || cfg.Write.Separator() != `\` {
		t.Errorf("unexpected defaults: %+v", cfg.Write)
	}

	created, err = CreateDefault(path)
	if err != nil || created {
		t.Errorf("second CreateDefault = %v, %v; want false, nil", created, err)
	}
}

func TestXDGPath(t *testing.T) {
	path, err := XDGPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if filepath.Base(path) != "config.toml" || filepath.Base(filepath.Dir(path)) != "odfkit" {
		t.Errorf("unexpected XDG path %s", path)
	}
}

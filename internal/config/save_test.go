package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveToRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "config.toml")

	off := false
	cfg := &Config{
		Catalog: "  organs.db ",
		Write:   WriteConfig{Backup: &off, PathSeparator: "/"},
		UI:      UIConfig{Accent: "#AA5500", ShowNotices: true},
	}

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom returned error: %v", err)
	}

	if loaded.Catalog != "organs.db" {
		t.Errorf("expected trimmed catalog, got %q", loaded.Catalog)
	}
	if loaded.Write.KeepBackup() {
		t.Error("expected write.backup=false")
	}
	if !loaded.Write.UseBOM() {
		t.Error("expected unset write.bom to stay defaulted")
	}
	if loaded.Write.Separator() != "/" {
		t.Errorf("expected separator '/', got %q", loaded.Write.Separator())
	}
	if loaded.UI.Accent != "#AA5500" || !loaded.UI.ShowNotices {
		t.Errorf("unexpected ui settings: %+v", loaded.UI)
	}
}

func TestSaveToOmitsEmptySections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := SaveTo(path, &Config{}); err != nil {
		t.Fatalf("SaveTo returned error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "[write]") || strings.Contains(string(data), "[ui]") {
		t.Errorf("expected empty sections to be omitted, got:\n%s", data)
	}
}

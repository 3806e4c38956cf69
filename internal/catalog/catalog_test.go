package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func openTest(t *testing.T) *Catalog {
	t.Helper()
	c, err := OpenInMemory()
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestPutAssignsUniqueSlugs(t *testing.T) {
	c := openTest(t)
	dir := t.TempDir()

	first, err := c.Put(Entry{Path: filepath.Join(dir, "a.organ"), ChurchName: "Sankt Bavo", Manuals: 3})
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Put(Entry{Path: filepath.Join(dir, "b.organ"), ChurchName: "Sankt Bavo"})
	if err != nil {
		t.Fatal(err)
	}
	unnamed, err := c.Put(Entry{Path: filepath.Join(dir, "Burea.organ")})
	if err != nil {
		t.Fatal(err)
	}

	if first.Slug != "sankt-bavo" || second.Slug != "sankt-bavo-2" {
		t.Errorf("slugs = %q, %q", first.Slug, second.Slug)
	}
	if unnamed.Slug != "burea" {
		t.Errorf("unnamed slug = %q, want file-derived burea", unnamed.Slug)
	}
}

func TestPutRefreshesByPath(t *testing.T) {
	c := openTest(t)
	path := filepath.Join(t.TempDir(), "test.organ")

	if _, err := c.Put(Entry{Path: path, ChurchName: "Old Name", Stops: 4}); err != nil {
		t.Fatal(err)
	}
	e, err := c.Put(Entry{Path: path, ChurchName: "New Name", Stops: 9})
	if err != nil {
		t.Fatal(err)
	}
	if e.Slug != "old-name" {
		t.Errorf("refresh changed the slug to %q", e.Slug)
	}

	entries, err := c.List()
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("entries = %d, want 1", len(entries))
	}
	if entries[0].ChurchName != "New Name" || entries[0].Stops != 9 {
		t.Errorf("entry not refreshed: %+v", entries[0])
	}
}

func TestListOrderAndGet(t *testing.T) {
	c := openTest(t)
	dir := t.TempDir()
	mod := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	for _, name := range []string{"zwolle", "Alkmaar", "haarlem"} {
		if _, err := c.Put(Entry{Path: filepath.Join(dir, name+".organ"), ChurchName: name, ModTime: mod, Size: 42}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := c.List()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.ChurchName)
	}
	if len(names) != 3 || names[0] != "Alkmaar" || names[1] != "haarlem" || names[2] != "zwolle" {
		t.Errorf("order = %v", names)
	}

	e, err := c.Get("haarlem")
	if err != nil {
		t.Fatal(err)
	}
	if !e.ModTime.Equal(mod) || e.Size != 42 {
		t.Errorf("round trip lost fields: %+v", e)
	}

	if _, err := c.Get("nowhere"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(nowhere) err = %v, want ErrNotFound", err)
	}
}

func TestRemove(t *testing.T) {
	c := openTest(t)
	dir := t.TempDir()
	for _, name := range []string{"a", "b", "c"} {
		if _, err := c.Put(Entry{Path: filepath.Join(dir, name+".organ"), ChurchName: name}); err != nil {
			t.Fatal(err)
		}
	}

	n, err := c.Remove("a", "c", "missing")
	if err != nil {
		t.Fatal(err)
	}
	if n != 2 {
		t.Errorf("removed = %d, want 2", n)
	}
	if n, _ := c.Remove(); n != 0 {
		t.Errorf("empty remove = %d", n)
	}

	entries, _ := c.List()
	if len(entries) != 1 || entries[0].Slug != "b" {
		t.Errorf("remaining = %+v", entries)
	}
}

func TestStale(t *testing.T) {
	c := openTest(t)
	dir := t.TempDir()

	fresh := filepath.Join(dir, "fresh.organ")
	changed := filepath.Join(dir, "changed.organ")
	for _, p := range []string{fresh, changed} {
		if err := os.WriteFile(p, []byte("[Organ]\n"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	for _, p := range []string{fresh, changed, filepath.Join(dir, "gone.organ")} {
		st, err := os.Stat(p)
		e := Entry{Path: p, ChurchName: filepath.Base(p)}
		if err == nil {
			e.Size, e.ModTime = st.Size(), st.ModTime()
		}
		if _, err := c.Put(e); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(changed, []byte("[Organ]\nChurchName=Changed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	stale, err := c.Stale()
	if err != nil {
		t.Fatal(err)
	}
	if len(stale) != 2 {
		t.Fatalf("stale = %+v, want changed and gone", stale)
	}
	for _, e := range stale {
		if e.Path == fresh {
			t.Error("unchanged file reported stale")
		}
	}
}

func TestOpenOnDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "catalog.db")

	c, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Put(Entry{Path: "/organs/test.organ", ChurchName: "Test"}); err != nil {
		t.Fatal(err)
	}
	c.Close()

	c, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()
	if _, err := c.Get("test"); err != nil {
		t.Errorf("entry did not persist: %v", err)
	}
}

func TestRemovePath(t *testing.T) {
	c := openTest(t)
	path := filepath.Join(t.TempDir(), "a.organ")
	if _, err := c.Put(Entry{Path: path, ChurchName: "A"}); err != nil {
		t.Fatal(err)
	}

	removed, err := c.RemovePath(path)
	if err != nil || !removed {
		t.Fatalf("RemovePath = %v, %v", removed, err)
	}
	if removed, _ := c.RemovePath(path); removed {
		t.Error("second RemovePath reported a removal")
	}
}

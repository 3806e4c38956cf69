// Package catalog keeps a SQLite list of known organ definitions with
// their counts and diagnostics, so 'odfkit catalog list' does not need to
// reparse every file.
package catalog

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/aidanlsb/odfkit/internal/slugs"
	"github.com/aidanlsb/odfkit/internal/sqlutil"
)

// CurrentVersion is the catalog schema version stored in meta.
const CurrentVersion = 1

// ErrNotFound indicates the requested slug is not in the catalog.
var ErrNotFound = errors.New("organ not found in catalog")

// Catalog is the SQLite catalog handle.
type Catalog struct {
	db  *sql.DB
	now func() time.Time
}

// Entry is one catalogued organ definition.
type Entry struct {
	Slug       string
	Path       string
	ChurchName string
	Dialect    string
	Manuals    int
	Stops      int
	Ranks      int
	Panels     int
	Elements   int
	Warnings   int
	Size       int64
	ModTime    time.Time
	AddedAt    time.Time
}

// Open opens or creates the catalog at path.
func Open(path string) (*Catalog, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return open(db)
}

// OpenInMemory opens an in-memory catalog (for testing).
func OpenInMemory() (*Catalog, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, err
	}
	// Every pooled connection would get its own empty in-memory database.
	db.SetMaxOpenConns(1)
	return open(db)
}

func open(db *sql.DB) (*Catalog, error) {
	c := &Catalog{db: db, now: time.Now}
	if err := c.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return c, nil
}

// Close closes the catalog.
func (c *Catalog) Close() error {
	return c.db.Close()
}

func (c *Catalog) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;

		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS organs (
			slug TEXT PRIMARY KEY,
			path TEXT NOT NULL UNIQUE,
			church_name TEXT NOT NULL,
			dialect TEXT NOT NULL,
			manuals INTEGER NOT NULL,
			stops INTEGER NOT NULL,
			ranks INTEGER NOT NULL,
			panels INTEGER NOT NULL,
			elements INTEGER NOT NULL,
			warnings INTEGER NOT NULL,
			size INTEGER NOT NULL,
			mod_time INTEGER NOT NULL,
			added_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_organs_church ON organs(church_name);
	`
	if _, err := c.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize catalog: %w", err)
	}

	var version int
	err := c.db.QueryRow("SELECT CAST(value AS INTEGER) FROM meta WHERE key = 'version'").Scan(&version)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		_, err = c.db.Exec("INSERT INTO meta (key, value) VALUES ('version', ?)", CurrentVersion)
		if err != nil {
			return fmt.Errorf("failed to record catalog version: %w", err)
		}
	case err != nil:
		return fmt.Errorf("failed to read catalog version: %w", err)
	case version > CurrentVersion:
		return fmt.Errorf("catalog version %d is newer than supported version %d", version, CurrentVersion)
	}
	return nil
}

// Put adds e or refreshes the entry with the same path. New entries get a
// slug derived from the church name, made unique within the catalog; an
// existing entry keeps its slug. The stored entry is returned.
func (c *Catalog) Put(e Entry) (Entry, error) {
	abs, err := filepath.Abs(e.Path)
	if err != nil {
		return Entry{}, fmt.Errorf("failed to resolve %s: %w", e.Path, err)
	}
	e.Path = abs

	tx, err := c.db.Begin()
	if err != nil {
		return Entry{}, err
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRow("SELECT slug FROM organs WHERE path = ?", e.Path).Scan(&existing)
	switch {
	case err == nil:
		e.Slug = existing
	case errors.Is(err, sql.ErrNoRows):
		base := slugs.OrganSlug(e.ChurchName)
		if e.ChurchName == "" {
			base = slugs.OrganSlug(filepath.Base(e.Path))
		}
		var lookupErr error
		e.Slug = slugs.Unique(base, func(s string) bool {
			var n int
			if err := tx.QueryRow("SELECT COUNT(*) FROM organs WHERE slug = ?", s).Scan(&n); err != nil {
				lookupErr = err
				return false
			}
			return n > 0
		})
		if lookupErr != nil {
			return Entry{}, lookupErr
		}
	default:
		return Entry{}, err
	}

	e.AddedAt = c.now().UTC().Truncate(time.Second)
	_, err = tx.Exec(`
		INSERT INTO organs (slug, path, church_name, dialect, manuals, stops, ranks, panels, elements, warnings, size, mod_time, added_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET
			church_name = excluded.church_name,
			dialect = excluded.dialect,
			manuals = excluded.manuals,
			stops = excluded.stops,
			ranks = excluded.ranks,
			panels = excluded.panels,
			elements = excluded.elements,
			warnings = excluded.warnings,
			size = excluded.size,
			mod_time = excluded.mod_time,
			added_at = excluded.added_at`,
		e.Slug, e.Path, e.ChurchName, e.Dialect,
		e.Manuals, e.Stops, e.Ranks, e.Panels, e.Elements, e.Warnings,
		e.Size, e.ModTime.Unix(), e.AddedAt.Unix())
	if err != nil {
		return Entry{}, fmt.Errorf("failed to store %s: %w", e.Path, err)
	}
	if err := tx.Commit(); err != nil {
		return Entry{}, err
	}
	return e, nil
}

const selectEntry = `SELECT slug, path, church_name, dialect, manuals, stops, ranks, panels, elements, warnings, size, mod_time, added_at FROM organs`

func scanEntry(rows *sql.Rows) (Entry, error) {
	var e Entry
	var mod, added int64
	err := rows.Scan(&e.Slug, &e.Path, &e.ChurchName, &e.Dialect,
		&e.Manuals, &e.Stops, &e.Ranks, &e.Panels, &e.Elements, &e.Warnings,
		&e.Size, &mod, &added)
	e.ModTime = time.Unix(mod, 0).UTC()
	e.AddedAt = time.Unix(added, 0).UTC()
	return e, err
}

// List returns every entry ordered by church name.
func (c *Catalog) List() ([]Entry, error) {
	rows, err := c.db.Query(selectEntry + " ORDER BY church_name COLLATE NOCASE, slug")
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, scanEntry)
}

// Get returns the entry with the given slug.
func (c *Catalog) Get(slug string) (Entry, error) {
	rows, err := c.db.Query(selectEntry+" WHERE slug = ?", slug)
	if err != nil {
		return Entry{}, err
	}
	entries, err := sqlutil.ScanRows(rows, scanEntry)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%w: %s", ErrNotFound, slug)
	}
	return entries[0], nil
}

// Remove deletes the entries with the given slugs and returns how many
// existed.
func (c *Catalog) Remove(slugList ...string) (int, error) {
	ph, args := sqlutil.InClauseArgs(slugList)
	res, err := c.db.Exec("DELETE FROM organs WHERE slug IN ("+ph+")", args...)
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	return int(n), err
}

// Stale returns entries whose file is missing or changed since it was
// catalogued.
func (c *Catalog) Stale() ([]Entry, error) {
	entries, err := c.List()
	if err != nil {
		return nil, err
	}
	var out []Entry
	for _, e := range entries {
		st, err := os.Stat(e.Path)
		if err != nil || st.Size() != e.Size || st.ModTime().Unix() != e.ModTime.Unix() {
			out = append(out, e)
		}
	}
	return out, nil
}

// RemovePath deletes the entry for the file at path and reports whether
// one existed.
func (c *Catalog) RemovePath(path string) (bool, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	res, err := c.db.Exec("DELETE FROM organs WHERE path = ?", abs)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

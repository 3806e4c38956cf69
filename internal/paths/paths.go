// Package paths converts between the organ-relative references stored in an
// ODF (e.g. "images\\stops\\principal.bmp") and absolute paths on disk.
//
// ODFs are usually authored on Windows: references use backslashes and are
// matched case-insensitively. Root resolves them on any OS.
package paths

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultSeparator is the separator written into ODF references.
const DefaultSeparator = `\`

// Root resolves references relative to the directory holding the ODF.
type Root struct {
	Dir string
	// Separator is used when writing references. Empty means DefaultSeparator.
	Separator string
}

// New returns a Root for dir.
func New(dir string) *Root {
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return &Root{Dir: dir}
}

// ForFile returns a Root for the directory containing the ODF at path.
func ForFile(path string) *Root {
	return New(filepath.Dir(path))
}

func (r *Root) separator() string {
	if r.Separator == "" {
		return DefaultSeparator
	}
	return r.Separator
}

// NormalizeRef converts a stored reference to slash form:
// - backslashes become '/'
// - leading "./" is dropped
// - repeated '/' collapse
func NormalizeRef(ref string) string {
	ref = strings.ReplaceAll(ref, `\`, "/")
	ref = strings.TrimPrefix(ref, "./")
	for strings.Contains(ref, "//") {
		ref = strings.ReplaceAll(ref, "//", "/")
	}
	return ref
}

// Resolve returns the absolute path of ref when the file exists, or "".
// Components are matched case-insensitively when an exact match is missing.
func (r *Root) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	slashed := NormalizeRef(ref)
	var candidate string
	if filepath.IsAbs(filepath.FromSlash(slashed)) {
		candidate = filepath.FromSlash(slashed)
	} else {
		candidate = filepath.Join(r.Dir, filepath.FromSlash(slashed))
	}
	if fileExists(candidate) {
		return candidate
	}
	if filepath.IsAbs(filepath.FromSlash(slashed)) {
		return ""
	}
	return r.resolveFold(slashed)
}

// resolveFold walks ref one component at a time, matching each against the
// directory listing without regard to case.
func (r *Root) resolveFold(slashed string) string {
	dir := r.Dir
	parts := strings.Split(slashed, "/")
	for i, part := range parts {
		if part == "" || part == "." {
			continue
		}
		if part == ".." {
			dir = filepath.Dir(dir)
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return ""
		}
		found := ""
		for _, e := range entries {
			if strings.EqualFold(e.Name(), part) {
				found = e.Name()
				break
			}
		}
		if found == "" {
			return ""
		}
		dir = filepath.Join(dir, found)
		if i == len(parts)-1 && !fileExists(dir) {
			return ""
		}
	}
	return dir
}

// Relative returns the organ-relative form of path. Paths outside the root
// and references that never resolved are returned unchanged.
func (r *Root) Relative(path string) string {
	if path == "" || !filepath.IsAbs(path) {
		return path
	}
	rel, err := filepath.Rel(r.Dir, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return strings.ReplaceAll(filepath.ToSlash(rel), "/", r.separator())
}

func fileExists(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}

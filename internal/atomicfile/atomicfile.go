package atomicfile

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// BackupSuffix is appended to the name of the previous version of a file.
const BackupSuffix = ".bak"

// Options controls WriteFileWith.
type Options struct {
	// Perm is used for the temp file. If zero, the existing file's mode is
	// preserved, falling back to 0644.
	Perm os.FileMode
	// Backup copies the existing file to path+BackupSuffix before replacing it.
	Backup bool
}

// WriteFile writes data to path atomically without a backup.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return WriteFileWith(path, data, Options{Perm: perm})
}

// WriteFileWith writes data to a temporary file in the same directory and
// renames it into place, so a crash never leaves a half-written organ file.
func WriteFileWith(path string, data []byte, opts Options) error {
	perm := opts.Perm
	st, statErr := os.Stat(path)
	if perm == 0 {
		if statErr == nil {
			perm = st.Mode()
		} else {
			perm = 0o644
		}
	}

	if opts.Backup && statErr == nil && st.Mode().IsRegular() {
		if err := copyFile(path, path+BackupSuffix, st.Mode()); err != nil {
			return fmt.Errorf("backup: %w", err)
		}
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)

	tmp, err := os.CreateTemp(dir, "."+base+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tmpPath := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()

	_ = tmp.Chmod(perm)

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	// Windows cannot rename over an existing file.
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename temp file: %w", err)
		}
	}

	committed = true
	return nil
}

func copyFile(src, dst string, perm os.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

package fileutil

import (
	"io"
	"os"
	"path/filepath"
)

// CopyFile streams src to dst, creating parent directories as needed and
// refusing to clobber an existing destination. Used as the cross-device
// fallback when a move cannot be a rename.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		_ = out.Close()
	}()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}

// RemoveIfEmpty deletes dir when it has no entries. A non-empty or already
// missing directory is not an error; the caller decides whether leftovers
// matter.
func RemoveIfEmpty(dir string) (bool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	if len(entries) > 0 {
		return false, nil
	}
	if err := os.Remove(dir); err != nil {
		return false, err
	}
	return true, nil
}

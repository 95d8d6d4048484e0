package library

import (
	"fmt"
	"os"
	"path/filepath"

	"mediasort/internal/config"
	"mediasort/internal/faults"
)

// Layout locates the normalized library's control folders under one root.
type Layout struct {
	Root   string
	Shows  string
	Movies string
	Music  string
}

// NewLayout resolves the control folders for a library root using the
// configured folder names.
func NewLayout(root string, cfg config.Library) Layout {
	return Layout{
		Root:   filepath.Clean(root),
		Shows:  filepath.Join(root, cfg.ShowsDir),
		Movies: filepath.Join(root, cfg.MoviesDir),
		Music:  filepath.Join(root, cfg.MusicDir),
	}
}

// ControlFolders returns the reserved destination folders.
func (l Layout) ControlFolders() []string {
	return []string{l.Shows, l.Movies, l.Music}
}

// CheckInput rejects paths that target the library's own control folders;
// sorting a control folder into itself would corrupt the library.
func (l Layout) CheckInput(path string) error {
	cleaned := filepath.Clean(path)
	for _, folder := range l.ControlFolders() {
		if cleaned == folder {
			return faults.Wrap(faults.ErrReservedPath, "rebuild", "check input",
				fmt.Sprintf("cannot run on special directory %s", filepath.Base(cleaned)), nil)
		}
	}
	return nil
}

// Ensure creates the control folders. Pre-existing folders are not an error,
// so concurrent invocations against the same library are safe.
func (l Layout) Ensure() error {
	for _, folder := range l.ControlFolders() {
		if err := os.MkdirAll(folder, 0o755); err != nil {
			return faults.Wrap(faults.ErrTransient, "rebuild", "ensure library folders", "", err)
		}
	}
	return nil
}

// SeasonFolder returns the destination for one show season, zero-padding the
// season number to two digits.
func (l Layout) SeasonFolder(title string, season int) string {
	return filepath.Join(l.Shows, title, fmt.Sprintf("season-%02d", season))
}

// ShowFolder returns the destination folder for one show.
func (l Layout) ShowFolder(title string) string {
	return filepath.Join(l.Shows, title)
}

// LockPath returns the advisory lock file guarding live runs against this
// library.
func (l Layout) LockPath() string {
	return filepath.Join(l.Root, ".mediasort.lock")
}

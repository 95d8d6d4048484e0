package linker

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"mediasort/internal/faults"
	"mediasort/internal/fileutil"
	"mediasort/internal/fstree"
	"mediasort/internal/logging"
)

// Mode selects the filesystem side effect used to place files.
type Mode string

const (
	// ModeHardlink creates a second directory entry for each file; the
	// source tree is never modified.
	ModeHardlink Mode = "hardlink"
	// ModeMove renames files into the library and prunes emptied source
	// directories on a best-effort basis.
	ModeMove Mode = "move"
)

// ParseMode converts a configuration string into a Mode.
func ParseMode(value string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(value))) {
	case ModeHardlink:
		return ModeHardlink, nil
	case ModeMove:
		return ModeMove, nil
	default:
		return "", faults.Wrap(faults.ErrConfiguration, "linker", "parse mode",
			fmt.Sprintf("unsupported link mode %q", value), nil)
	}
}

// Action describes one placement decision for observers (journal, dry-run
// reporting).
type Action struct {
	Op          string
	Source      string
	Destination string
	Detail      string
}

// Placement operation names recorded on actions.
const (
	OpLink     = "link"
	OpMove     = "move"
	OpConflict = "conflict"
	OpSkip     = "skip"
)

// Report accumulates the outcome counts of one placement call.
type Report struct {
	Linked    int
	Conflicts int
	Skipped   int
}

// Add folds another report into r.
func (r *Report) Add(other Report) {
	r.Linked += other.Linked
	r.Conflicts += other.Conflicts
	r.Skipped += other.Skipped
}

// Linker performs the filesystem side effects that place classified entries
// into the library. All operations are no-ops under dry-run except logging
// and action recording.
type Linker struct {
	mode   Mode
	dryRun bool
	logger *slog.Logger
	record func(Action)
}

// New constructs a linker. The recorder is optional.
func New(mode Mode, dryRun bool, logger *slog.Logger, record func(Action)) *Linker {
	return &Linker{
		mode:   mode,
		dryRun: dryRun,
		logger: logging.NewComponentLogger(logger, "linker"),
		record: record,
	}
}

// Mode returns the configured placement mode.
func (l *Linker) Mode() Mode { return l.mode }

// Place puts source into destFolder. A file is linked (or moved) under its
// dotted name; a directory has its children placed one by one into the same
// destination, flattening the directory shell away. With needsSubfolder the
// file first gets its own container folder named after the dotted stem.
//
// A destination name that already exists is logged and skipped, never
// overwritten. Source equal to destination is refused without error.
func (l *Linker) Place(source *fstree.Entry, destFolder string, needsSubfolder bool) (Report, error) {
	var report Report
	if filepath.Clean(source.Path) == filepath.Clean(destFolder) {
		l.logger.Error("cannot place entry into itself",
			logging.String(logging.FieldPath, source.Path),
		)
		l.emit(Action{Op: OpSkip, Source: source.Path, Destination: destFolder, Detail: "self link"})
		report.Skipped++
		return report, nil
	}

	if source.Dir {
		children, err := source.Children()
		if err != nil {
			return report, faults.Wrap(faults.ErrTransient, "linker", "scan source", "", err)
		}
		for _, child := range children {
			childReport, err := l.Place(child, destFolder, false)
			report.Add(childReport)
			if err != nil {
				l.logger.Error("placement failed, continuing with siblings",
					logging.String(logging.FieldPath, child.Path),
					logging.Error(err),
				)
				report.Skipped++
			}
		}
		if l.mode == ModeMove {
			l.pruneSourceDir(source.Path)
		}
		return report, nil
	}

	fileReport, err := l.placeFile(source, destFolder, needsSubfolder)
	report.Add(fileReport)
	return report, err
}

func (l *Linker) placeFile(source *fstree.Entry, destFolder string, needsSubfolder bool) (Report, error) {
	var report Report

	if needsSubfolder {
		destFolder = filepath.Join(destFolder, dotted(source.Stem()))
	}
	destPath := filepath.Join(destFolder, dotted(source.Name()))

	if l.dryRun {
		if _, err := os.Lstat(destPath); err == nil {
			l.reportConflict(&report, source.Path, destPath)
			return report, nil
		}
		l.logger.Info("would place file",
			logging.String(logging.FieldPath, source.Path),
			logging.String(logging.FieldDestination, destPath),
			logging.Bool(logging.FieldDryRun, true),
		)
		l.emit(Action{Op: l.opName(), Source: source.Path, Destination: destPath, Detail: "dry run"})
		report.Linked++
		return report, nil
	}

	if err := os.MkdirAll(destFolder, 0o755); err != nil {
		return report, faults.Wrap(faults.ErrTransient, "linker", "create destination folder", "", err)
	}

	var err error
	switch l.mode {
	case ModeMove:
		err = l.moveFile(source.Path, destPath)
	default:
		err = os.Link(source.Path, destPath)
	}
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			l.reportConflict(&report, source.Path, destPath)
			return report, nil
		}
		return report, faults.Wrap(faults.ErrTransient, "linker", "place file", "", err)
	}

	l.logger.Info("placed file",
		logging.String(logging.FieldPath, source.Path),
		logging.String(logging.FieldDestination, destPath),
	)
	l.emit(Action{Op: l.opName(), Source: source.Path, Destination: destPath})
	report.Linked++
	return report, nil
}

// reportConflict records a destination name that already exists. The
// conflict is recovered here, so its tagged error reaches only the log line
// and the action detail, never the caller.
func (l *Linker) reportConflict(report *Report, source, destPath string) {
	err := faults.Wrap(faults.ErrLinkConflict, "linker", "place file", "destination exists", nil)
	l.logger.Error("destination already exists, skipping",
		logging.String(logging.FieldPath, source),
		logging.String(logging.FieldDestination, destPath),
		logging.Error(err),
	)
	l.emit(Action{Op: OpConflict, Source: source, Destination: destPath, Detail: "destination exists"})
	report.Conflicts++
}

// moveFile renames src onto dst, copying across devices when the rename is
// refused with EXDEV. The existence check makes the conflict behavior match
// hardlinking: rename would otherwise silently replace dst.
func (l *Linker) moveFile(src, dst string) error {
	if _, err := os.Lstat(dst); err == nil {
		return fs.ErrExist
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	err := os.Rename(src, dst)
	if err == nil {
		return nil
	}
	var linkErr *os.LinkError
	if errors.As(err, &linkErr) && errors.Is(linkErr.Err, syscall.EXDEV) {
		if copyErr := fileutil.CopyFile(src, dst); copyErr != nil {
			return copyErr
		}
		if removeErr := os.Remove(src); removeErr != nil {
			l.logger.Warn("failed to remove source after cross-device copy",
				logging.String(logging.FieldPath, src),
				logging.Error(removeErr),
			)
		}
		return nil
	}
	return err
}

// pruneSourceDir removes a source directory emptied by a move. Failure is
// harmless (the directory simply stays behind), so it is only logged at
// debug level.
func (l *Linker) pruneSourceDir(path string) {
	if l.dryRun {
		return
	}
	removed, err := fileutil.RemoveIfEmpty(path)
	if err != nil {
		l.logger.Debug("could not remove emptied source directory",
			logging.String(logging.FieldPath, path),
			logging.Error(err),
		)
		return
	}
	if removed {
		l.logger.Debug("removed emptied source directory",
			logging.String(logging.FieldPath, path),
		)
	}
}

func (l *Linker) opName() string {
	if l.mode == ModeMove {
		return OpMove
	}
	return OpLink
}

func (l *Linker) emit(action Action) {
	if l.record != nil {
		l.record(action)
	}
}

func dotted(name string) string {
	return strings.ReplaceAll(name, " ", ".")
}

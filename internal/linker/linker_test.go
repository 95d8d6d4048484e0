package linker

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"mediasort/internal/faults"
	"mediasort/internal/fstree"
	"mediasort/internal/logging"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func statEntry(t *testing.T, path string) *fstree.Entry {
	t.Helper()
	entry, err := fstree.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return entry
}

func TestPlaceFileHardlink(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Movie.Title.2020.mkv")
	writeFile(t, src)
	dest := filepath.Join(dir, "Movies")

	l := New(ModeHardlink, false, logging.NewNop(), nil)
	report, err := l.Place(statEntry(t, src), dest, false)
	if err != nil {
		t.Fatal(err)
	}
	if report.Linked != 1 || report.Conflicts != 0 || report.Skipped != 0 {
		t.Fatalf("unexpected report %+v", report)
	}

	linked := filepath.Join(dest, "Movie.Title.2020.mkv")
	srcInfo, err := os.Stat(src)
	if err != nil {
		t.Fatal(err)
	}
	dstInfo, err := os.Stat(linked)
	if err != nil {
		t.Fatal(err)
	}
	if !os.SameFile(srcInfo, dstInfo) {
		t.Fatal("destination is not a hard link of the source")
	}
}

func TestPlaceFileWithSubfolder(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Movie.Title.2020.mkv")
	writeFile(t, src)
	dest := filepath.Join(dir, "Movies")

	l := New(ModeHardlink, false, logging.NewNop(), nil)
	if _, err := l.Place(statEntry(t, src), dest, true); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(dest, "Movie.Title.2020", "Movie.Title.2020.mkv")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected file at %s: %v", want, err)
	}
}

func TestPlaceDottedName(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Movie Title 2020.mkv")
	writeFile(t, src)
	dest := filepath.Join(dir, "Movies")

	l := New(ModeHardlink, false, logging.NewNop(), nil)
	if _, err := l.Place(statEntry(t, src), dest, true); err != nil {
		t.Fatal(err)
	}

	want := filepath.Join(dest, "Movie.Title.2020", "Movie.Title.2020.mkv")
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("expected dotted destination at %s: %v", want, err)
	}
}

func TestPlaceConflictSkips(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "episode.mkv")
	writeFile(t, src)
	dest := filepath.Join(dir, "season-01")
	writeFile(t, filepath.Join(dest, "episode.mkv"))

	var actions []Action
	l := New(ModeHardlink, false, logging.NewNop(), func(a Action) { actions = append(actions, a) })
	report, err := l.Place(statEntry(t, src), dest, false)
	if err != nil {
		t.Fatal(err)
	}
	if report.Conflicts != 1 || report.Linked != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(actions) != 1 || actions[0].Op != OpConflict {
		t.Fatalf("unexpected actions %+v", actions)
	}
}

func TestPlaceDryRunReportsConflict(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "episode.mkv")
	writeFile(t, src)
	dest := filepath.Join(dir, "season-01")
	existing := filepath.Join(dest, "episode.mkv")
	writeFile(t, existing)

	var actions []Action
	l := New(ModeHardlink, true, logging.NewNop(), func(a Action) { actions = append(actions, a) })
	report, err := l.Place(statEntry(t, src), dest, false)
	if err != nil {
		t.Fatal(err)
	}
	if report.Conflicts != 1 || report.Linked != 0 {
		t.Fatalf("unexpected report %+v", report)
	}
	if len(actions) != 1 || actions[0].Op != OpConflict {
		t.Fatalf("unexpected actions %+v", actions)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		t.Fatal(err)
	}
	dstInfo, err := os.Stat(existing)
	if err != nil {
		t.Fatal(err)
	}
	if os.SameFile(srcInfo, dstInfo) {
		t.Fatal("dry run must not create links")
	}
}

func TestPlaceConflictLogTagsLinkConflict(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "episode.mkv")
	writeFile(t, src)
	dest := filepath.Join(dir, "season-01")
	writeFile(t, filepath.Join(dest, "episode.mkv"))

	logPath := filepath.Join(dir, "out.log")
	logger, err := logging.New(logging.Options{
		Level:            "debug",
		Format:           "json",
		OutputPaths:      []string{logPath},
		ErrorOutputPaths: []string{logPath},
	})
	if err != nil {
		t.Fatal(err)
	}

	l := New(ModeHardlink, false, logger, nil)
	if _, err := l.Place(statEntry(t, src), dest, false); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(logPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), faults.ErrLinkConflict.Error()) {
		t.Fatalf("conflict log line not tagged with the link conflict marker: %s", data)
	}
}

func TestPlaceRefusesSelf(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "tree"), 0o755); err != nil {
		t.Fatal(err)
	}
	src := filepath.Join(dir, "tree")

	l := New(ModeHardlink, false, logging.NewNop(), nil)
	report, err := l.Place(statEntry(t, src), src, false)
	if err != nil {
		t.Fatal(err)
	}
	if report.Skipped != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
}

func TestPlaceDirectoryFlattens(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Show.S01E02")
	writeFile(t, filepath.Join(src, "Show.S01E02.mkv"))
	writeFile(t, filepath.Join(src, "Show.S01E02.srt"))
	dest := filepath.Join(dir, "season-01")

	l := New(ModeHardlink, false, logging.NewNop(), nil)
	report, err := l.Place(statEntry(t, src), dest, false)
	if err != nil {
		t.Fatal(err)
	}
	if report.Linked != 2 {
		t.Fatalf("unexpected report %+v", report)
	}
	for _, name := range []string{"Show.S01E02.mkv", "Show.S01E02.srt"} {
		if _, err := os.Stat(filepath.Join(dest, name)); err != nil {
			t.Fatalf("expected %s directly under destination: %v", name, err)
		}
	}
}

func TestPlaceDryRunMutatesNothing(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Movie.2020.mkv")
	writeFile(t, src)
	dest := filepath.Join(dir, "Movies")

	var actions []Action
	l := New(ModeHardlink, true, logging.NewNop(), func(a Action) { actions = append(actions, a) })
	report, err := l.Place(statEntry(t, src), dest, true)
	if err != nil {
		t.Fatal(err)
	}
	if report.Linked != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatal("dry run must not create the destination folder")
	}
	if len(actions) != 1 || actions[0].Op != OpLink {
		t.Fatalf("unexpected actions %+v", actions)
	}
}

func TestPlaceMoveMode(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Show.S01E02")
	inner := filepath.Join(src, "Show.S01E02.mkv")
	writeFile(t, inner)
	dest := filepath.Join(dir, "season-01")

	l := New(ModeMove, false, logging.NewNop(), nil)
	report, err := l.Place(statEntry(t, src), dest, false)
	if err != nil {
		t.Fatal(err)
	}
	if report.Linked != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if _, err := os.Stat(filepath.Join(dest, "Show.S01E02.mkv")); err != nil {
		t.Fatalf("moved file missing: %v", err)
	}
	if _, err := os.Stat(inner); !os.IsNotExist(err) {
		t.Fatal("source file should be gone after move")
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("emptied source directory should be pruned")
	}
}

func TestPlaceMoveConflictKeepsSource(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "episode.mkv")
	writeFile(t, src)
	dest := filepath.Join(dir, "season-01")
	writeFile(t, filepath.Join(dest, "episode.mkv"))

	l := New(ModeMove, false, logging.NewNop(), nil)
	report, err := l.Place(statEntry(t, src), dest, false)
	if err != nil {
		t.Fatal(err)
	}
	if report.Conflicts != 1 {
		t.Fatalf("unexpected report %+v", report)
	}
	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source must survive a conflicting move: %v", err)
	}
}

func TestParseMode(t *testing.T) {
	if mode, err := ParseMode("hardlink"); err != nil || mode != ModeHardlink {
		t.Fatalf("got %v, %v", mode, err)
	}
	if mode, err := ParseMode("move"); err != nil || mode != ModeMove {
		t.Fatalf("got %v, %v", mode, err)
	}
	if _, err := ParseMode("symlink"); err == nil {
		t.Fatal("expected error for unsupported mode")
	}
}

package library

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"mediasort/internal/config"
	"mediasort/internal/faults"
)

func testLayout(root string) Layout {
	return NewLayout(root, config.Default().Library)
}

func TestCheckInputRejectsControlFolders(t *testing.T) {
	layout := testLayout("/lib")
	for _, folder := range layout.ControlFolders() {
		if err := layout.CheckInput(folder); !errors.Is(err, faults.ErrReservedPath) {
			t.Fatalf("%s: expected reserved path error, got %v", folder, err)
		}
	}
	if err := layout.CheckInput("/lib/downloads/Show.S01"); err != nil {
		t.Fatalf("ordinary input rejected: %v", err)
	}
}

func TestCheckInputCleansPath(t *testing.T) {
	layout := testLayout("/lib")
	if err := layout.CheckInput("/lib/downloads/../Movies/"); !errors.Is(err, faults.ErrReservedPath) {
		t.Fatalf("expected reserved path error for unclean path, got %v", err)
	}
}

func TestEnsureIsIdempotent(t *testing.T) {
	layout := testLayout(t.TempDir())
	if err := layout.Ensure(); err != nil {
		t.Fatal(err)
	}
	if err := layout.Ensure(); err != nil {
		t.Fatalf("second ensure failed: %v", err)
	}
	for _, folder := range layout.ControlFolders() {
		info, err := os.Stat(folder)
		if err != nil || !info.IsDir() {
			t.Fatalf("control folder %s missing: %v", folder, err)
		}
	}
}

func TestSeasonFolderPadsNumber(t *testing.T) {
	layout := testLayout("/lib")
	got := layout.SeasonFolder("Show.Name", 2)
	want := filepath.Join("/lib", "Shows", "Show.Name", "season-02")
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got := layout.SeasonFolder("Show.Name", 11); filepath.Base(got) != "season-11" {
		t.Fatalf("unexpected folder %q", got)
	}
}

func TestLockPathLivesUnderRoot(t *testing.T) {
	layout := testLayout("/lib")
	if filepath.Dir(layout.LockPath()) != "/lib" {
		t.Fatalf("unexpected lock path %q", layout.LockPath())
	}
}

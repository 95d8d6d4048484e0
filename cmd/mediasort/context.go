package main

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"mediasort/internal/config"
	"mediasort/internal/journal"
	"mediasort/internal/library"
	"mediasort/internal/logging"
)

type commandContext struct {
	configFlag *string

	configOnce sync.Once
	config     *config.Config
	configErr  error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, _, _, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
	})
	return c.config, c.configErr
}

// resolveInputPath expands and absolutizes a user-supplied tree path.
func resolveInputPath(arg string) (string, error) {
	expanded, err := config.ExpandPath(strings.TrimSpace(arg))
	if err != nil {
		return "", err
	}
	abs, err := filepath.Abs(expanded)
	if err != nil {
		return "", fmt.Errorf("resolve path %q: %w", arg, err)
	}
	return abs, nil
}

// resolveLibraryRoot picks the library root: the --library flag when given,
// then the configured library_dir, then the parent of the input tree.
func resolveLibraryRoot(flagValue string, cfg *config.Config, inputPath string) (string, error) {
	if value := strings.TrimSpace(flagValue); value != "" {
		return resolveInputPath(value)
	}
	if cfg.Paths.LibraryDir != "" {
		return cfg.Paths.LibraryDir, nil
	}
	return filepath.Dir(inputPath), nil
}

// newRunLogger builds the logger for one invocation. Real runs append to
// the diagnostic log inside the library root; dry runs log to stdout only
// so they leave no trace on disk.
func newRunLogger(cfg *config.Config, libraryRoot string, dryRun bool) (*slog.Logger, error) {
	if dryRun {
		return logging.New(logging.Options{
			Level:       cfg.Logging.Level,
			Format:      cfg.Logging.Format,
			OutputPaths: []string{"stdout"},
		})
	}
	return logging.NewForLibrary(libraryRoot, cfg.Logging.Level, cfg.Logging.Format)
}

// openJournal opens the run journal when enabled. Callers must Close the
// returned store; a nil store disables journaling.
func openJournal(cfg *config.Config) (*journal.Store, error) {
	if !cfg.Journal.Enabled {
		return nil, nil
	}
	store, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return store, nil
}

// acquireLibraryLock takes the per-library flock so concurrent invocations
// against the same root cannot interleave placements. The caller must
// invoke the returned release function.
func acquireLibraryLock(layout library.Layout) (func(), error) {
	lock := flock.New(layout.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire library lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("library %s is locked by another mediasort instance", layout.Root)
	}
	return func() { _ = lock.Unlock() }, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}

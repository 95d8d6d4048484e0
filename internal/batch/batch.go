package batch

import (
	"context"
	"errors"
	"log/slog"
	"path/filepath"

	"mediasort/internal/classify"
	"mediasort/internal/config"
	"mediasort/internal/faults"
	"mediasort/internal/fstree"
	"mediasort/internal/journal"
	"mediasort/internal/library"
	"mediasort/internal/linker"
	"mediasort/internal/logging"
	"mediasort/internal/naming"
	"mediasort/internal/rebuild"
)

// Outcome is the result of rebuilding one input root.
type Outcome struct {
	Path  string
	RunID string
	Stats rebuild.Stats
	Err   error
}

// Summary aggregates the outcomes of a batch invocation.
type Summary struct {
	Outcomes []Outcome
}

// Failed counts the outcomes that ended in an error.
func (s Summary) Failed() int {
	failed := 0
	for _, outcome := range s.Outcomes {
		if outcome.Err != nil {
			failed++
		}
	}
	return failed
}

// Totals sums the per-run counters across the batch.
func (s Summary) Totals() rebuild.Stats {
	var totals rebuild.Stats
	for _, outcome := range s.Outcomes {
		totals.Visited += outcome.Stats.Visited
		totals.Linked += outcome.Stats.Linked
		totals.Conflicts += outcome.Stats.Conflicts
		totals.Skipped += outcome.Stats.Skipped
	}
	return totals
}

// Driver wires classification, linking, and the run journal together and
// executes rebuilds against one library layout. A fresh linker is built per
// run so every recorded action carries that run's identifier.
type Driver struct {
	layout     library.Layout
	classifier *classify.Classifier
	mode       linker.Mode
	dryRun     bool
	store      *journal.Store
	base       *slog.Logger
	logger     *slog.Logger
}

// New builds a driver for the given layout. store may be nil, which
// disables journaling without changing placement behavior.
func New(cfg *config.Config, layout library.Layout, store *journal.Store, dryRun bool, logger *slog.Logger) (*Driver, error) {
	mode, err := linker.ParseMode(cfg.Linking.Mode)
	if err != nil {
		return nil, faults.Wrap(faults.ErrConfiguration, "batch", "parse link mode", "", err)
	}
	return &Driver{
		layout:     layout,
		classifier: classify.New(naming.NewExtractor(), logger),
		mode:       mode,
		dryRun:     dryRun,
		store:      store,
		base:       logger,
		logger:     logging.NewComponentLogger(logger, "batch"),
	}, nil
}

// Layout exposes the library layout the driver places into.
func (d *Driver) Layout() library.Layout { return d.layout }

// RunOne rebuilds a single input root, recording the run and its actions in
// the journal when one is attached.
func (d *Driver) RunOne(ctx context.Context, path string) Outcome {
	outcome := Outcome{Path: path}

	var run *journal.Run
	if d.store != nil {
		began, err := d.store.BeginRun(ctx, path, d.layout.Root, string(d.mode), d.dryRun)
		if err != nil {
			d.logger.Warn("journal unavailable, continuing without it",
				logging.String(logging.FieldPath, path),
				logging.Error(err),
			)
		} else {
			run = began
			outcome.RunID = run.ID
		}
	}

	lnk := linker.New(d.mode, d.dryRun, d.base, d.recordFunc(ctx, run))
	rebuilder := rebuild.New(d.layout, d.classifier, lnk, d.base, d.dryRun)

	outcome.Stats, outcome.Err = rebuilder.Rebuild(ctx, path)

	if run != nil {
		run.Linked = outcome.Stats.Linked
		run.Conflicts = outcome.Stats.Conflicts
		run.Skipped = outcome.Stats.Skipped
		if outcome.Err != nil {
			run.Error = outcome.Err.Error()
		}
		if err := d.store.FinishRun(ctx, run); err != nil {
			d.logger.Warn("failed to finalize journal run",
				logging.String(logging.FieldRunID, run.ID),
				logging.Error(err),
			)
		}
	}
	return outcome
}

// RunBatch rebuilds every immediate child of dir as an independent run, in
// name order. A failing child is reported in its outcome and the batch
// moves on; only a cancelled context or an unreadable batch directory stops
// the loop.
func (d *Driver) RunBatch(ctx context.Context, dir string) (Summary, error) {
	var summary Summary

	if !filepath.IsAbs(dir) {
		return summary, faults.Wrap(faults.ErrNotFound, "batch", "check input",
			"batch directory must be absolute: "+dir, nil)
	}
	root, err := fstree.Stat(dir)
	if err != nil {
		return summary, faults.Wrap(faults.ErrNotFound, "batch", "stat input", "", err)
	}
	if !root.Dir {
		return summary, faults.Wrap(faults.ErrValidation, "batch", "check input",
			"batch input is not a directory: "+dir, nil)
	}
	children, err := root.Children()
	if err != nil {
		return summary, faults.Wrap(faults.ErrNotFound, "batch", "scan input", "", err)
	}

	for _, child := range children {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		outcome := d.RunOne(ctx, child.Path)
		if outcome.Err != nil {
			if errors.Is(outcome.Err, context.Canceled) || errors.Is(outcome.Err, context.DeadlineExceeded) {
				summary.Outcomes = append(summary.Outcomes, outcome)
				return summary, outcome.Err
			}
			d.logger.Error("batch entry failed, continuing",
				logging.String(logging.FieldPath, child.Path),
				logging.Error(outcome.Err),
			)
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}

	d.logger.Info("batch finished",
		logging.String(logging.FieldPath, dir),
		logging.Int("entries", len(summary.Outcomes)),
		logging.Int("failed", summary.Failed()),
	)
	return summary, nil
}

func (d *Driver) recordFunc(ctx context.Context, run *journal.Run) func(linker.Action) {
	if d.store == nil || run == nil {
		return nil
	}
	return func(action linker.Action) {
		err := d.store.RecordAction(ctx, run.ID, action.Op, action.Source, action.Destination, action.Detail)
		if err != nil {
			d.logger.Warn("failed to record action",
				logging.String(logging.FieldRunID, run.ID),
				logging.Error(err),
			)
		}
	}
}

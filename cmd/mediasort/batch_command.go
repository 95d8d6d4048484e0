package main

import (
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"mediasort/internal/batch"
	"mediasort/internal/library"
)

func newBatchCommand(ctx *commandContext) *cobra.Command {
	var libraryFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "batch <dir>",
		Short: "Sort every entry of a staging directory as an independent run",
		Long: `Treat each immediate child of <dir> as its own input tree and sort it
into the library. A child that fails is reported and the batch continues
with the next one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			dir, err := resolveInputPath(args[0])
			if err != nil {
				return err
			}
			root, err := resolveLibraryRoot(libraryFlag, cfg, dir)
			if err != nil {
				return err
			}
			layout := library.NewLayout(root, cfg.Library)

			logger, err := newRunLogger(cfg, root, dryRun)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			if !dryRun {
				if err := layout.Ensure(); err != nil {
					return err
				}
				release, err := acquireLibraryLock(layout)
				if err != nil {
					return err
				}
				defer release()
			}

			store, err := openJournal(cfg)
			if err != nil {
				return err
			}
			if store != nil {
				defer store.Close()
			}

			driver, err := batch.New(cfg, layout, store, dryRun, logger)
			if err != nil {
				return err
			}

			summary, err := driver.RunBatch(cmd.Context(), dir)
			if err != nil {
				return err
			}

			rows := make([][]string, 0, len(summary.Outcomes))
			for _, outcome := range summary.Outcomes {
				status := "ok"
				if outcome.Err != nil {
					status = "failed"
				}
				rows = append(rows, []string{
					filepath.Base(outcome.Path),
					strconv.Itoa(outcome.Stats.Linked),
					strconv.Itoa(outcome.Stats.Conflicts),
					strconv.Itoa(outcome.Stats.Skipped),
					status,
				})
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, renderTable(
				[]string{"Entry", "Linked", "Conflicts", "Skipped", "Status"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignLeft},
				stdoutIsTerminal(),
			))

			if failed := summary.Failed(); failed > 0 {
				return fmt.Errorf("%d of %d batch entries failed", failed, len(summary.Outcomes))
			}
			totals := summary.Totals()
			fmt.Fprintf(out, "Batch complete: %d entries, linked %d, conflicts %d, skipped %d\n",
				len(summary.Outcomes), totals.Linked, totals.Conflicts, totals.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&libraryFlag, "library", "l", "", "Library root (defaults to the configured library_dir, then the staging directory's parent)")
	cmd.Flags().BoolVar(&dryRun, "dryrun", false, "Log intended placements without touching the filesystem")
	return cmd
}

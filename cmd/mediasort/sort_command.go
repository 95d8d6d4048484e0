package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediasort/internal/batch"
	"mediasort/internal/library"
)

func newSortCommand(ctx *commandContext) *cobra.Command {
	var libraryFlag string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "sort <path>",
		Short: "Classify one media tree and place it into the library",
		Long: `Classify the tree rooted at <path> and hard-link (or move, per config)
every recognized movie, episode, featurette, and music entry into the
library's Shows, Movies, and Music folders. Unrecognized entries are left
where they are.

Examples:
  mediasort sort ~/downloads/Show.Name.S02.1080p
  mediasort sort --library /srv/media ~/downloads/Movie.2020.mkv
  mediasort sort --dryrun ~/downloads/Show.Name.S02.1080p`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}

			path, err := resolveInputPath(args[0])
			if err != nil {
				return err
			}
			root, err := resolveLibraryRoot(libraryFlag, cfg, path)
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

			outcome := driver.RunOne(cmd.Context(), path)

			out := cmd.OutOrStdout()
			if dryRun {
				fmt.Fprintf(out, "Dry run against %s\n", path)
			} else {
				fmt.Fprintf(out, "Sorted %s\n", path)
			}
			fmt.Fprintf(out, "  visited %d, linked %d, conflicts %d, skipped %d\n",
				outcome.Stats.Visited, outcome.Stats.Linked, outcome.Stats.Conflicts, outcome.Stats.Skipped)
			if outcome.RunID != "" {
				fmt.Fprintf(out, "  run %s\n", outcome.RunID)
			}
			return outcome.Err
		},
	}

	cmd.Flags().StringVarP(&libraryFlag, "library", "l", "", "Library root (defaults to the configured library_dir, then the input's parent)")
	cmd.Flags().BoolVar(&dryRun, "dryrun", false, "Log intended placements without touching the filesystem")
	return cmd
}

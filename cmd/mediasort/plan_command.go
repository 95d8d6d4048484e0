package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mediasort/internal/classify"
	"mediasort/internal/library"
	"mediasort/internal/linker"
	"mediasort/internal/naming"
	"mediasort/internal/rebuild"
)

func newPlanCommand(ctx *commandContext) *cobra.Command {
	var libraryFlag string

	cmd := &cobra.Command{
		Use:   "plan <path>",
		Short: "Show the placements a sort of <path> would perform",
		Long: `Walk and classify the tree at <path> without mutating anything, then
print every placement a real sort would make. Conflicts with files already
in the library show up as conflict rows.`,
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

			logger, err := newRunLogger(cfg, root, true)
			if err != nil {
				return fmt.Errorf("setup logging: %w", err)
			}

			mode, err := linker.ParseMode(cfg.Linking.Mode)
			if err != nil {
				return err
			}

			var actions []linker.Action
			lnk := linker.New(mode, true, logger, func(action linker.Action) {
				actions = append(actions, action)
			})
			classifier := classify.New(naming.NewExtractor(), logger)
			rebuilder := rebuild.New(layout, classifier, lnk, logger, true)

			stats, err := rebuilder.Rebuild(cmd.Context(), path)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(actions) == 0 {
				fmt.Fprintf(out, "Nothing to place under %s (%d entries visited)\n", path, stats.Visited)
				return nil
			}

			rows := make([][]string, 0, len(actions))
			for _, action := range actions {
				rows = append(rows, []string{action.Op, action.Source, action.Destination})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Op", "Source", "Destination"},
				rows,
				[]columnAlignment{alignLeft, alignLeft, alignLeft},
				stdoutIsTerminal(),
			))
			fmt.Fprintf(out, "%d placements planned, %d conflicts, %d skipped\n",
				stats.Linked, stats.Conflicts, stats.Skipped)
			return nil
		},
	}

	cmd.Flags().StringVarP(&libraryFlag, "library", "l", "", "Library root (defaults to the configured library_dir, then the input's parent)")
	return cmd
}

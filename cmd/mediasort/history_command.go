package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mediasort/internal/journal"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recent runs, or the recorded actions of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			if !cfg.Journal.Enabled {
				return errors.New("the run journal is disabled in configuration")
			}

			store, err := openJournal(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			if len(args) == 1 {
				return printRunActions(cmd, store, strings.TrimSpace(args[0]))
			}
			return printRecentRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	return cmd
}

func printRecentRuns(cmd *cobra.Command, store *journal.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			shortID(run.ID),
			run.Root,
			run.Mode,
			yesNo(run.DryRun),
			strconv.Itoa(run.Linked),
			strconv.Itoa(run.Conflicts),
			strconv.Itoa(run.Skipped),
			formatTimestamp(run.StartedAt),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Root", "Mode", "Dry", "Linked", "Conflicts", "Skipped", "Started"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft},
		stdoutIsTerminal(),
	))
	return nil
}

func printRunActions(cmd *cobra.Command, store *journal.Store, idArg string) error {
	runID, err := resolveRunID(cmd, store, idArg)
	if err != nil {
		return err
	}
	actions, err := store.RunActions(cmd.Context(), runID)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(actions) == 0 {
		fmt.Fprintf(out, "Run %s recorded no actions\n", shortID(runID))
		return nil
	}

	rows := make([][]string, 0, len(actions))
	for _, action := range actions {
		rows = append(rows, []string{action.Op, action.Source, action.Destination, action.Detail})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Op", "Source", "Destination", "Detail"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft},
		stdoutIsTerminal(),
	))
	return nil
}

// resolveRunID accepts either a full run identifier or an unambiguous
// prefix of one, matched against recent runs.
func resolveRunID(cmd *cobra.Command, store *journal.Store, idArg string) (string, error) {
	if idArg == "" {
		return "", errors.New("run identifier is required")
	}
	runs, err := store.RecentRuns(cmd.Context(), 1000)
	if err != nil {
		return "", err
	}
	var matches []string
	for _, run := range runs {
		if run.ID == idArg {
			return run.ID, nil
		}
		if strings.HasPrefix(run.ID, idArg) {
			matches = append(matches, run.ID)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return "", fmt.Errorf("no run matches %q", idArg)
	default:
		return "", fmt.Errorf("run prefix %q is ambiguous (%d matches)", idArg, len(matches))
	}
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format("2006-01-02 15:04:05")
}

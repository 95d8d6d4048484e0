package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one rebuild invocation recorded in the journal.
type Run struct {
	ID         string
	Root       string
	Library    string
	Mode       string
	DryRun     bool
	Linked     int
	Conflicts  int
	Skipped    int
	Error      string
	StartedAt  time.Time
	FinishedAt time.Time
}

// Action is one recorded placement decision.
type Action struct {
	ID          int64
	RunID       string
	Op          string
	Source      string
	Destination string
	Detail      string
	CreatedAt   time.Time
}

// BeginRun inserts a new run row and returns it with a fresh identifier.
func (s *Store) BeginRun(ctx context.Context, root, library, mode string, dryRun bool) (*Run, error) {
	run := &Run{
		ID:        uuid.NewString(),
		Root:      root,
		Library:   library,
		Mode:      mode,
		DryRun:    dryRun,
		StartedAt: time.Now().UTC(),
	}
	err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, root, library, mode, dry_run, started_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Root, run.Library, run.Mode, boolToInt(run.DryRun), run.StartedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// RecordAction appends one placement decision to a run.
func (s *Store) RecordAction(ctx context.Context, runID, op, source, destination, detail string) error {
	err := s.execWithRetry(ctx,
		`INSERT INTO actions (run_id, op, source, destination, detail, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		runID, op, source, destination, detail, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("insert action: %w", err)
	}
	return nil
}

// FinishRun stores final counters, the optional error text, and the finish
// timestamp.
func (s *Store) FinishRun(ctx context.Context, run *Run) error {
	run.FinishedAt = time.Now().UTC()
	err := s.execWithRetry(ctx,
		`UPDATE runs SET linked = ?, conflicts = ?, skipped = ?, error = ?, finished_at = ? WHERE id = ?`,
		run.Linked, run.Conflicts, run.Skipped, run.Error, run.FinishedAt.Format(time.RFC3339), run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root, library, mode, dry_run, linked, conflicts, skipped, error, started_at, finished_at
		 FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// RunActions returns every action recorded for one run, oldest first.
func (s *Store) RunActions(ctx context.Context, runID string) ([]Action, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, run_id, op, source, destination, detail, created_at
		 FROM actions WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	var actions []Action
	for rows.Next() {
		var a Action
		var createdAt string
		if err := rows.Scan(&a.ID, &a.RunID, &a.Op, &a.Source, &a.Destination, &a.Detail, &createdAt); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		a.CreatedAt = parseTime(createdAt)
		actions = append(actions, a)
	}
	return actions, rows.Err()
}

func scanRun(rows *sql.Rows) (Run, error) {
	var run Run
	var dryRun int
	var startedAt string
	var finishedAt sql.NullString
	if err := rows.Scan(&run.ID, &run.Root, &run.Library, &run.Mode, &dryRun,
		&run.Linked, &run.Conflicts, &run.Skipped, &run.Error, &startedAt, &finishedAt); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.DryRun = dryRun != 0
	run.StartedAt = parseTime(startedAt)
	if finishedAt.Valid {
		run.FinishedAt = parseTime(finishedAt.String)
	}
	return run, nil
}

func parseTime(value string) time.Time {
	ts, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return ts
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}

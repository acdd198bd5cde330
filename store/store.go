package store

import (
	"database/sql"
	"fmt"
	"time"

	"go_sweepgrid/sweep"
)

// Run is one row of the sweep_runs table.
type Run struct {
	ID        string    // UUID assigned by the engine
	XType     string    // Axis labels and their raw value specifications
	XValues   string
	YType     string
	YValues   string
	ZType     string
	ZValues   string
	Cells     int       // Total cell count of the sweep
	OutputDir string    // Where artifacts were saved, if anywhere
	CreatedAt time.Time // Timestamp when the run started
}

// Cell is one row of the sweep_cells table.
type Cell struct {
	ID        int64
	RunID     string
	IX        int
	IY        int
	IZ        int
	Prompt    string
	Seed      int64
	Caption   string
	Blank     bool // The cell failed and holds a placeholder
	CreatedAt time.Time
}

// Store records sweep runs and cells. It implements the engine's Recorder
// interface; recording is synchronous since the driver renders one cell at
// a time and a local insert is negligible next to a render call.
type Store struct {
	db *sql.DB
}

// New wraps an open, migrated database connection.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// RecordRun inserts the run header row.
func (s *Store) RecordRun(info sweep.RunInfo) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	query := `
		INSERT INTO sweep_runs (
			id, x_type, x_values, y_type, y_values, z_type, z_values,
			cells, output_dir
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query,
		info.ID,
		info.XType, info.XValues,
		info.YType, info.YValues,
		info.ZType, info.ZValues,
		info.Cells, info.OutputDir,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}
	return nil
}

// RecordCell inserts one cell row.
func (s *Store) RecordCell(cell sweep.CellInfo) error {
	if s.db == nil {
		return fmt.Errorf("database connection is nil")
	}
	query := `
		INSERT INTO sweep_cells (
			run_id, ix, iy, iz, prompt, seed, caption, blank
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := s.db.Exec(query,
		cell.RunID,
		cell.IX, cell.IY, cell.IZ,
		cell.Prompt, cell.Seed, cell.Caption,
		boolToInt(cell.Blank),
	)
	if err != nil {
		return fmt.Errorf("failed to insert cell: %w", err)
	}
	return nil
}

// RunCells returns every cell of a run ordered by flat coordinate
// (x fastest, then y, then z), matching the engine's output order.
func (s *Store) RunCells(runID string) ([]Cell, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	query := `
		SELECT id, run_id, ix, iy, iz, prompt, seed, caption, blank, created_at
		FROM sweep_cells
		WHERE run_id = ?
		ORDER BY iz, iy, ix`
	rows, err := s.db.Query(query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query cells: %w", err)
	}
	defer rows.Close()

	var cells []Cell
	for rows.Next() {
		var c Cell
		var blank int
		if err := rows.Scan(&c.ID, &c.RunID, &c.IX, &c.IY, &c.IZ,
			&c.Prompt, &c.Seed, &c.Caption, &blank, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan cell: %w", err)
		}
		c.Blank = blank != 0
		cells = append(cells, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate cells: %w", err)
	}
	return cells, nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, x_type, x_values, y_type, y_values, z_type, z_values,
		       cells, output_dir, created_at
		FROM sweep_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?`
	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.XType, &r.XValues, &r.YType, &r.YValues,
			&r.ZType, &r.ZValues, &r.Cells, &r.OutputDir, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ sweep.Recorder = (*Store)(nil)

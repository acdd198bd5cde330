package store

import (
	"database/sql"
	"path/filepath"
	"testing"

	"go_sweepgrid/sweep"
)

func openTestStore(t *testing.T) (*Store, *sql.DB) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.sqlite")
	db, err := OpenWithDefaults(path)
	if err != nil {
		t.Fatalf("Open error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := Migrate(db); err != nil {
		t.Fatalf("Migrate error = %v", err)
	}
	return New(db), db
}

// TestMigrateIdempotent verifies re-running migrations is a no-op.
func TestMigrateIdempotent(t *testing.T) {
	_, db := openTestStore(t)
	if err := Migrate(db); err != nil {
		t.Errorf("second Migrate error = %v, want nil", err)
	}
}

// TestRecordAndQueryRun verifies the run/cell round trip and cell ordering.
func TestRecordAndQueryRun(t *testing.T) {
	s, _ := openTestStore(t)

	run := sweep.RunInfo{
		ID:      "run-1",
		XType:   "Steps",
		XValues: "10, 20",
		YType:   "CFG Scale",
		YValues: "5-7",
		ZType:   "Nothing",
		Cells:   6,
	}
	if err := s.RecordRun(run); err != nil {
		t.Fatalf("RecordRun error = %v", err)
	}

	// Insert out of order; the query must return flat coordinate order.
	cells := []sweep.CellInfo{
		{RunID: "run-1", IX: 1, IY: 0, IZ: 0, Prompt: "p", Seed: 2},
		{RunID: "run-1", IX: 0, IY: 1, IZ: 0, Prompt: "p", Seed: 3, Blank: true},
		{RunID: "run-1", IX: 0, IY: 0, IZ: 0, Prompt: "p", Seed: 1},
	}
	for _, c := range cells {
		if err := s.RecordCell(c); err != nil {
			t.Fatalf("RecordCell error = %v", err)
		}
	}

	got, err := s.RunCells("run-1")
	if err != nil {
		t.Fatalf("RunCells error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("RunCells returned %d cells, want 3", len(got))
	}
	wantSeeds := []int64{1, 2, 3}
	for i, want := range wantSeeds {
		if got[i].Seed != want {
			t.Errorf("cell %d seed = %d, want %d", i, got[i].Seed, want)
		}
	}
	if !got[2].Blank {
		t.Error("blank flag lost in round trip")
	}
	if got[0].CreatedAt.IsZero() {
		t.Error("CreatedAt not populated")
	}
}

// TestRecentRuns verifies newest-first listing with a limit.
func TestRecentRuns(t *testing.T) {
	s, _ := openTestStore(t)

	for _, id := range []string{"run-a", "run-b", "run-c"} {
		if err := s.RecordRun(sweep.RunInfo{ID: id, XType: "Seed", YType: "Nothing", ZType: "Nothing", Cells: 1}); err != nil {
			t.Fatalf("RecordRun(%s) error = %v", id, err)
		}
	}

	runs, err := s.RecentRuns(2)
	if err != nil {
		t.Fatalf("RecentRuns error = %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("RecentRuns returned %d, want 2", len(runs))
	}
	if runs[0].ID != "run-c" {
		t.Errorf("newest run = %q, want run-c", runs[0].ID)
	}
}

// TestForeignKeyCascade verifies cells disappear with their run.
func TestForeignKeyCascade(t *testing.T) {
	s, db := openTestStore(t)

	if err := s.RecordRun(sweep.RunInfo{ID: "run-x", XType: "Seed", YType: "Nothing", ZType: "Nothing", Cells: 1}); err != nil {
		t.Fatalf("RecordRun error = %v", err)
	}
	if err := s.RecordCell(sweep.CellInfo{RunID: "run-x", Prompt: "p", Seed: 1}); err != nil {
		t.Fatalf("RecordCell error = %v", err)
	}

	if _, err := db.Exec("DELETE FROM sweep_runs WHERE id = ?", "run-x"); err != nil {
		t.Fatalf("delete run error = %v", err)
	}
	cells, err := s.RunCells("run-x")
	if err != nil {
		t.Fatalf("RunCells error = %v", err)
	}
	if len(cells) != 0 {
		t.Errorf("cells after cascade = %d, want 0", len(cells))
	}
}

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/mreece/fincast/internal/engine"
	"github.com/mreece/fincast/internal/storage"
)

// CreateRun persists a run and its snapshot sequence in one transaction.
// Snapshots are stored as JSON with headline numbers broken out into
// columns for querying.
func (s *SQLiteStore) CreateRun(ctx context.Context, run *storage.Run, snapshots []engine.Snapshot) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt == 0 {
		run.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		"INSERT INTO runs (id, name, created_by, start_year, end_year, insolvent, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)",
		run.ID, run.Name, run.CreatedBy, run.StartYear, run.EndYear, boolToInt(run.Insolvent), run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert run: %w", err)
	}

	for i := range snapshots {
		snap := &snapshots[i]
		data, err := json.Marshal(snap)
		if err != nil {
			return fmt.Errorf("failed to encode snapshot for year %d: %w", snap.Year, err)
		}
		_, err = tx.ExecContext(ctx,
			"INSERT INTO snapshots (run_id, year, net_worth, income, taxes, spending, insolvent, data) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
			run.ID, snap.Year,
			snap.Totals.NetWorth.InexactFloat64(),
			snap.Totals.Income.InexactFloat64(),
			snap.Totals.TaxesPaid.InexactFloat64(),
			snap.Totals.Spending.InexactFloat64(),
			boolToInt(snap.Insolvent), string(data),
		)
		if err != nil {
			return fmt.Errorf("failed to insert snapshot for year %d: %w", snap.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetRun retrieves a run by ID.
func (s *SQLiteStore) GetRun(ctx context.Context, runID string) (*storage.Run, error) {
	run := &storage.Run{}
	var insolvent int
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, created_by, start_year, end_year, insolvent, created_at FROM runs WHERE id = ?",
		runID,
	).Scan(&run.ID, &run.Name, &run.CreatedBy, &run.StartYear, &run.EndYear, &insolvent, &run.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %s: %w", runID, storage.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	run.Insolvent = insolvent != 0
	return run, nil
}

// ListRuns returns all runs, newest first.
func (s *SQLiteStore) ListRuns(ctx context.Context) ([]*storage.Run, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, created_by, start_year, end_year, insolvent, created_at FROM runs ORDER BY created_at DESC, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*storage.Run
	for rows.Next() {
		run := &storage.Run{}
		var insolvent int
		if err := rows.Scan(&run.ID, &run.Name, &run.CreatedBy, &run.StartYear, &run.EndYear, &insolvent, &run.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		run.Insolvent = insolvent != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return runs, nil
}

// ListSnapshots returns a run's snapshots in year order.
func (s *SQLiteStore) ListSnapshots(ctx context.Context, runID string) ([]engine.Snapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT data FROM snapshots WHERE run_id = ? ORDER BY year",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []engine.Snapshot
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		var snap engine.Snapshot
		if err := json.Unmarshal([]byte(data), &snap); err != nil {
			return nil, fmt.Errorf("failed to decode snapshot: %w", err)
		}
		snapshots = append(snapshots, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return snapshots, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

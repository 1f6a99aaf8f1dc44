package database

import (
	"database/sql"
	"fmt"
	"time"
)

// RunRepository handles database operations for sync run history
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// StartRun records the beginning of a sync run and returns its id
func (r *RunRepository) StartRun(startedAt time.Time) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO sync_runs (started_at, status)
		VALUES (?, 'running')
	`, startedAt.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to insert sync run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get sync run id: %w", err)
	}
	return id, nil
}

// FinishRun records the completion of a sync run
func (r *RunRepository) FinishRun(runID int64, totalProducts int, status string) error {
	_, err := r.db.Exec(`
		UPDATE sync_runs
		SET finished_at = ?, total_products = ?, status = ?
		WHERE id = ?
	`, time.Now().UTC(), totalProducts, status, runID)
	if err != nil {
		return fmt.Errorf("failed to finish sync run: %w", err)
	}
	return nil
}

// AddFeedResult records one feed's outcome within a run
func (r *RunRepository) AddFeedResult(runID int64, feedName, feedID string, fetched, kept int, errMsg string) error {
	_, err := r.db.Exec(`
		INSERT INTO sync_feed_results (run_id, feed_name, feed_id, fetched, kept, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, feedName, feedID, fetched, kept, errMsg)
	if err != nil {
		return fmt.Errorf("failed to insert feed result: %w", err)
	}
	return nil
}

// GetRecentRuns returns the most recent sync runs, newest first
func (r *RunRepository) GetRecentRuns(limit int) ([]SyncRun, error) {
	rows, err := r.db.Query(`
		SELECT id, started_at, finished_at, total_products, status
		FROM sync_runs
		ORDER BY started_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent runs: %w", err)
	}
	defer rows.Close()

	var runs []SyncRun
	for rows.Next() {
		var run SyncRun
		var finishedAt sql.NullTime
		if err := rows.Scan(&run.ID, &run.StartedAt, &finishedAt, &run.TotalProducts, &run.Status); err != nil {
			return nil, fmt.Errorf("failed to scan run row: %w", err)
		}
		if finishedAt.Valid {
			run.FinishedAt = &finishedAt.Time
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w", err)
	}

	return runs, nil
}

// GetFeedResults returns the per-feed outcomes for one run
func (r *RunRepository) GetFeedResults(runID int64) ([]FeedResult, error) {
	rows, err := r.db.Query(`
		SELECT id, run_id, feed_name, feed_id, fetched, kept, error
		FROM sync_feed_results
		WHERE run_id = ?
		ORDER BY feed_name
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get feed results: %w", err)
	}
	defer rows.Close()

	var results []FeedResult
	for rows.Next() {
		var fr FeedResult
		if err := rows.Scan(&fr.ID, &fr.RunID, &fr.FeedName, &fr.FeedID, &fr.Fetched, &fr.Kept, &fr.Error); err != nil {
			return nil, fmt.Errorf("failed to scan feed result row: %w", err)
		}
		results = append(results, fr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating feed result rows: %w", err)
	}

	return results, nil
}

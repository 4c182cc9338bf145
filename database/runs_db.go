package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"devtasks/logger"
	"devtasks/models"

	"github.com/google/uuid"
)

// RecordTagRun persists one collector invocation and its per-marker
// counts in a single transaction. Returns the stored run.
func RecordTagRun(summary models.ScanSummary, markerOrder []string) (models.TagRun, error) {
	if DB == nil {
		return models.TagRun{}, errors.New("database connection is not initialized")
	}

	run := models.TagRun{
		ID:           uuid.NewString(),
		RanAt:        time.Now().UTC(),
		FilesScanned: summary.FilesScanned,
		FilesFailed:  len(summary.Failures),
		TotalTags:    summary.Total,
	}

	tx, err := DB.Begin()
	if err != nil {
		logger.Error("RecordTagRun: Error starting transaction: %v", err)
		return models.TagRun{}, fmt.Errorf("starting tag run transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		"INSERT INTO tag_runs (id, ran_at, files_scanned, files_failed, total_tags) VALUES (?, ?, ?, ?, ?)",
		run.ID, run.RanAt.Format(time.RFC3339), run.FilesScanned, run.FilesFailed, run.TotalTags,
	)
	if err != nil {
		logger.Error("RecordTagRun: Error inserting run %s: %v", run.ID, err)
		return models.TagRun{}, fmt.Errorf("inserting tag run: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO tag_run_counts (run_id, marker, count) VALUES (?, ?, ?)")
	if err != nil {
		logger.Error("RecordTagRun: Error preparing counts statement: %v", err)
		return models.TagRun{}, fmt.Errorf("preparing tag run counts statement: %w", err)
	}
	defer stmt.Close()

	// Counts stored in declared marker order so history listings match
	// the report's section order.
	for _, marker := range markerOrder {
		count, ok := summary.Counts[marker]
		if !ok {
			continue
		}
		if _, err := stmt.Exec(run.ID, marker, count); err != nil {
			logger.Error("RecordTagRun: Error inserting count for marker %s: %v", marker, err)
			return models.TagRun{}, fmt.Errorf("inserting count for marker %s: %w", marker, err)
		}
		run.Counts = append(run.Counts, models.MarkerCount{Marker: marker, Count: count})
	}

	if err := tx.Commit(); err != nil {
		logger.Error("RecordTagRun: Error committing run %s: %v", run.ID, err)
		return models.TagRun{}, fmt.Errorf("committing tag run: %w", err)
	}
	logger.Info("Recorded tag run %s (%d occurrences)", run.ID, run.TotalTags)
	return run, nil
}

// GetTagRuns returns the most recent runs, newest first, without their
// per-marker counts.
func GetTagRuns(limit int) ([]models.TagRun, error) {
	if DB == nil {
		return nil, errors.New("database connection is not initialized")
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := DB.Query(
		"SELECT id, ran_at, files_scanned, files_failed, total_tags FROM tag_runs ORDER BY ran_at DESC, id DESC LIMIT ?",
		limit,
	)
	if err != nil {
		logger.Error("GetTagRuns: Error querying runs: %v", err)
		return nil, fmt.Errorf("querying tag runs: %w", err)
	}
	defer rows.Close()

	var runs []models.TagRun
	for rows.Next() {
		run, err := scanTagRun(rows)
		if err != nil {
			logger.Error("GetTagRuns: Error scanning run row: %v", err)
			return nil, fmt.Errorf("scanning tag run row: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetTagRunByID returns one run with its per-marker counts populated.
func GetTagRunByID(id string) (models.TagRun, error) {
	if DB == nil {
		return models.TagRun{}, errors.New("database connection is not initialized")
	}
	row := DB.QueryRow("SELECT id, ran_at, files_scanned, files_failed, total_tags FROM tag_runs WHERE id = ?", id)
	run, err := scanTagRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.TagRun{}, fmt.Errorf("tag run %s not found", id)
		}
		logger.Error("GetTagRunByID: Error querying run %s: %v", id, err)
		return models.TagRun{}, fmt.Errorf("querying tag run %s: %w", id, err)
	}

	rows, err := DB.Query("SELECT marker, count FROM tag_run_counts WHERE run_id = ? ORDER BY rowid ASC", id)
	if err != nil {
		logger.Error("GetTagRunByID: Error querying counts for run %s: %v", id, err)
		return models.TagRun{}, fmt.Errorf("querying counts for run %s: %w", id, err)
	}
	defer rows.Close()

	for rows.Next() {
		var mc models.MarkerCount
		if err := rows.Scan(&mc.Marker, &mc.Count); err != nil {
			return models.TagRun{}, fmt.Errorf("scanning marker count row: %w", err)
		}
		run.Counts = append(run.Counts, mc)
	}
	return run, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanTagRun(row rowScanner) (models.TagRun, error) {
	var run models.TagRun
	var ranAt string
	if err := row.Scan(&run.ID, &ranAt, &run.FilesScanned, &run.FilesFailed, &run.TotalTags); err != nil {
		return models.TagRun{}, err
	}
	parsed, err := time.Parse(time.RFC3339, ranAt)
	if err != nil {
		// Older rows may carry sqlite's default timestamp format.
		parsed, err = time.Parse("2006-01-02 15:04:05", ranAt)
		if err != nil {
			return models.TagRun{}, fmt.Errorf("parsing ran_at %q: %w", ranAt, err)
		}
	}
	run.RanAt = parsed
	return run, nil
}

// Package store provides SQLite-backed persistence for outcome records.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/seedplanter/seedloop/internal/classify"
	"github.com/seedplanter/seedloop/internal/models"
	_ "modernc.org/sqlite"
)

// Sentinel errors for outcome store operations. These are caller-contract
// violations, never retried internally.
var (
	// ErrDuplicateAttempt indicates an unresolved attempt already exists for
	// the issue.
	ErrDuplicateAttempt = errors.New("unresolved attempt already exists")
	// ErrRecordNotFound indicates no attempt was recorded for the issue.
	ErrRecordNotFound = errors.New("no attempt recorded")
	// ErrInvalidTransition indicates the requested status is unreachable from
	// the record's current status.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Store provides access to the outcome SQLite database.
type Store struct {
	db *sql.DB
}

// New creates a new Store and runs migrations.
func New(dbPath string) (*Store, error) {
	// Ensure directory exists
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	// Open with WAL mode for better concurrency
	db, err := sql.Open("sqlite", dbPath+"?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// SQLite only supports one writer at a time
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping checks the database connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate runs idempotent schema migrations.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS outcomes (
		id TEXT PRIMARY KEY,
		issue_number INTEGER NOT NULL,
		issue_title TEXT NOT NULL,
		category TEXT NOT NULL,
		labels TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		pr_number INTEGER,
		files_changed INTEGER NOT NULL DEFAULT 0,
		error_message TEXT,
		created_at DATETIME NOT NULL,
		resolved_at DATETIME,
		merged_at DATETIME,
		time_to_resolve_minutes REAL,
		time_to_merge_minutes REAL
	);

	CREATE INDEX IF NOT EXISTS idx_outcomes_issue_number ON outcomes(issue_number);
	CREATE INDEX IF NOT EXISTS idx_outcomes_created_at ON outcomes(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// RecordAttempt creates a new pending outcome record for an issue. If
// category is empty it is derived from the labels. Returns
// ErrDuplicateAttempt when a non-terminal record already exists for the same
// issue number; callers decide whether to ignore it or close out the prior
// attempt first.
func (s *Store) RecordAttempt(issueNumber int, issueTitle string, labels []string, category string) (*models.OutcomeRecord, error) {
	if category == "" {
		category = classify.Categorize(labels)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Reject while an earlier attempt for the same issue is still in flight.
	var existingID string
	err = tx.QueryRow(
		`SELECT id FROM outcomes WHERE issue_number = ? AND status NOT IN (?, ?, ?) LIMIT 1`,
		issueNumber, models.StatusMerged, models.StatusClosed, models.StatusFailed,
	).Scan(&existingID)
	if err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("check existing attempt: %w", err)
	}
	if existingID != "" {
		return nil, fmt.Errorf("issue #%d: %w", issueNumber, ErrDuplicateAttempt)
	}

	now := time.Now().UTC()
	record := &models.OutcomeRecord{
		ID:          uuid.New().String(),
		IssueNumber: issueNumber,
		IssueTitle:  issueTitle,
		Category:    category,
		Labels:      labels,
		Status:      models.StatusPending,
		CreatedAt:   now,
	}

	labelsJSON, _ := json.Marshal(labels)
	_, err = tx.Exec(
		`INSERT INTO outcomes (id, issue_number, issue_title, category, labels, status, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.IssueNumber, record.IssueTitle, record.Category, string(labelsJSON), record.Status, record.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert outcome: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return record, nil
}

// UpdateOptions carries the optional fields of a status transition.
type UpdateOptions struct {
	PRNumber     int
	FilesChanged int
	ErrorMessage string
}

// UpdateStatus transitions the most recent record for an issue to newStatus.
// The transition is validated against the state machine and applied in a
// single transaction; on any error the record is left unchanged. Timestamp
// and duration fields are computed once, at the moment of transition.
func (s *Store) UpdateStatus(issueNumber int, newStatus models.Status, opts UpdateOptions) (*models.OutcomeRecord, error) {
	if !newStatus.Valid() {
		return nil, fmt.Errorf("issue #%d: unknown status %q", issueNumber, newStatus)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	record, err := scanRecord(tx.QueryRow(
		selectColumns+` FROM outcomes WHERE issue_number = ? ORDER BY created_at DESC LIMIT 1`,
		issueNumber,
	))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("issue #%d: %w", issueNumber, ErrRecordNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query outcome: %w", err)
	}

	if !record.Status.CanTransitionTo(newStatus) {
		return nil, fmt.Errorf("issue #%d: %w: %s -> %s", issueNumber, ErrInvalidTransition, record.Status, newStatus)
	}

	now := time.Now().UTC()
	record.Status = newStatus
	if opts.PRNumber != 0 {
		record.PRNumber = opts.PRNumber
	}
	if opts.FilesChanged != 0 {
		record.FilesChanged = opts.FilesChanged
	}

	switch newStatus {
	case models.StatusResolved:
		record.ResolvedAt = &now
		minutes := now.Sub(record.CreatedAt).Minutes()
		record.TimeToResolveMinutes = &minutes
	case models.StatusMerged:
		record.MergedAt = &now
		minutes := now.Sub(record.CreatedAt).Minutes()
		record.TimeToMergeMinutes = &minutes
	case models.StatusFailed:
		record.ErrorMessage = opts.ErrorMessage
	}

	_, err = tx.Exec(
		`UPDATE outcomes SET status = ?, pr_number = ?, files_changed = ?, error_message = ?,
		 resolved_at = ?, merged_at = ?, time_to_resolve_minutes = ?, time_to_merge_minutes = ?
		 WHERE id = ?`,
		record.Status, nullInt(record.PRNumber), record.FilesChanged, nullString(record.ErrorMessage),
		nullTime(record.ResolvedAt), nullTime(record.MergedAt),
		nullFloat(record.TimeToResolveMinutes), nullFloat(record.TimeToMergeMinutes),
		record.ID,
	)
	if err != nil {
		return nil, fmt.Errorf("update outcome: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit transaction: %w", err)
	}
	return record, nil
}

// Query returns outcome records created within the given window, newest
// first. A zero window means no time bound. An empty category matches all
// categories. Query is read-only and has no side effects.
func (s *Store) Query(window time.Duration, category string) ([]models.OutcomeRecord, error) {
	query := selectColumns + ` FROM outcomes`
	var args []interface{}
	var where []string

	if window > 0 {
		where = append(where, `created_at >= ?`)
		args = append(args, time.Now().UTC().Add(-window))
	}
	if category != "" {
		where = append(where, `category = ?`)
		args = append(args, category)
	}
	for i, clause := range where {
		if i == 0 {
			query += ` WHERE ` + clause
		} else {
			query += ` AND ` + clause
		}
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query outcomes: %w", err)
	}
	defer rows.Close()

	var records []models.OutcomeRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		records = append(records, *record)
	}
	return records, rows.Err()
}

// GetByIssue returns the most recent record for an issue, or nil if none
// exists.
func (s *Store) GetByIssue(issueNumber int) (*models.OutcomeRecord, error) {
	record, err := scanRecord(s.db.QueryRow(
		selectColumns+` FROM outcomes WHERE issue_number = ? ORDER BY created_at DESC LIMIT 1`,
		issueNumber,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query outcome: %w", err)
	}
	return record, nil
}

const selectColumns = `SELECT id, issue_number, issue_title, category, labels, status, pr_number, files_changed, error_message, created_at, resolved_at, merged_at, time_to_resolve_minutes, time_to_merge_minutes`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*models.OutcomeRecord, error) {
	record := &models.OutcomeRecord{}
	var labelsJSON sql.NullString
	var prNumber sql.NullInt64
	var errorMessage sql.NullString
	var resolvedAt, mergedAt sql.NullTime
	var ttr, ttm sql.NullFloat64

	err := row.Scan(
		&record.ID, &record.IssueNumber, &record.IssueTitle, &record.Category, &labelsJSON,
		&record.Status, &prNumber, &record.FilesChanged, &errorMessage,
		&record.CreatedAt, &resolvedAt, &mergedAt, &ttr, &ttm,
	)
	if err != nil {
		return nil, err
	}

	if labelsJSON.Valid && labelsJSON.String != "" {
		json.Unmarshal([]byte(labelsJSON.String), &record.Labels)
	}
	if prNumber.Valid {
		record.PRNumber = int(prNumber.Int64)
	}
	if errorMessage.Valid {
		record.ErrorMessage = errorMessage.String
	}
	if resolvedAt.Valid {
		record.ResolvedAt = &resolvedAt.Time
	}
	if mergedAt.Valid {
		record.MergedAt = &mergedAt.Time
	}
	if ttr.Valid {
		record.TimeToResolveMinutes = &ttr.Float64
	}
	if ttm.Valid {
		record.TimeToMergeMinutes = &ttm.Float64
	}
	return record, nil
}

func nullInt(n int) interface{} {
	if n == 0 {
		return nil
	}
	return n
}

func nullString(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

func nullTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

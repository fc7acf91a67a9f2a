package maintenance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for maintenance persistence operations.
type Repository interface {
	Create(ctx context.Context, request *Request) error
	Get(ctx context.Context, id string) (*Request, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]Request, error)
	UrgentRepairs(ctx context.Context) ([]Request, error)

	RecordWork(ctx context.Context, entry *HistoryEntry) error
	Complete(ctx context.Context, requestID string) error
	Cancel(ctx context.Context, requestID string) error
	Reopen(ctx context.Context, requestID string) (*Request, error)
	ListHistory(ctx context.Context, requestID string) ([]HistoryEntry, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed maintenance repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const requestColumns = `id, building_id, component_id, request_date, description,
	priority, status, reopened_from_id, created_at, updated_at`

// Create files a new request. Status is always forced to open regardless of
// what the caller set; RequestDate defaults to today (UTC). The building
// and component are verified inside the insert transaction.
func (r *SQLiteRepository) Create(ctx context.Context, request *Request) error {
	if request.Priority < PriorityEmergency || request.Priority > PriorityRoutine {
		return ErrInvalidPriority
	}

	if request.ID == "" {
		request.ID = "req-" + uuid.NewString()[:8]
	}
	if request.RequestDate.IsZero() {
		request.RequestDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	request.Status = StatusOpen

	now := time.Now().UTC().Format(time.RFC3339)
	request.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	request.UpdatedAt = request.CreatedAt

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	var exists int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM buildings WHERE id = ?", request.BuildingID).Scan(&exists); err != nil {
		return fmt.Errorf("checking building: %w", err)
	}
	if exists == 0 {
		return ErrBuildingNotFound
	}

	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM components WHERE id = ?", request.ComponentID).Scan(&exists); err != nil {
		return fmt.Errorf("checking component: %w", err)
	}
	if exists == 0 {
		return ErrComponentNotFound
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO maintenance_requests (id, building_id, component_id, request_date,
		 description, priority, status, reopened_from_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		request.ID, request.BuildingID, request.ComponentID,
		request.RequestDate.UTC().Format("2006-01-02"),
		nullString(request.Description), request.Priority, string(request.Status),
		nullStr(request.ReopenedFromID), now, now,
	)
	if err != nil {
		return fmt.Errorf("inserting request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing request: %w", err)
	}
	return nil
}

// Get retrieves a request by its unique ID.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*Request, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM maintenance_requests WHERE id = ?", id)
	return scanRequestFrom(row)
}

// ListByBuilding returns all requests for a building, newest first.
func (r *SQLiteRepository) ListByBuilding(ctx context.Context, buildingID string) ([]Request, error) {
	return r.queryRequests(ctx,
		"SELECT "+requestColumns+` FROM maintenance_requests
		 WHERE building_id = ?
		 ORDER BY request_date DESC, created_at DESC, id DESC`,
		buildingID)
}

// UrgentRepairs returns the open request queue: most severe priority first,
// oldest request first within a priority, ID as the final tie-break.
func (r *SQLiteRepository) UrgentRepairs(ctx context.Context) ([]Request, error) {
	return r.queryRequests(ctx,
		"SELECT "+requestColumns+` FROM maintenance_requests
		 WHERE status = 'open'
		 ORDER BY priority ASC, request_date ASC, id ASC`)
}

// RecordWork appends a work entry to a request's history. The technician's
// role is checked and the request's status re-read inside the transaction.
// The first entry against an open request flips it to in_progress;
// subsequent entries leave the status alone. Closed requests reject work
// with ErrRequestClosed.
func (r *SQLiteRepository) RecordWork(ctx context.Context, entry *HistoryEntry) error {
	if entry.ID == "" {
		entry.ID = "wrk-" + uuid.NewString()[:8]
	}
	if entry.WorkDate.IsZero() {
		entry.WorkDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	entry.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	status, err := readStatus(ctx, tx, entry.RequestID)
	if err != nil {
		return err
	}
	if status.IsTerminal() {
		return ErrRequestClosed
	}

	var role string
	err = tx.QueryRowContext(ctx,
		"SELECT role FROM users WHERE id = ?", entry.TechnicianID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrTechnicianNotFound
	}
	if err != nil {
		return fmt.Errorf("checking technician: %w", err)
	}
	if role != "technician" {
		return ErrNotTechnician
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO maintenance_history (id, maintenance_request_id, technician_id, work_date, description, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.RequestID, entry.TechnicianID,
		entry.WorkDate.UTC().Format("2006-01-02"),
		nullString(entry.Description), now,
	)
	if err != nil {
		return fmt.Errorf("inserting history entry: %w", err)
	}

	if status == StatusOpen {
		if _, err := tx.ExecContext(ctx,
			`UPDATE maintenance_requests SET status = ?, updated_at = ? WHERE id = ?`,
			string(StatusInProgress), now, entry.RequestID,
		); err != nil {
			return fmt.Errorf("starting request: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing work entry: %w", err)
	}
	return nil
}

// Complete moves an in_progress request to completed. At least one history
// entry must exist; completing straight from open is an invalid transition.
func (r *SQLiteRepository) Complete(ctx context.Context, requestID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	status, err := readStatus(ctx, tx, requestID)
	if err != nil {
		return err
	}
	if status.IsTerminal() {
		return ErrRequestClosed
	}
	if !CanTransition(status, StatusCompleted) {
		return ErrInvalidTransition
	}

	var entries int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM maintenance_history WHERE maintenance_request_id = ?",
		requestID).Scan(&entries); err != nil {
		return fmt.Errorf("counting history: %w", err)
	}
	if entries == 0 {
		return ErrNoWorkLogged
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`UPDATE maintenance_requests SET status = ?, updated_at = ? WHERE id = ?`,
		string(StatusCompleted), now, requestID,
	); err != nil {
		return fmt.Errorf("completing request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing completion: %w", err)
	}
	return nil
}

// Cancel moves an open or in_progress request to cancelled.
func (r *SQLiteRepository) Cancel(ctx context.Context, requestID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	status, err := readStatus(ctx, tx, requestID)
	if err != nil {
		return err
	}
	if status.IsTerminal() {
		return ErrRequestClosed
	}

	now := time.Now().UTC().Format(time.RFC3339)
	if _, err := tx.ExecContext(ctx,
		`UPDATE maintenance_requests SET status = ?, updated_at = ? WHERE id = ?`,
		string(StatusCancelled), now, requestID,
	); err != nil {
		return fmt.Errorf("cancelling request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing cancellation: %w", err)
	}
	return nil
}

// Reopen files a new open request carrying the closed request's building,
// component, description, and priority, linked via ReopenedFromID. The
// closed request itself is never mutated. Only completed or cancelled
// requests can be reopened.
func (r *SQLiteRepository) Reopen(ctx context.Context, requestID string) (*Request, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	row := tx.QueryRowContext(ctx,
		"SELECT "+requestColumns+" FROM maintenance_requests WHERE id = ?", requestID)
	original, err := scanRequestFrom(row)
	if err != nil {
		return nil, err
	}
	if !original.Status.IsTerminal() {
		return nil, ErrRequestNotClosed
	}

	now := time.Now().UTC().Format(time.RFC3339)
	reopened := &Request{
		ID:             "req-" + uuid.NewString()[:8],
		BuildingID:     original.BuildingID,
		ComponentID:    original.ComponentID,
		RequestDate:    time.Now().UTC().Truncate(24 * time.Hour),
		Description:    original.Description,
		Priority:       original.Priority,
		Status:         StatusOpen,
		ReopenedFromID: &original.ID,
	}
	reopened.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	reopened.UpdatedAt = reopened.CreatedAt

	_, err = tx.ExecContext(ctx,
		`INSERT INTO maintenance_requests (id, building_id, component_id, request_date,
		 description, priority, status, reopened_from_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		reopened.ID, reopened.BuildingID, reopened.ComponentID,
		reopened.RequestDate.UTC().Format("2006-01-02"),
		nullString(reopened.Description), reopened.Priority, string(reopened.Status),
		nullStr(reopened.ReopenedFromID), now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting reopened request: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing reopen: %w", err)
	}
	return reopened, nil
}

// ListHistory returns a request's work history in work order.
func (r *SQLiteRepository) ListHistory(ctx context.Context, requestID string) ([]HistoryEntry, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, maintenance_request_id, technician_id, work_date, description, created_at
		 FROM maintenance_history
		 WHERE maintenance_request_id = ?
		 ORDER BY work_date ASC, created_at ASC, id ASC`,
		requestID)
	if err != nil {
		return nil, fmt.Errorf("listing history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		e, err := scanHistoryFrom(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating history: %w", err)
	}

	if entries == nil {
		entries = []HistoryEntry{}
	}
	return entries, nil
}

// readStatus fetches a request's current status inside a transaction.
func readStatus(ctx context.Context, tx *sql.Tx, requestID string) (Status, error) {
	var status string
	err := tx.QueryRowContext(ctx,
		"SELECT status FROM maintenance_requests WHERE id = ?", requestID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrRequestNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading request status: %w", err)
	}
	return Status(status), nil
}

// queryRequests executes a query and scans all request results.
func (r *SQLiteRepository) queryRequests(ctx context.Context, query string, args ...any) ([]Request, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing requests: %w", err)
	}
	defer rows.Close()

	var requests []Request
	for rows.Next() {
		req, err := scanRequestFrom(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, *req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating requests: %w", err)
	}

	if requests == nil {
		requests = []Request{}
	}
	return requests, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanRequestFrom scans a request from any scanner (Row or Rows).
func scanRequestFrom(s scanner) (*Request, error) {
	var req Request
	var description, reopenedFrom sql.NullString
	var status string
	var requestDate, createdAt, updatedAt string

	err := s.Scan(&req.ID, &req.BuildingID, &req.ComponentID, &requestDate,
		&description, &req.Priority, &status, &reopenedFrom, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("scanning request: %w", err)
	}

	req.Status = Status(status)
	req.Description = description.String
	if reopenedFrom.Valid {
		req.ReopenedFromID = &reopenedFrom.String
	}

	req.RequestDate, _ = time.Parse("2006-01-02", requestDate) //nolint:errcheck // format is controlled
	req.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)     //nolint:errcheck // format is controlled
	req.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)     //nolint:errcheck // format is controlled

	return &req, nil
}

// scanHistoryFrom scans a history entry from any scanner (Row or Rows).
func scanHistoryFrom(s scanner) (*HistoryEntry, error) {
	var e HistoryEntry
	var description sql.NullString
	var workDate, createdAt string

	err := s.Scan(&e.ID, &e.RequestID, &e.TechnicianID, &workDate, &description, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("scanning history entry: %w", err)
	}

	e.Description = description.String
	e.WorkDate, _ = time.Parse("2006-01-02", workDate)   //nolint:errcheck // format is controlled
	e.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled

	return &e, nil
}

// nullString converts an empty string to a SQL NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// nullStr converts a *string to a sql.NullString for nullable columns.
func nullStr(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

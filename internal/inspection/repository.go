package inspection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for inspection report persistence.
// The write side is append-only: Create is the only mutation.
type Repository interface {
	Create(ctx context.Context, report *Report) error
	Get(ctx context.Context, id string) (*Report, error)
	ListByBuilding(ctx context.Context, buildingID string) ([]Report, error)
	LatestForBuilding(ctx context.Context, buildingID string) (*Report, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed inspection repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const reportColumns = "id, building_id, inspector_id, component_id, report_date, condition, notes, created_at"

// Create files a new inspection report. The ID is generated if empty and
// ReportDate defaults to today (UTC).
//
// The building, inspector, inspector role, and component reference are all
// verified inside the insert transaction.
func (r *SQLiteRepository) Create(ctx context.Context, report *Report) error {
	if report.Condition < MinCondition || report.Condition > MaxCondition {
		return ErrInvalidCondition
	}

	if report.ID == "" {
		report.ID = "rpt-" + uuid.NewString()[:8]
	}
	if report.ReportDate.IsZero() {
		report.ReportDate = time.Now().UTC().Truncate(24 * time.Hour)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	report.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	// Building must exist
	var exists int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM buildings WHERE id = ?", report.BuildingID).Scan(&exists); err != nil {
		return fmt.Errorf("checking building: %w", err)
	}
	if exists == 0 {
		return ErrBuildingNotFound
	}

	// Filing user must exist and hold the inspector role
	var role string
	err = tx.QueryRowContext(ctx,
		"SELECT role FROM users WHERE id = ?", report.InspectorID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrInspectorNotFound
	}
	if err != nil {
		return fmt.Errorf("checking inspector: %w", err)
	}
	if role != "inspector" {
		return ErrNotInspector
	}

	// Component reference, when present, must resolve
	if report.ComponentID != nil {
		if err := tx.QueryRowContext(ctx,
			"SELECT COUNT(*) FROM components WHERE id = ?", *report.ComponentID).Scan(&exists); err != nil {
			return fmt.Errorf("checking component: %w", err)
		}
		if exists == 0 {
			return ErrComponentNotFound
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO inspection_reports (id, building_id, inspector_id, component_id, report_date, condition, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.BuildingID, report.InspectorID, nullStr(report.ComponentID),
		report.ReportDate.UTC().Format("2006-01-02"), report.Condition,
		nullString(report.Notes), now,
	)
	if err != nil {
		return fmt.Errorf("inserting report: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing report: %w", err)
	}
	return nil
}

// Get retrieves a report by its unique ID.
func (r *SQLiteRepository) Get(ctx context.Context, id string) (*Report, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+reportColumns+" FROM inspection_reports WHERE id = ?", id)
	return scanReportFrom(row)
}

// ListByBuilding returns all reports for a building, newest first.
func (r *SQLiteRepository) ListByBuilding(ctx context.Context, buildingID string) ([]Report, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+reportColumns+` FROM inspection_reports
		 WHERE building_id = ?
		 ORDER BY report_date DESC, created_at DESC, id DESC`,
		buildingID)
	if err != nil {
		return nil, fmt.Errorf("listing reports: %w", err)
	}
	defer rows.Close()

	var reports []Report
	for rows.Next() {
		rep, err := scanReportFrom(rows)
		if err != nil {
			return nil, err
		}
		reports = append(reports, *rep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating reports: %w", err)
	}

	if reports == nil {
		reports = []Report{}
	}
	return reports, nil
}

// LatestForBuilding returns the most recent report for a building, by
// report date then filing time. Returns ErrReportNotFound if the building
// has no reports.
func (r *SQLiteRepository) LatestForBuilding(ctx context.Context, buildingID string) (*Report, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+reportColumns+` FROM inspection_reports
		 WHERE building_id = ?
		 ORDER BY report_date DESC, created_at DESC, id DESC
		 LIMIT 1`,
		buildingID)
	return scanReportFrom(row)
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanReportFrom scans a report from any scanner (Row or Rows).
func scanReportFrom(s scanner) (*Report, error) {
	var rep Report
	var componentID, notes sql.NullString
	var reportDate, createdAt string

	err := s.Scan(&rep.ID, &rep.BuildingID, &rep.InspectorID, &componentID,
		&reportDate, &rep.Condition, &notes, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("scanning report: %w", err)
	}

	if componentID.Valid {
		rep.ComponentID = &componentID.String
	}
	rep.Notes = notes.String

	rep.ReportDate, _ = time.Parse("2006-01-02", reportDate) //nolint:errcheck // format is controlled
	rep.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)   //nolint:errcheck // format is controlled

	return &rep, nil
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

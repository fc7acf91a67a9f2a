package reporting

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository defines the read-only reporting queries.
type Repository interface {
	ConditionTrend(ctx context.Context, buildingID *string) ([]TrendPoint, error)
	TechnicianWorkload(ctx context.Context) ([]TechnicianWorkload, error)
	CurrentConditions(ctx context.Context, buildingID *string) ([]CurrentCondition, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed reporting repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// ConditionTrend returns the average reported condition per report date,
// oldest date first. Pass a building ID to scope the trend to one building;
// nil averages every report in the organization. Dates without reports are
// absent.
func (r *SQLiteRepository) ConditionTrend(ctx context.Context, buildingID *string) ([]TrendPoint, error) {
	query := `SELECT report_date, AVG(condition), COUNT(*)
		 FROM inspection_reports`
	args := []any{}
	if buildingID != nil {
		query += " WHERE building_id = ?"
		args = append(args, *buildingID)
	}
	query += " GROUP BY report_date ORDER BY report_date ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying condition trend: %w", err)
	}
	defer rows.Close()

	var points []TrendPoint
	for rows.Next() {
		var p TrendPoint
		var reportDate string
		if err := rows.Scan(&reportDate, &p.AverageCondition, &p.ReportCount); err != nil {
			return nil, fmt.Errorf("scanning trend point: %w", err)
		}
		p.Date, _ = time.Parse("2006-01-02", reportDate) //nolint:errcheck // format is controlled
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating trend points: %w", err)
	}

	if points == nil {
		points = []TrendPoint{}
	}
	return points, nil
}

// TechnicianWorkload returns the work summary for every technician,
// ordered by username. The LEFT JOIN keeps idle technicians in the result
// with zero counts.
func (r *SQLiteRepository) TechnicianWorkload(ctx context.Context) ([]TechnicianWorkload, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT u.id, u.username,
		        COUNT(DISTINCT h.maintenance_request_id),
		        COUNT(h.id)
		 FROM users u
		 LEFT JOIN maintenance_history h ON h.technician_id = u.id
		 WHERE u.role = 'technician'
		 GROUP BY u.id, u.username
		 ORDER BY u.username ASC`)
	if err != nil {
		return nil, fmt.Errorf("querying technician workload: %w", err)
	}
	defer rows.Close()

	var workloads []TechnicianWorkload
	for rows.Next() {
		var w TechnicianWorkload
		if err := rows.Scan(&w.TechnicianID, &w.Username, &w.RequestCount, &w.EntryCount); err != nil {
			return nil, fmt.Errorf("scanning workload: %w", err)
		}
		workloads = append(workloads, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workloads: %w", err)
	}

	if workloads == nil {
		workloads = []TechnicianWorkload{}
	}
	return workloads, nil
}

// CurrentConditions returns the latest reported condition for every
// building and component pair, taken from each pair's most recent
// component-scoped report. Pass a building ID to restrict the result;
// nil covers the whole estate. Ordered by building then component name.
func (r *SQLiteRepository) CurrentConditions(ctx context.Context, buildingID *string) ([]CurrentCondition, error) {
	query := `SELECT b.id, b.name, c.id, c.name, r.condition, r.notes, r.report_date
		 FROM inspection_reports r
		 JOIN buildings b ON b.id = r.building_id
		 JOIN components c ON c.id = r.component_id
		 WHERE r.component_id IS NOT NULL
		   AND r.id = (
		       SELECT r2.id FROM inspection_reports r2
		       WHERE r2.building_id = r.building_id
		         AND r2.component_id = r.component_id
		       ORDER BY r2.report_date DESC, r2.created_at DESC, r2.id DESC
		       LIMIT 1
		   )`
	args := []any{}
	if buildingID != nil {
		query += " AND r.building_id = ?"
		args = append(args, *buildingID)
	}
	query += " ORDER BY b.name ASC, c.name ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying current conditions: %w", err)
	}
	defer rows.Close()

	var conditions []CurrentCondition
	for rows.Next() {
		var cc CurrentCondition
		var notes sql.NullString
		var reportDate string
		if err := rows.Scan(&cc.BuildingID, &cc.BuildingName, &cc.ComponentID,
			&cc.ComponentName, &cc.Condition, &notes, &reportDate); err != nil {
			return nil, fmt.Errorf("scanning current condition: %w", err)
		}
		cc.Notes = notes.String
		cc.ReportDate, _ = time.Parse("2006-01-02", reportDate) //nolint:errcheck // format is controlled
		conditions = append(conditions, cc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating current conditions: %w", err)
	}

	if conditions == nil {
		conditions = []CurrentCondition{}
	}
	return conditions, nil
}

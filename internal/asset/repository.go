package asset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for asset persistence operations.
type Repository interface {
	RegisterComponent(ctx context.Context, component *Component) error
	GetComponent(ctx context.Context, id string) (*Component, error)
	ListComponents(ctx context.Context) ([]Component, error)

	RegisterSensor(ctx context.Context, sensor *Sensor) error
	GetSensor(ctx context.Context, id string) (*Sensor, error)
	GetSensorByName(ctx context.Context, name string) (*Sensor, error)
	ListSensors(ctx context.Context) ([]Sensor, error)

	AttachComponent(ctx context.Context, buildingID, componentID string) error
	DetachComponent(ctx context.Context, buildingID, componentID string) error
	ListBuildingComponents(ctx context.Context, buildingID string) ([]Component, error)

	AttachSensor(ctx context.Context, buildingID, sensorID string) error
	DetachSensor(ctx context.Context, buildingID, sensorID string) error
	ListBuildingSensors(ctx context.Context, buildingID string) ([]Sensor, error)
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed asset repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// RegisterComponent inserts a new component type. The ID is generated if empty.
func (r *SQLiteRepository) RegisterComponent(ctx context.Context, component *Component) error {
	if component.Name == "" {
		return ErrInvalidComponent
	}

	if component.ID == "" {
		component.ID = "cmp-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	component.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO components (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
		component.ID, component.Name, nullString(component.Description), now,
	)
	if err != nil {
		return fmt.Errorf("registering component: %w", err)
	}
	return nil
}

// GetComponent retrieves a component by its unique ID.
func (r *SQLiteRepository) GetComponent(ctx context.Context, id string) (*Component, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, description, created_at FROM components WHERE id = ?", id)
	return scanComponentFrom(row)
}

// ListComponents returns all components ordered by name.
func (r *SQLiteRepository) ListComponents(ctx context.Context) ([]Component, error) {
	return r.queryComponents(ctx,
		"SELECT id, name, description, created_at FROM components ORDER BY name ASC")
}

// RegisterSensor inserts a new sensor type. The ID is generated if empty.
// Sensor names are unique; a duplicate surfaces as ErrSensorExists.
func (r *SQLiteRepository) RegisterSensor(ctx context.Context, sensor *Sensor) error {
	if sensor.Name == "" {
		return ErrInvalidSensor
	}
	if !IsValidSensorType(sensor.Type) {
		return ErrInvalidSensorType
	}

	if sensor.ID == "" {
		sensor.ID = "sns-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	sensor.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sensors (id, name, type, created_at) VALUES (?, ?, ?, ?)`,
		sensor.ID, sensor.Name, string(sensor.Type), now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSensorExists
		}
		return fmt.Errorf("registering sensor: %w", err)
	}
	return nil
}

// GetSensor retrieves a sensor by its unique ID.
func (r *SQLiteRepository) GetSensor(ctx context.Context, id string) (*Sensor, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, type, created_at FROM sensors WHERE id = ?", id)
	return scanSensorFrom(row)
}

// GetSensorByName retrieves a sensor by its unique name.
func (r *SQLiteRepository) GetSensorByName(ctx context.Context, name string) (*Sensor, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT id, name, type, created_at FROM sensors WHERE name = ?", name)
	return scanSensorFrom(row)
}

// ListSensors returns all sensors ordered by name.
func (r *SQLiteRepository) ListSensors(ctx context.Context) ([]Sensor, error) {
	return r.querySensors(ctx,
		"SELECT id, name, type, created_at FROM sensors ORDER BY name ASC")
}

// AttachComponent associates a component with a building. Attaching an
// already-attached pair is a no-op. Unknown building or component IDs
// surface through the foreign keys.
func (r *SQLiteRepository) AttachComponent(ctx context.Context, buildingID, componentID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO building_components (building_id, component_id) VALUES (?, ?)`,
		buildingID, componentID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return r.resolveJoinTarget(ctx, buildingID, componentID, ErrComponentNotFound)
		}
		return fmt.Errorf("attaching component: %w", err)
	}
	return nil
}

// DetachComponent removes a component association from a building.
// Returns ErrAssociationNotFound if no such association exists.
func (r *SQLiteRepository) DetachComponent(ctx context.Context, buildingID, componentID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM building_components WHERE building_id = ? AND component_id = ?`,
		buildingID, componentID,
	)
	if err != nil {
		return fmt.Errorf("detaching component: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrAssociationNotFound
	}
	return nil
}

// ListBuildingComponents returns the components attached to a building,
// ordered by name.
func (r *SQLiteRepository) ListBuildingComponents(ctx context.Context, buildingID string) ([]Component, error) {
	return r.queryComponents(ctx,
		`SELECT c.id, c.name, c.description, c.created_at
		 FROM components c
		 JOIN building_components bc ON bc.component_id = c.id
		 WHERE bc.building_id = ?
		 ORDER BY c.name ASC`,
		buildingID)
}

// AttachSensor associates a sensor with a building. Idempotent.
func (r *SQLiteRepository) AttachSensor(ctx context.Context, buildingID, sensorID string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO building_sensors (building_id, sensor_id) VALUES (?, ?)`,
		buildingID, sensorID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return r.resolveJoinTarget(ctx, buildingID, sensorID, ErrSensorNotFound)
		}
		return fmt.Errorf("attaching sensor: %w", err)
	}
	return nil
}

// DetachSensor removes a sensor association from a building.
// Returns ErrAssociationNotFound if no such association exists.
func (r *SQLiteRepository) DetachSensor(ctx context.Context, buildingID, sensorID string) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM building_sensors WHERE building_id = ? AND sensor_id = ?`,
		buildingID, sensorID,
	)
	if err != nil {
		return fmt.Errorf("detaching sensor: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrAssociationNotFound
	}
	return nil
}

// ListBuildingSensors returns the sensors attached to a building, ordered by name.
func (r *SQLiteRepository) ListBuildingSensors(ctx context.Context, buildingID string) ([]Sensor, error) {
	return r.querySensors(ctx,
		`SELECT s.id, s.name, s.type, s.created_at
		 FROM sensors s
		 JOIN building_sensors bs ON bs.sensor_id = s.id
		 WHERE bs.building_id = ?
		 ORDER BY s.name ASC`,
		buildingID)
}

// resolveJoinTarget distinguishes which side of a failed join insert was
// missing: the building, or the attached asset.
func (r *SQLiteRepository) resolveJoinTarget(ctx context.Context, buildingID, _ string, assetErr error) error {
	var exists int
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM buildings WHERE id = ?", buildingID).Scan(&exists)
	if err != nil {
		return fmt.Errorf("resolving join target: %w", err)
	}
	if exists == 0 {
		return ErrBuildingNotFound
	}
	return assetErr
}

// queryComponents executes a query and scans all component results.
func (r *SQLiteRepository) queryComponents(ctx context.Context, query string, args ...any) ([]Component, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing components: %w", err)
	}
	defer rows.Close()

	var components []Component
	for rows.Next() {
		c, err := scanComponentFrom(rows)
		if err != nil {
			return nil, err
		}
		components = append(components, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating components: %w", err)
	}

	if components == nil {
		components = []Component{}
	}
	return components, nil
}

// querySensors executes a query and scans all sensor results.
func (r *SQLiteRepository) querySensors(ctx context.Context, query string, args ...any) ([]Sensor, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing sensors: %w", err)
	}
	defer rows.Close()

	var sensors []Sensor
	for rows.Next() {
		s, err := scanSensorFrom(rows)
		if err != nil {
			return nil, err
		}
		sensors = append(sensors, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sensors: %w", err)
	}

	if sensors == nil {
		sensors = []Sensor{}
	}
	return sensors, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanComponentFrom scans a component from any scanner (Row or Rows).
func scanComponentFrom(s scanner) (*Component, error) {
	var c Component
	var description sql.NullString
	var createdAt string

	err := s.Scan(&c.ID, &c.Name, &description, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrComponentNotFound
		}
		return nil, fmt.Errorf("scanning component: %w", err)
	}

	c.Description = description.String
	c.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled

	return &c, nil
}

// scanSensorFrom scans a sensor from any scanner (Row or Rows).
func scanSensorFrom(s scanner) (*Sensor, error) {
	var sn Sensor
	var sensorType string
	var createdAt string

	err := s.Scan(&sn.ID, &sn.Name, &sensorType, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSensorNotFound
		}
		return nil, fmt.Errorf("scanning sensor: %w", err)
	}

	sn.Type = SensorType(sensorType)
	sn.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled

	return &sn, nil
}

// nullString converts an empty string to a SQL NULL.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation checks if a SQLite error is a FOREIGN KEY constraint violation.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

package directory

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Repository defines the interface for directory persistence operations.
type Repository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	ListUsersByRole(ctx context.Context, role Role) ([]User, error)
	UpdateUserContact(ctx context.Context, id, email, phone string) error
	UpdatePassword(ctx context.Context, id, passwordHash string) error
	ArchiveUser(ctx context.Context, id string) error
	CountUsers(ctx context.Context) (int, error)

	CreateSchool(ctx context.Context, school *School) error
	GetSchool(ctx context.Context, id string) (*School, error)
	GetSchoolByName(ctx context.Context, name string) (*School, error)
	ListSchools(ctx context.Context) ([]School, error)
	UpdateSchool(ctx context.Context, school *School) error

	CreateBuilding(ctx context.Context, building *Building) error
	GetBuilding(ctx context.Context, id string) (*Building, error)
	ListBuildings(ctx context.Context) ([]Building, error)
	ListBuildingsBySchool(ctx context.Context, schoolID string) ([]Building, error)
	AssignBuildingToSchool(ctx context.Context, buildingID string, schoolID *string) error
	UpdateBuilding(ctx context.Context, building *Building) error
	ArchiveBuilding(ctx context.Context, id string) error
}

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed directory repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

const userColumns = "id, username, password_hash, role, email, phone, archived, created_at, updated_at"

// CreateUser inserts a new user account. The ID is generated if empty.
// Uniqueness of username and email is enforced by the database; a
// violation surfaces as ErrUserExists.
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *User) error {
	if err := ValidateUser(user); err != nil {
		return err
	}

	if user.ID == "" {
		user.ID = "usr-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	user.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	user.UpdatedAt = user.CreatedAt

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (id, username, password_hash, role, email, phone, archived, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, user.Username, user.PasswordHash, string(user.Role),
		nullString(user.Email), nullString(user.Phone), boolToInt(user.Archived),
		now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("creating user: %w", err)
	}

	return nil
}

// GetUser retrieves a user by their unique ID.
func (r *SQLiteRepository) GetUser(ctx context.Context, id string) (*User, error) {
	return r.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE id = ?", id)
}

// GetUserByUsername retrieves a user by their username.
func (r *SQLiteRepository) GetUserByUsername(ctx context.Context, username string) (*User, error) {
	return r.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE username = ?", username)
}

// GetUserByEmail retrieves a user by their email address.
func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	return r.getUser(ctx, "SELECT "+userColumns+" FROM users WHERE email = ?", email)
}

// ListUsers returns all users, including archived ones, ordered by username.
func (r *SQLiteRepository) ListUsers(ctx context.Context) ([]User, error) {
	return r.queryUsers(ctx, "SELECT "+userColumns+" FROM users ORDER BY username ASC")
}

// ListUsersByRole returns non-archived users with the given role, ordered by username.
func (r *SQLiteRepository) ListUsersByRole(ctx context.Context, role Role) ([]User, error) {
	return r.queryUsers(ctx,
		"SELECT "+userColumns+" FROM users WHERE role = ? AND archived = 0 ORDER BY username ASC",
		string(role))
}

// UpdateUserContact modifies a user's email and phone. Username, role, and
// password are immutable through this method.
func (r *SQLiteRepository) UpdateUserContact(ctx context.Context, id, email, phone string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET email = ?, phone = ?, updated_at = ? WHERE id = ?`,
		nullString(email), nullString(phone), now, id,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrUserExists
		}
		return fmt.Errorf("updating user contact: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// UpdatePassword changes a user's password hash.
func (r *SQLiteRepository) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, now, id,
	)
	if err != nil {
		return fmt.Errorf("updating password: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// ArchiveUser marks a user account as archived. The account stays readable
// so inspection and maintenance history remains resolvable.
func (r *SQLiteRepository) ArchiveUser(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET archived = 1, updated_at = ? WHERE id = ?`,
		now, id,
	)
	if err != nil {
		return fmt.Errorf("archiving user: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrUserNotFound
	}
	return nil
}

// CountUsers returns the total number of user accounts, archived included.
func (r *SQLiteRepository) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

const schoolColumns = `id, name, address_line1, address_line2, city, region, postal_code,
	contact_name, contact_phone, contact_email, created_at, updated_at`

// CreateSchool inserts a new school. The ID is generated if empty.
// School names are unique; a duplicate surfaces as ErrSchoolExists.
func (r *SQLiteRepository) CreateSchool(ctx context.Context, school *School) error {
	if err := ValidateSchool(school); err != nil {
		return err
	}

	if school.ID == "" {
		school.ID = "sch-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	school.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	school.UpdatedAt = school.CreatedAt

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO schools (id, name, address_line1, address_line2, city, region, postal_code,
		 contact_name, contact_phone, contact_email, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		school.ID, school.Name,
		nullString(school.AddressLine1), nullString(school.AddressLine2),
		nullString(school.City), nullString(school.Region), nullString(school.PostalCode),
		nullString(school.ContactName), nullString(school.ContactPhone), nullString(school.ContactEmail),
		now, now,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrSchoolExists
		}
		return fmt.Errorf("creating school: %w", err)
	}

	return nil
}

// GetSchool retrieves a school by its unique ID.
func (r *SQLiteRepository) GetSchool(ctx context.Context, id string) (*School, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+schoolColumns+" FROM schools WHERE id = ?", id)
	return scanSchoolFrom(row)
}

// GetSchoolByName retrieves a school by its unique name.
func (r *SQLiteRepository) GetSchoolByName(ctx context.Context, name string) (*School, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+schoolColumns+" FROM schools WHERE name = ?", name)
	return scanSchoolFrom(row)
}

// ListSchools returns all schools ordered by name.
func (r *SQLiteRepository) ListSchools(ctx context.Context) ([]School, error) {
	rows, err := r.db.QueryContext(ctx, "SELECT "+schoolColumns+" FROM schools ORDER BY name ASC")
	if err != nil {
		return nil, fmt.Errorf("listing schools: %w", err)
	}
	defer rows.Close()

	var schools []School
	for rows.Next() {
		s, err := scanSchoolFrom(rows)
		if err != nil {
			return nil, err
		}
		schools = append(schools, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating schools: %w", err)
	}

	if schools == nil {
		schools = []School{}
	}
	return schools, nil
}

// UpdateSchool modifies a school's address and contact fields.
func (r *SQLiteRepository) UpdateSchool(ctx context.Context, school *School) error {
	now := time.Now().UTC().Format(time.RFC3339)
	school.UpdatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	result, err := r.db.ExecContext(ctx,
		`UPDATE schools SET address_line1 = ?, address_line2 = ?, city = ?, region = ?,
		 postal_code = ?, contact_name = ?, contact_phone = ?, contact_email = ?, updated_at = ?
		 WHERE id = ?`,
		nullString(school.AddressLine1), nullString(school.AddressLine2),
		nullString(school.City), nullString(school.Region), nullString(school.PostalCode),
		nullString(school.ContactName), nullString(school.ContactPhone), nullString(school.ContactEmail),
		now, school.ID,
	)
	if err != nil {
		return fmt.Errorf("updating school: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrSchoolNotFound
	}
	return nil
}

const buildingColumns = "id, school_id, name, type, square_footage, archived, created_at, updated_at"

// CreateBuilding inserts a new building. The ID is generated if empty.
// SchoolID may be nil for unassigned buildings; a dangling school reference
// surfaces as ErrSchoolNotFound via the foreign key.
func (r *SQLiteRepository) CreateBuilding(ctx context.Context, building *Building) error {
	if err := ValidateBuilding(building); err != nil {
		return err
	}

	if building.ID == "" {
		building.ID = "bld-" + uuid.NewString()[:8]
	}

	now := time.Now().UTC().Format(time.RFC3339)
	building.CreatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled
	building.UpdatedAt = building.CreatedAt

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO buildings (id, school_id, name, type, square_footage, archived, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		building.ID, nullStr(building.SchoolID), building.Name, string(building.Type),
		building.SquareFootage, boolToInt(building.Archived), now, now,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrSchoolNotFound
		}
		return fmt.Errorf("creating building: %w", err)
	}

	return nil
}

// GetBuilding retrieves a building by its unique ID.
func (r *SQLiteRepository) GetBuilding(ctx context.Context, id string) (*Building, error) {
	row := r.db.QueryRowContext(ctx, "SELECT "+buildingColumns+" FROM buildings WHERE id = ?", id)
	return scanBuildingFrom(row)
}

// ListBuildings returns all non-archived buildings ordered by name.
func (r *SQLiteRepository) ListBuildings(ctx context.Context) ([]Building, error) {
	return r.queryBuildings(ctx,
		"SELECT "+buildingColumns+" FROM buildings WHERE archived = 0 ORDER BY name ASC")
}

// ListBuildingsBySchool returns non-archived buildings assigned to a school.
func (r *SQLiteRepository) ListBuildingsBySchool(ctx context.Context, schoolID string) ([]Building, error) {
	return r.queryBuildings(ctx,
		"SELECT "+buildingColumns+" FROM buildings WHERE school_id = ? AND archived = 0 ORDER BY name ASC",
		schoolID)
}

// AssignBuildingToSchool sets or clears a building's school assignment.
// Passing nil detaches the building from any school.
func (r *SQLiteRepository) AssignBuildingToSchool(ctx context.Context, buildingID string, schoolID *string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.ExecContext(ctx,
		`UPDATE buildings SET school_id = ?, updated_at = ? WHERE id = ?`,
		nullStr(schoolID), now, buildingID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return ErrSchoolNotFound
		}
		return fmt.Errorf("assigning building to school: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrBuildingNotFound
	}
	return nil
}

// UpdateBuilding modifies a building's name, type, and square footage.
func (r *SQLiteRepository) UpdateBuilding(ctx context.Context, building *Building) error {
	if err := ValidateBuilding(building); err != nil {
		return err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	building.UpdatedAt, _ = time.Parse(time.RFC3339, now) //nolint:errcheck // format is controlled

	result, err := r.db.ExecContext(ctx,
		`UPDATE buildings SET name = ?, type = ?, square_footage = ?, updated_at = ? WHERE id = ?`,
		building.Name, string(building.Type), building.SquareFootage, now, building.ID,
	)
	if err != nil {
		return fmt.Errorf("updating building: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrBuildingNotFound
	}
	return nil
}

// ArchiveBuilding marks a building as archived. Reports and requests that
// reference it stay resolvable.
func (r *SQLiteRepository) ArchiveBuilding(ctx context.Context, id string) error {
	now := time.Now().UTC().Format(time.RFC3339)

	result, err := r.db.ExecContext(ctx,
		`UPDATE buildings SET archived = 1, updated_at = ? WHERE id = ?`,
		now, id,
	)
	if err != nil {
		return fmt.Errorf("archiving building: %w", err)
	}

	rows, _ := result.RowsAffected() //nolint:errcheck // always succeeds on SQLite
	if rows == 0 {
		return ErrBuildingNotFound
	}
	return nil
}

// getUser executes a query and scans a single user result.
func (r *SQLiteRepository) getUser(ctx context.Context, query string, args ...any) (*User, error) {
	row := r.db.QueryRowContext(ctx, query, args...)
	return scanUserFrom(row)
}

// queryUsers executes a query and scans all user results.
func (r *SQLiteRepository) queryUsers(ctx context.Context, query string, args ...any) ([]User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []User
	for rows.Next() {
		u, err := scanUserFrom(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}

	if users == nil {
		users = []User{}
	}
	return users, nil
}

// queryBuildings executes a query and scans all building results.
func (r *SQLiteRepository) queryBuildings(ctx context.Context, query string, args ...any) ([]Building, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing buildings: %w", err)
	}
	defer rows.Close()

	var buildings []Building
	for rows.Next() {
		b, err := scanBuildingFrom(rows)
		if err != nil {
			return nil, err
		}
		buildings = append(buildings, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating buildings: %w", err)
	}

	if buildings == nil {
		buildings = []Building{}
	}
	return buildings, nil
}

// scanner is an interface for sql.Row and sql.Rows Scan methods.
type scanner interface {
	Scan(dest ...any) error
}

// scanUserFrom scans a user from any scanner (Row or Rows).
func scanUserFrom(s scanner) (*User, error) {
	var u User
	var email, phone sql.NullString
	var role string
	var archived int
	var createdAt, updatedAt string

	err := s.Scan(&u.ID, &u.Username, &u.PasswordHash, &role, &email, &phone,
		&archived, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	u.Role = Role(role)
	u.Archived = archived != 0
	if email.Valid {
		u.Email = email.String
	}
	if phone.Valid {
		u.Phone = phone.String
	}

	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	u.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &u, nil
}

// scanSchoolFrom scans a school from any scanner (Row or Rows).
func scanSchoolFrom(s scanner) (*School, error) {
	var sc School
	var addr1, addr2, city, region, postal sql.NullString
	var contactName, contactPhone, contactEmail sql.NullString
	var createdAt, updatedAt string

	err := s.Scan(&sc.ID, &sc.Name, &addr1, &addr2, &city, &region, &postal,
		&contactName, &contactPhone, &contactEmail, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("scanning school: %w", err)
	}

	sc.AddressLine1 = addr1.String
	sc.AddressLine2 = addr2.String
	sc.City = city.String
	sc.Region = region.String
	sc.PostalCode = postal.String
	sc.ContactName = contactName.String
	sc.ContactPhone = contactPhone.String
	sc.ContactEmail = contactEmail.String

	sc.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	sc.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &sc, nil
}

// scanBuildingFrom scans a building from any scanner (Row or Rows).
func scanBuildingFrom(s scanner) (*Building, error) {
	var b Building
	var schoolID sql.NullString
	var buildingType string
	var archived int
	var createdAt, updatedAt string

	err := s.Scan(&b.ID, &schoolID, &b.Name, &buildingType, &b.SquareFootage,
		&archived, &createdAt, &updatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBuildingNotFound
		}
		return nil, fmt.Errorf("scanning building: %w", err)
	}

	b.Type = BuildingType(buildingType)
	b.Archived = archived != 0
	if schoolID.Valid {
		b.SchoolID = &schoolID.String
	}

	b.CreatedAt, _ = time.Parse(time.RFC3339, createdAt) //nolint:errcheck // format is controlled
	b.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt) //nolint:errcheck // format is controlled

	return &b, nil
}

// Helper functions.

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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyViolation checks if a SQLite error is a FOREIGN KEY constraint violation.
func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

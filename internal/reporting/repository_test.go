package reporting

import (
	"context"
	"database/sql"
	"math"
	"testing"

	_ "github.com/mattn/go-sqlite3"
)

// setupTestDB creates an in-memory SQLite database with the full facilities
// schema, since reporting reads across every table.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		t.Fatalf("failed to enable foreign keys: %v", err)
	}

	schema := `
		CREATE TABLE users (
			id            TEXT PRIMARY KEY,
			username      TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role          TEXT NOT NULL,
			email         TEXT,
			phone         TEXT,
			archived      INTEGER NOT NULL DEFAULT 0,
			created_at    TEXT NOT NULL,
			updated_at    TEXT NOT NULL
		) STRICT;
		CREATE TABLE schools (
			id             TEXT PRIMARY KEY,
			name           TEXT NOT NULL UNIQUE,
			address_line1  TEXT,
			address_line2  TEXT,
			city           TEXT,
			region         TEXT,
			postal_code    TEXT,
			contact_name   TEXT,
			contact_phone  TEXT,
			contact_email  TEXT,
			created_at     TEXT NOT NULL,
			updated_at     TEXT NOT NULL
		) STRICT;
		CREATE TABLE buildings (
			id              TEXT PRIMARY KEY,
			school_id       TEXT REFERENCES schools(id),
			name            TEXT NOT NULL,
			type            TEXT NOT NULL,
			square_footage  INTEGER NOT NULL,
			archived        INTEGER NOT NULL DEFAULT 0,
			created_at      TEXT NOT NULL,
			updated_at      TEXT NOT NULL
		) STRICT;
		CREATE TABLE components (
			id          TEXT PRIMARY KEY,
			name        TEXT NOT NULL,
			description TEXT,
			created_at  TEXT NOT NULL
		) STRICT;
		CREATE TABLE building_components (
			building_id  TEXT NOT NULL REFERENCES buildings(id),
			component_id TEXT NOT NULL REFERENCES components(id),
			PRIMARY KEY (building_id, component_id)
		) STRICT;
		CREATE TABLE inspection_reports (
			id           TEXT PRIMARY KEY,
			building_id  TEXT NOT NULL REFERENCES buildings(id),
			inspector_id TEXT NOT NULL REFERENCES users(id),
			component_id TEXT REFERENCES components(id),
			report_date  TEXT NOT NULL,
			condition    INTEGER NOT NULL CHECK (condition BETWEEN 1 AND 5),
			notes        TEXT,
			created_at   TEXT NOT NULL
		) STRICT;
		CREATE TABLE maintenance_requests (
			id               TEXT PRIMARY KEY,
			building_id      TEXT NOT NULL REFERENCES buildings(id),
			component_id     TEXT NOT NULL REFERENCES components(id),
			request_date     TEXT NOT NULL,
			description      TEXT,
			priority         INTEGER NOT NULL,
			status           TEXT NOT NULL DEFAULT 'open',
			reopened_from_id TEXT REFERENCES maintenance_requests(id),
			created_at       TEXT NOT NULL,
			updated_at       TEXT NOT NULL
		) STRICT;
		CREATE TABLE maintenance_history (
			id                     TEXT PRIMARY KEY,
			maintenance_request_id TEXT NOT NULL REFERENCES maintenance_requests(id),
			technician_id          TEXT NOT NULL REFERENCES users(id),
			work_date              TEXT NOT NULL,
			description            TEXT,
			created_at             TEXT NOT NULL
		) STRICT;
	`

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		t.Fatalf("failed to create test schema: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func exec(t *testing.T, db *sql.DB, query string, args ...any) {
	t.Helper()
	if _, err := db.Exec(query, args...); err != nil {
		t.Fatalf("exec failed: %v\nquery: %s", err, query)
	}
}

func insertUser(t *testing.T, db *sql.DB, id, username, role string) {
	t.Helper()
	exec(t, db,
		`INSERT INTO users (id, username, password_hash, role, created_at, updated_at)
		 VALUES (?, ?, 'x', ?, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`,
		id, username, role)
}

func insertBuilding(t *testing.T, db *sql.DB, id, name string) {
	t.Helper()
	exec(t, db,
		`INSERT INTO buildings (id, name, type, square_footage, created_at, updated_at)
		 VALUES (?, ?, 'classroom', 1000, '2026-01-01T00:00:00Z', '2026-01-01T00:00:00Z')`,
		id, name)
}

func insertComponent(t *testing.T, db *sql.DB, id, name string) {
	t.Helper()
	exec(t, db,
		`INSERT INTO components (id, name, created_at) VALUES (?, ?, '2026-01-01T00:00:00Z')`,
		id, name)
}

func insertReport(t *testing.T, db *sql.DB, id, buildingID, componentID, reportDate string, condition int, notes, createdAt string) {
	t.Helper()
	var comp any
	if componentID != "" {
		comp = componentID
	}
	var n any
	if notes != "" {
		n = notes
	}
	exec(t, db,
		`INSERT INTO inspection_reports (id, building_id, inspector_id, component_id, report_date, condition, notes, created_at)
		 VALUES (?, ?, 'usr-insp', ?, ?, ?, ?, ?)`,
		id, buildingID, comp, reportDate, condition, n, createdAt)
}

func TestSQLiteRepository_ConditionTrend(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	insertUser(t, db, "usr-insp", "mgarcia", "inspector")
	insertBuilding(t, db, "bld-1", "Main Hall")
	insertBuilding(t, db, "bld-2", "Annex")

	// Three reports on one date averaging exactly 4.0, one earlier date,
	// and a report on another building that must not contribute.
	insertReport(t, db, "rpt-1", "bld-1", "", "2026-03-10", 3, "", "2026-03-10T09:00:00Z")
	insertReport(t, db, "rpt-2", "bld-1", "", "2026-03-10", 4, "", "2026-03-10T10:00:00Z")
	insertReport(t, db, "rpt-3", "bld-1", "", "2026-03-10", 5, "", "2026-03-10T11:00:00Z")
	insertReport(t, db, "rpt-4", "bld-1", "", "2026-02-01", 2, "", "2026-02-01T09:00:00Z")
	insertReport(t, db, "rpt-5", "bld-2", "", "2026-03-10", 1, "", "2026-03-10T09:00:00Z")

	t.Run("scoped to one building", func(t *testing.T) {
		buildingID := "bld-1"
		points, err := repo.ConditionTrend(ctx, &buildingID)
		if err != nil {
			t.Fatalf("ConditionTrend() error = %v", err)
		}
		if len(points) != 2 {
			t.Fatalf("expected 2 trend points, got %d", len(points))
		}

		// Oldest date first
		if got := points[0].Date.Format("2006-01-02"); got != "2026-02-01" {
			t.Errorf("points[0].Date = %s, want 2026-02-01", got)
		}
		if points[0].AverageCondition != 2.0 {
			t.Errorf("points[0].AverageCondition = %v, want 2.0", points[0].AverageCondition)
		}

		// Mean of {3,4,5} is exactly 4.0
		if math.Abs(points[1].AverageCondition-4.0) > 1e-9 {
			t.Errorf("points[1].AverageCondition = %v, want 4.0", points[1].AverageCondition)
		}
		if points[1].ReportCount != 3 {
			t.Errorf("points[1].ReportCount = %d, want 3", points[1].ReportCount)
		}
	})

	t.Run("organization wide", func(t *testing.T) {
		points, err := repo.ConditionTrend(ctx, nil)
		if err != nil {
			t.Fatalf("ConditionTrend() error = %v", err)
		}
		if len(points) != 2 {
			t.Fatalf("expected 2 trend points, got %d", len(points))
		}

		// The Annex report joins the 2026-03-10 group: mean of {3,4,5,1} = 3.25
		if math.Abs(points[1].AverageCondition-3.25) > 1e-9 {
			t.Errorf("points[1].AverageCondition = %v, want 3.25", points[1].AverageCondition)
		}
		if points[1].ReportCount != 4 {
			t.Errorf("points[1].ReportCount = %d, want 4", points[1].ReportCount)
		}
	})
}

func TestSQLiteRepository_ConditionTrend_NoReports(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)

	insertBuilding(t, db, "bld-1", "Main Hall")

	buildingID := "bld-1"
	points, err := repo.ConditionTrend(context.Background(), &buildingID)
	if err != nil {
		t.Fatalf("ConditionTrend() error = %v", err)
	}
	if len(points) != 0 {
		t.Errorf("expected empty trend, got %d points", len(points))
	}
	if points == nil {
		t.Error("expected empty slice, got nil")
	}
}

func TestSQLiteRepository_TechnicianWorkload(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	insertUser(t, db, "usr-t1", "tchen", "technician")
	insertUser(t, db, "usr-t2", "idle", "technician")
	insertUser(t, db, "usr-insp", "mgarcia", "inspector") // excluded by role
	insertBuilding(t, db, "bld-1", "Main Hall")
	insertComponent(t, db, "cmp-1", "Boiler")

	exec(t, db,
		`INSERT INTO maintenance_requests (id, building_id, component_id, request_date, priority, status, created_at, updated_at)
		 VALUES ('req-1', 'bld-1', 'cmp-1', '2026-03-01', 2, 'in_progress', '2026-03-01T00:00:00Z', '2026-03-01T00:00:00Z'),
		        ('req-2', 'bld-1', 'cmp-1', '2026-03-02', 3, 'in_progress', '2026-03-02T00:00:00Z', '2026-03-02T00:00:00Z')`)
	exec(t, db,
		`INSERT INTO maintenance_history (id, maintenance_request_id, technician_id, work_date, created_at)
		 VALUES ('wrk-1', 'req-1', 'usr-t1', '2026-03-03', '2026-03-03T00:00:00Z'),
		        ('wrk-2', 'req-1', 'usr-t1', '2026-03-04', '2026-03-04T00:00:00Z'),
		        ('wrk-3', 'req-2', 'usr-t1', '2026-03-05', '2026-03-05T00:00:00Z')`)

	workloads, err := repo.TechnicianWorkload(ctx)
	if err != nil {
		t.Fatalf("TechnicianWorkload() error = %v", err)
	}
	if len(workloads) != 2 {
		t.Fatalf("expected 2 technicians, got %d", len(workloads))
	}

	// Ordered by username: idle before tchen
	idle, tchen := workloads[0], workloads[1]
	if idle.Username != "idle" || tchen.Username != "tchen" {
		t.Fatalf("unexpected order: %q, %q", idle.Username, tchen.Username)
	}

	if idle.RequestCount != 0 || idle.EntryCount != 0 {
		t.Errorf("idle workload = %d/%d, want 0/0", idle.RequestCount, idle.EntryCount)
	}
	if tchen.RequestCount != 2 {
		t.Errorf("tchen.RequestCount = %d, want 2 (distinct requests)", tchen.RequestCount)
	}
	if tchen.EntryCount != 3 {
		t.Errorf("tchen.EntryCount = %d, want 3", tchen.EntryCount)
	}
}

func TestSQLiteRepository_CurrentConditions(t *testing.T) {
	db := setupTestDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	insertUser(t, db, "usr-insp", "mgarcia", "inspector")
	insertBuilding(t, db, "bld-1", "Main Hall")
	insertBuilding(t, db, "bld-2", "Annex")
	insertComponent(t, db, "cmp-roof", "Roof")
	insertComponent(t, db, "cmp-hvac", "HVAC Unit")

	// Roof inspected twice in bld-1: only the newer report counts.
	insertReport(t, db, "rpt-1", "bld-1", "cmp-roof", "2026-01-10", 2, "ponding water", "2026-01-10T09:00:00Z")
	insertReport(t, db, "rpt-2", "bld-1", "cmp-roof", "2026-03-15", 4, "membrane patched", "2026-03-15T09:00:00Z")
	// HVAC in bld-1 and the same roof component in bld-2.
	insertReport(t, db, "rpt-3", "bld-1", "cmp-hvac", "2026-02-20", 3, "", "2026-02-20T09:00:00Z")
	insertReport(t, db, "rpt-4", "bld-2", "cmp-roof", "2026-02-25", 5, "", "2026-02-25T09:00:00Z")
	// Whole-building report without a component reference is excluded.
	insertReport(t, db, "rpt-5", "bld-1", "", "2026-03-20", 1, "", "2026-03-20T09:00:00Z")

	t.Run("whole estate", func(t *testing.T) {
		conditions, err := repo.CurrentConditions(ctx, nil)
		if err != nil {
			t.Fatalf("CurrentConditions() error = %v", err)
		}
		if len(conditions) != 3 {
			t.Fatalf("expected 3 rows, got %d", len(conditions))
		}

		// Annex/Roof, Main Hall/HVAC Unit, Main Hall/Roof
		if conditions[0].BuildingName != "Annex" || conditions[0].Condition != 5 {
			t.Errorf("conditions[0] = %+v, want Annex roof at 5", conditions[0])
		}
		if conditions[2].ComponentName != "Roof" || conditions[2].Condition != 4 {
			t.Errorf("conditions[2] = %+v, want latest Main Hall roof at 4", conditions[2])
		}
		if conditions[2].Notes != "membrane patched" {
			t.Errorf("Notes = %q, want latest report's notes", conditions[2].Notes)
		}
	})

	t.Run("filtered by building", func(t *testing.T) {
		buildingID := "bld-1"
		conditions, err := repo.CurrentConditions(ctx, &buildingID)
		if err != nil {
			t.Fatalf("CurrentConditions() error = %v", err)
		}
		if len(conditions) != 2 {
			t.Fatalf("expected 2 rows, got %d", len(conditions))
		}
		for _, cc := range conditions {
			if cc.BuildingID != "bld-1" {
				t.Errorf("unexpected building %q in filtered result", cc.BuildingID)
			}
		}
	})

	t.Run("same-date reports resolved by filing time", func(t *testing.T) {
		insertReport(t, db, "rpt-6", "bld-2", "cmp-roof", "2026-02-25", 1, "re-check", "2026-02-25T15:00:00Z")

		buildingID := "bld-2"
		conditions, err := repo.CurrentConditions(ctx, &buildingID)
		if err != nil {
			t.Fatalf("CurrentConditions() error = %v", err)
		}
		if len(conditions) != 1 || conditions[0].Condition != 1 {
			t.Errorf("expected later same-date report to win, got %+v", conditions)
		}
	})
}

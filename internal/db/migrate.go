package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// migrations are run in order on every open. Statements are idempotent
// (CREATE IF NOT EXISTS); ALTER TABLE additions tolerate re-runs via the
// duplicate-column check in Migrate.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS events (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		venue       TEXT NOT NULL DEFAULT '',
		start_time  TEXT NOT NULL,
		end_time    TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'planned'
		            CHECK(status IN ('planned','confirmed','done','cancelled')),
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phase_types (
		id                 TEXT PRIMARY KEY,
		name               TEXT NOT NULL UNIQUE,
		role               TEXT NOT NULL DEFAULT 'generic'
		                   CHECK(role IN ('loading','travel_out','event','travel_back','unloading','generic')),
		sequence_priority  INTEGER NOT NULL DEFAULT 0,
		color              TEXT NOT NULL DEFAULT '',
		created_at         TEXT NOT NULL,
		updated_at         TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS phases (
		id              TEXT PRIMARY KEY,
		event_id        TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
		phase_type_id   TEXT NOT NULL REFERENCES phase_types(id),
		name            TEXT NOT NULL,
		start_time      TEXT NOT NULL,
		end_time        TEXT NOT NULL,
		sequence_order  INTEGER NOT NULL DEFAULT 0,
		color           TEXT NOT NULL DEFAULT '',
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_phases_event ON phases(event_id)`,

	`CREATE TABLE IF NOT EXISTS vehicles (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		plate       TEXT NOT NULL DEFAULT '',
		kind        TEXT NOT NULL DEFAULT 'van'
		            CHECK(kind IN ('truck','van','trailer','car')),
		seats       INTEGER NOT NULL DEFAULT 0,
		notes       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS employees (
		id          TEXT PRIMARY KEY,
		first_name  TEXT NOT NULL,
		last_name   TEXT NOT NULL DEFAULT '',
		role        TEXT NOT NULL DEFAULT '',
		phone       TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	// phase_id deliberately carries no foreign key: deleting a phase
	// must not cascade into bookings, and consumers skip orphaned rows.
	`CREATE TABLE IF NOT EXISTS vehicle_assignments (
		id              TEXT PRIMARY KEY,
		phase_id        TEXT NOT NULL,
		event_id        TEXT NOT NULL,
		vehicle_id      TEXT NOT NULL REFERENCES vehicles(id) ON DELETE CASCADE,
		driver_id       TEXT,
		assigned_start  TEXT NOT NULL,
		assigned_end    TEXT NOT NULL,
		created_at      TEXT NOT NULL,
		updated_at      TEXT NOT NULL,
		UNIQUE(phase_id, vehicle_id)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_vehicle ON vehicle_assignments(vehicle_id)`,
	`CREATE INDEX IF NOT EXISTS idx_assignments_event ON vehicle_assignments(event_id)`,
}

// Migrate runs all schema migrations.
func Migrate(database *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := database.Exec(stmt); err != nil {
			// ALTER TABLE statements re-run on every open.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/domain"
	"github.com/alexanderramin/stagehand/internal/timeline"
)

const assignmentColumns = `id, phase_id, event_id, vehicle_id, driver_id,
		assigned_start, assigned_end, created_at, updated_at`

// SQLiteAssignmentRepo implements AssignmentRepo over SQLite.
type SQLiteAssignmentRepo struct {
	db db.DBTX
}

func NewSQLiteAssignmentRepo(db db.DBTX) *SQLiteAssignmentRepo {
	return &SQLiteAssignmentRepo{db: db}
}

func (r *SQLiteAssignmentRepo) Upsert(ctx context.Context, a *domain.VehicleAssignment) error {
	// The conflict key is the spanning-assignment identity: one row per
	// vehicle per loading phase. Retries and re-runs land on the same row.
	query := `INSERT INTO vehicle_assignments (` + assignmentColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(phase_id, vehicle_id) DO UPDATE SET
			event_id = excluded.event_id,
			driver_id = excluded.driver_id,
			assigned_start = excluded.assigned_start,
			assigned_end = excluded.assigned_end,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		a.ID,
		a.PhaseID,
		a.EventID,
		a.VehicleID,
		ptrToNullable(a.DriverID),
		formatTime(a.AssignedStart),
		formatTime(a.AssignedEnd),
		formatTime(a.CreatedAt),
		formatTime(a.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("upserting vehicle assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) GetByID(ctx context.Context, id string) (*domain.VehicleAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM vehicle_assignments WHERE id = ?`
	return r.scanAssignment(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteAssignmentRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.VehicleAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM vehicle_assignments
		WHERE event_id = ? ORDER BY assigned_start`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments by event: %w", err)
	}
	defer rows.Close()
	return r.scanAssignments(rows)
}

func (r *SQLiteAssignmentRepo) ListByVehicle(ctx context.Context, vehicleID string) ([]*domain.VehicleAssignment, error) {
	query := `SELECT ` + assignmentColumns + ` FROM vehicle_assignments
		WHERE vehicle_id = ? ORDER BY assigned_start`
	rows, err := r.db.QueryContext(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("listing assignments by vehicle: %w", err)
	}
	defer rows.Close()
	return r.scanAssignments(rows)
}

func (r *SQLiteAssignmentRepo) ListOverlapping(ctx context.Context, vehicleID string, w timeline.Window, excludeEventID string) ([]*domain.VehicleAssignment, error) {
	// Half-open intersection on the stored RFC3339 strings; all stored
	// times are UTC so lexicographic order is chronological order.
	query := `SELECT ` + assignmentColumns + ` FROM vehicle_assignments
		WHERE vehicle_id = ? AND event_id <> ?
		AND assigned_start < ? AND ? < assigned_end
		ORDER BY assigned_start`
	rows, err := r.db.QueryContext(ctx, query,
		vehicleID, excludeEventID, formatTime(w.End), formatTime(w.Start))
	if err != nil {
		return nil, fmt.Errorf("listing overlapping assignments: %w", err)
	}
	defer rows.Close()
	return r.scanAssignments(rows)
}

func (r *SQLiteAssignmentRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM vehicle_assignments WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting vehicle assignment: %w", err)
	}
	return nil
}

func (r *SQLiteAssignmentRepo) scanAssignment(row *sql.Row) (*domain.VehicleAssignment, error) {
	var a domain.VehicleAssignment
	var driverID sql.NullString
	var startStr, endStr, createdStr, updatedStr string

	err := row.Scan(&a.ID, &a.PhaseID, &a.EventID, &a.VehicleID, &driverID,
		&startStr, &endStr, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("vehicle assignment: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning vehicle assignment: %w", err)
	}
	return populateAssignment(&a, driverID, startStr, endStr, createdStr, updatedStr)
}

func (r *SQLiteAssignmentRepo) scanAssignments(rows *sql.Rows) ([]*domain.VehicleAssignment, error) {
	var assignments []*domain.VehicleAssignment
	for rows.Next() {
		var a domain.VehicleAssignment
		var driverID sql.NullString
		var startStr, endStr, createdStr, updatedStr string
		if err := rows.Scan(&a.ID, &a.PhaseID, &a.EventID, &a.VehicleID, &driverID,
			&startStr, &endStr, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning vehicle assignment row: %w", err)
		}
		out, err := populateAssignment(&a, driverID, startStr, endStr, createdStr, updatedStr)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vehicle assignments: %w", err)
	}
	return assignments, nil
}

func populateAssignment(a *domain.VehicleAssignment, driverID sql.NullString, startStr, endStr, createdStr, updatedStr string) (*domain.VehicleAssignment, error) {
	a.DriverID = nullableStringToPtr(driverID)
	var err error
	if a.AssignedStart, err = parseTime(startStr); err != nil {
		return nil, err
	}
	if a.AssignedEnd, err = parseTime(endStr); err != nil {
		return nil, err
	}
	if a.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, err
	}
	if a.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, err
	}
	return a, nil
}

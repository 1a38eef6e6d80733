package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/domain"
)

const vehicleColumns = `id, name, plate, kind, seats, notes, created_at, updated_at`

// SQLiteVehicleRepo implements VehicleRepo over SQLite.
type SQLiteVehicleRepo struct {
	db db.DBTX
}

func NewSQLiteVehicleRepo(db db.DBTX) *SQLiteVehicleRepo {
	return &SQLiteVehicleRepo{db: db}
}

func (r *SQLiteVehicleRepo) Create(ctx context.Context, v *domain.Vehicle) error {
	query := `INSERT INTO vehicles (` + vehicleColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.Name,
		v.Plate,
		string(v.Kind),
		v.Seats,
		v.Notes,
		formatTime(v.CreatedAt),
		formatTime(v.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting vehicle: %w", err)
	}
	return nil
}

func (r *SQLiteVehicleRepo) GetByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = ?`
	return r.scanVehicle(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteVehicleRepo) List(ctx context.Context) ([]*domain.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		var v domain.Vehicle
		var kindStr, createdStr, updatedStr string
		if err := rows.Scan(&v.ID, &v.Name, &v.Plate, &kindStr, &v.Seats, &v.Notes, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning vehicle row: %w", err)
		}
		out, err := populateVehicle(&v, kindStr, createdStr, updatedStr)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *SQLiteVehicleRepo) Update(ctx context.Context, v *domain.Vehicle) error {
	query := `UPDATE vehicles SET name = ?, plate = ?, kind = ?, seats = ?, notes = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		v.Name,
		v.Plate,
		string(v.Kind),
		v.Seats,
		v.Notes,
		formatTime(v.UpdatedAt),
		v.ID,
	)
	if err != nil {
		return fmt.Errorf("updating vehicle: %w", err)
	}
	return nil
}

func (r *SQLiteVehicleRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM vehicles WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting vehicle: %w", err)
	}
	return nil
}

func (r *SQLiteVehicleRepo) scanVehicle(row *sql.Row) (*domain.Vehicle, error) {
	var v domain.Vehicle
	var kindStr, createdStr, updatedStr string

	err := row.Scan(&v.ID, &v.Name, &v.Plate, &kindStr, &v.Seats, &v.Notes, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("vehicle: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning vehicle: %w", err)
	}
	return populateVehicle(&v, kindStr, createdStr, updatedStr)
}

func populateVehicle(v *domain.Vehicle, kindStr, createdStr, updatedStr string) (*domain.Vehicle, error) {
	v.Kind = domain.VehicleKind(kindStr)
	var err error
	if v.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, err
	}
	if v.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, err
	}
	return v, nil
}

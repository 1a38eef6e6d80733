package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/domain"
)

const phaseTypeColumns = `id, name, role, sequence_priority, color, created_at, updated_at`

// SQLitePhaseTypeRepo implements PhaseTypeRepo over SQLite.
type SQLitePhaseTypeRepo struct {
	db db.DBTX
}

func NewSQLitePhaseTypeRepo(db db.DBTX) *SQLitePhaseTypeRepo {
	return &SQLitePhaseTypeRepo{db: db}
}

func (r *SQLitePhaseTypeRepo) Create(ctx context.Context, pt *domain.PhaseType) error {
	query := `INSERT INTO phase_types (` + phaseTypeColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		pt.ID,
		pt.Name,
		string(pt.Role),
		pt.SequencePriority,
		pt.Color,
		formatTime(pt.CreatedAt),
		formatTime(pt.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting phase type: %w", err)
	}
	return nil
}

func (r *SQLitePhaseTypeRepo) GetByID(ctx context.Context, id string) (*domain.PhaseType, error) {
	query := `SELECT ` + phaseTypeColumns + ` FROM phase_types WHERE id = ?`
	return r.scanPhaseType(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePhaseTypeRepo) GetByRole(ctx context.Context, role domain.PhaseRole) (*domain.PhaseType, error) {
	// Lowest sequence_priority wins if several types share a role.
	query := `SELECT ` + phaseTypeColumns + ` FROM phase_types WHERE role = ?
		ORDER BY sequence_priority LIMIT 1`
	return r.scanPhaseType(r.db.QueryRowContext(ctx, query, string(role)))
}

func (r *SQLitePhaseTypeRepo) List(ctx context.Context) ([]*domain.PhaseType, error) {
	query := `SELECT ` + phaseTypeColumns + ` FROM phase_types ORDER BY sequence_priority, name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing phase types: %w", err)
	}
	defer rows.Close()

	var types []*domain.PhaseType
	for rows.Next() {
		var pt domain.PhaseType
		var roleStr, createdStr, updatedStr string
		if err := rows.Scan(&pt.ID, &pt.Name, &roleStr, &pt.SequencePriority, &pt.Color, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning phase type row: %w", err)
		}
		out, err := populatePhaseType(&pt, roleStr, createdStr, updatedStr)
		if err != nil {
			return nil, err
		}
		types = append(types, out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phase types: %w", err)
	}
	return types, nil
}

func (r *SQLitePhaseTypeRepo) Update(ctx context.Context, pt *domain.PhaseType) error {
	query := `UPDATE phase_types SET name = ?, role = ?, sequence_priority = ?, color = ?, updated_at = ?
		WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		pt.Name,
		string(pt.Role),
		pt.SequencePriority,
		pt.Color,
		formatTime(pt.UpdatedAt),
		pt.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase type: %w", err)
	}
	return nil
}

func (r *SQLitePhaseTypeRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM phase_types WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting phase type: %w", err)
	}
	return nil
}

func (r *SQLitePhaseTypeRepo) scanPhaseType(row *sql.Row) (*domain.PhaseType, error) {
	var pt domain.PhaseType
	var roleStr, createdStr, updatedStr string

	err := row.Scan(&pt.ID, &pt.Name, &roleStr, &pt.SequencePriority, &pt.Color, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("phase type: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning phase type: %w", err)
	}
	return populatePhaseType(&pt, roleStr, createdStr, updatedStr)
}

func populatePhaseType(pt *domain.PhaseType, roleStr, createdStr, updatedStr string) (*domain.PhaseType, error) {
	pt.Role = domain.PhaseRole(roleStr)
	var err error
	if pt.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, err
	}
	if pt.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, err
	}
	return pt, nil
}

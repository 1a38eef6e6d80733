package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/domain"
)

const phaseColumns = `id, event_id, phase_type_id, name, start_time, end_time,
		sequence_order, color, created_at, updated_at`

// SQLitePhaseRepo implements PhaseRepo over SQLite.
type SQLitePhaseRepo struct {
	db db.DBTX
}

func NewSQLitePhaseRepo(db db.DBTX) *SQLitePhaseRepo {
	return &SQLitePhaseRepo{db: db}
}

func (r *SQLitePhaseRepo) Create(ctx context.Context, p *domain.Phase) error {
	query := `INSERT INTO phases (` + phaseColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.EventID,
		p.PhaseTypeID,
		p.Name,
		formatTime(p.StartTime),
		formatTime(p.EndTime),
		p.SequenceOrder,
		p.Color,
		formatTime(p.CreatedAt),
		formatTime(p.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) GetByID(ctx context.Context, id string) (*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE id = ?`
	return r.scanPhase(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLitePhaseRepo) ListByEvent(ctx context.Context, eventID string) ([]*domain.Phase, error) {
	query := `SELECT ` + phaseColumns + ` FROM phases WHERE event_id = ?
		ORDER BY sequence_order, start_time`
	rows, err := r.db.QueryContext(ctx, query, eventID)
	if err != nil {
		return nil, fmt.Errorf("listing phases by event: %w", err)
	}
	defer rows.Close()
	return r.scanPhases(rows)
}

func (r *SQLitePhaseRepo) Update(ctx context.Context, p *domain.Phase) error {
	query := `UPDATE phases SET phase_type_id = ?, name = ?, start_time = ?, end_time = ?,
		sequence_order = ?, color = ?, updated_at = ? WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		p.PhaseTypeID,
		p.Name,
		formatTime(p.StartTime),
		formatTime(p.EndTime),
		p.SequenceOrder,
		p.Color,
		formatTime(p.UpdatedAt),
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("updating phase: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("phase %s: %w", p.ID, ErrNotFound)
	}
	return nil
}

func (r *SQLitePhaseRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM phases WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting phase: %w", err)
	}
	return nil
}

func (r *SQLitePhaseRepo) scanPhase(row *sql.Row) (*domain.Phase, error) {
	var p domain.Phase
	var startStr, endStr, createdStr, updatedStr string

	err := row.Scan(&p.ID, &p.EventID, &p.PhaseTypeID, &p.Name, &startStr, &endStr,
		&p.SequenceOrder, &p.Color, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("phase: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning phase: %w", err)
	}
	return populatePhase(&p, startStr, endStr, createdStr, updatedStr)
}

func (r *SQLitePhaseRepo) scanPhases(rows *sql.Rows) ([]*domain.Phase, error) {
	var phases []*domain.Phase
	for rows.Next() {
		var p domain.Phase
		var startStr, endStr, createdStr, updatedStr string
		if err := rows.Scan(&p.ID, &p.EventID, &p.PhaseTypeID, &p.Name, &startStr, &endStr,
			&p.SequenceOrder, &p.Color, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning phase row: %w", err)
		}
		ph, err := populatePhase(&p, startStr, endStr, createdStr, updatedStr)
		if err != nil {
			return nil, err
		}
		phases = append(phases, ph)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating phases: %w", err)
	}
	return phases, nil
}

func populatePhase(p *domain.Phase, startStr, endStr, createdStr, updatedStr string) (*domain.Phase, error) {
	var err error
	if p.StartTime, err = parseTime(startStr); err != nil {
		return nil, err
	}
	if p.EndTime, err = parseTime(endStr); err != nil {
		return nil, err
	}
	if p.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, err
	}
	if p.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, err
	}
	return p, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/stagehand/internal/db"
	"github.com/alexanderramin/stagehand/internal/domain"
)

const eventColumns = `id, name, venue, start_time, end_time, status, notes, created_at, updated_at`

// SQLiteEventRepo implements EventRepo over SQLite.
type SQLiteEventRepo struct {
	db db.DBTX
}

func NewSQLiteEventRepo(db db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: db}
}

func (r *SQLiteEventRepo) Create(ctx context.Context, e *domain.Event) error {
	query := `INSERT INTO events (` + eventColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.Name,
		e.Venue,
		formatTime(e.StartTime),
		formatTime(e.EndTime),
		string(e.Status),
		e.Notes,
		formatTime(e.CreatedAt),
		formatTime(e.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	return r.scanEvent(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteEventRepo) List(ctx context.Context) ([]*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events ORDER BY start_time`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	defer rows.Close()
	return r.scanEvents(rows)
}

func (r *SQLiteEventRepo) Update(ctx context.Context, e *domain.Event) error {
	query := `UPDATE events SET name = ?, venue = ?, start_time = ?, end_time = ?,
		status = ?, notes = ?, updated_at = ? WHERE id = ?`
	_, err := r.db.ExecContext(ctx, query,
		e.Name,
		e.Venue,
		formatTime(e.StartTime),
		formatTime(e.EndTime),
		string(e.Status),
		e.Notes,
		formatTime(e.UpdatedAt),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) scanEvent(row *sql.Row) (*domain.Event, error) {
	var e domain.Event
	var statusStr, startStr, endStr, createdStr, updatedStr string

	err := row.Scan(&e.ID, &e.Name, &e.Venue, &startStr, &endStr, &statusStr, &e.Notes, &createdStr, &updatedStr)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("event: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning event: %w", err)
	}
	return populateEvent(&e, statusStr, startStr, endStr, createdStr, updatedStr)
}

func (r *SQLiteEventRepo) scanEvents(rows *sql.Rows) ([]*domain.Event, error) {
	var events []*domain.Event
	for rows.Next() {
		var e domain.Event
		var statusStr, startStr, endStr, createdStr, updatedStr string
		if err := rows.Scan(&e.ID, &e.Name, &e.Venue, &startStr, &endStr, &statusStr, &e.Notes, &createdStr, &updatedStr); err != nil {
			return nil, fmt.Errorf("scanning event row: %w", err)
		}
		ev, err := populateEvent(&e, statusStr, startStr, endStr, createdStr, updatedStr)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating events: %w", err)
	}
	return events, nil
}

func populateEvent(e *domain.Event, statusStr, startStr, endStr, createdStr, updatedStr string) (*domain.Event, error) {
	e.Status = domain.EventStatus(statusStr)
	var err error
	if e.StartTime, err = parseTime(startStr); err != nil {
		return nil, err
	}
	if e.EndTime, err = parseTime(endStr); err != nil {
		return nil, err
	}
	if e.CreatedAt, err = parseTime(createdStr); err != nil {
		return nil, err
	}
	if e.UpdatedAt, err = parseTime(updatedStr); err != nil {
		return nil, err
	}
	return e, nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"eventboard/internal/domain"
)

const eventColumns = "id, title, description, date, location, organizer_id, is_approved, created_at, updated_at"

type eventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) domain.EventRepository {
	return &eventRepository{
		DB: db,
	}
}

func scanEvent(row interface{ Scan(...any) error }) (*domain.Event, error) {
	e := &domain.Event{}
	err := row.Scan(
		&e.ID, &e.Title, &e.Description, &e.Date, &e.Location,
		&e.OrganizerID, &e.IsApproved, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return e, nil
}

func (r *eventRepository) Create(ctx context.Context, e *domain.Event) error {
	query := `
		INSERT INTO events (title, description, date, location, organizer_id, is_approved, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`
	return r.DB.QueryRowContext(ctx, query,
		e.Title, e.Description, e.Date, e.Location, e.OrganizerID, e.IsApproved, e.CreatedAt, e.UpdatedAt,
	).Scan(&e.ID)
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT ` + eventColumns + ` FROM events WHERE id = $1`
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

// escapeLike escapes LIKE/ILIKE metacharacters so user input only matches
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// orderClause maps a recognized ordering value to an ORDER BY expression.
// Unrecognized values fall back to primary-key order. Ties always break by id
// so results are deterministic.
func orderClause(ordering string) string {
	switch ordering {
	case domain.OrderingDate:
		return "date ASC, id ASC"
	case domain.OrderingDateDesc:
		return "date DESC, id ASC"
	case domain.OrderingTitle:
		return "title ASC, id ASC"
	case domain.OrderingTitleDesc:
		return "title DESC, id ASC"
	default:
		return "id ASC"
	}
}

func (r *eventRepository) List(ctx context.Context, f domain.EventFilter) ([]*domain.Event, error) {
	var where []string
	var args []interface{}
	n := 1
	if f.Search != nil {
		where = append(where, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d)", n, n))
		args = append(args, "%"+escapeLike(*f.Search)+"%")
		n++
	}
	if f.Location != nil {
		where = append(where, fmt.Sprintf("location ILIKE $%d", n))
		args = append(args, "%"+escapeLike(*f.Location)+"%")
		n++
	}
	if f.StartDate != nil {
		where = append(where, fmt.Sprintf("date >= $%d", n))
		args = append(args, *f.StartDate)
		n++
	}
	if f.EndDate != nil {
		where = append(where, fmt.Sprintf("date <= $%d", n))
		args = append(args, *f.EndDate)
		n++
	}
	if f.IsApproved != nil {
		where = append(where, fmt.Sprintf("is_approved = $%d", n))
		args = append(args, *f.IsApproved)
		n++
	}

	query := `SELECT ` + eventColumns + ` FROM events`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY " + orderClause(f.Ordering)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]*domain.Event, 0)
	for rows.Next() {
		e := &domain.Event{}
		if err := rows.Scan(&e.ID, &e.Title, &e.Description, &e.Date, &e.Location, &e.OrganizerID, &e.IsApproved, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

func (r *eventRepository) Update(ctx context.Context, id string, p domain.EventPatch) (*domain.Event, error) {
	setClauses := []string{"updated_at = NOW()"}
	args := []interface{}{}
	n := 1
	if p.Title != nil {
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", n))
		args = append(args, *p.Title)
		n++
	}
	if p.Description != nil {
		setClauses = append(setClauses, fmt.Sprintf("description = $%d", n))
		args = append(args, *p.Description)
		n++
	}
	if p.Date != nil {
		setClauses = append(setClauses, fmt.Sprintf("date = $%d", n))
		args = append(args, *p.Date)
		n++
	}
	if p.Location != nil {
		setClauses = append(setClauses, fmt.Sprintf("location = $%d", n))
		args = append(args, *p.Location)
		n++
	}
	if n == 1 {
		// No fields to update; just fetch current row
		return r.GetByID(ctx, id)
	}
	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE events SET %s
		WHERE id = $%d
		RETURNING `+eventColumns, strings.Join(setClauses, ", "), n)
	return scanEvent(r.DB.QueryRowContext(ctx, query, args...))
}

func (r *eventRepository) SetApproved(ctx context.Context, id string) (*domain.Event, error) {
	query := `
		UPDATE events SET is_approved = TRUE, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + eventColumns
	return scanEvent(r.DB.QueryRowContext(ctx, query, id))
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/calendarapp/calendar-service/internal/domain"
)

// EventFilter narrows event listings.
type EventFilter struct {
	UserID *string
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// EventRepository encapsulates calendar event persistence.
type EventRepository interface {
	Create(ctx context.Context, event *domain.CalendarEvent) error
	Update(ctx context.Context, event *domain.CalendarEvent) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error)
	List(ctx context.Context, filter EventFilter) ([]domain.CalendarEvent, error)
}

const eventColumns = `e.id, e.title, e.notes, e.start_at, e.end_at, e.user_id, u.name, e.created_at, e.updated_at`

type eventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository instantiates repository.
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &eventRepository{pool: pool}
}

func (r *eventRepository) Create(ctx context.Context, event *domain.CalendarEvent) error {
	const query = `
        INSERT INTO calendar_events (title, notes, start_at, end_at, user_id)
        VALUES ($1,$2,$3,$4,$5)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		event.Title,
		event.Notes,
		event.Start,
		event.End,
		event.UserID,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *eventRepository) Update(ctx context.Context, event *domain.CalendarEvent) error {
	const query = `
        UPDATE calendar_events SET title=$1, notes=$2, start_at=$3, end_at=$4, updated_at=NOW()
        WHERE id=$5
        RETURNING updated_at`
	return r.pool.QueryRow(ctx, query,
		event.Title,
		event.Notes,
		event.Start,
		event.End,
		event.ID,
	).Scan(&event.UpdatedAt)
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM calendar_events WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	query := `SELECT ` + eventColumns + `
        FROM calendar_events e JOIN users u ON u.id = e.user_id
        WHERE e.id=$1`
	rows, err := r.pool.Query(ctx, query, id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events, err := scanEvents(rows)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		return nil, pgx.ErrNoRows
	}
	return &events[0], nil
}

func (r *eventRepository) List(ctx context.Context, filter EventFilter) ([]domain.CalendarEvent, error) {
	clauses := []string{"1=1"}
	args := []any{}

	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		clauses = append(clauses, fmt.Sprintf("e.user_id=$%d", len(args)))
	}
	if filter.From != nil {
		args = append(args, *filter.From)
		clauses = append(clauses, fmt.Sprintf("e.end_at >= $%d", len(args)))
	}
	if filter.To != nil {
		args = append(args, *filter.To)
		clauses = append(clauses, fmt.Sprintf("e.start_at <= $%d", len(args)))
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 500
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	query := fmt.Sprintf(`SELECT %s FROM calendar_events e JOIN users u ON u.id = e.user_id
             WHERE %s ORDER BY e.start_at ASC LIMIT %d OFFSET %d`,
		eventColumns, strings.Join(clauses, " AND "), limit, offset)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]domain.CalendarEvent, error) {
	var result []domain.CalendarEvent
	for rows.Next() {
		var event domain.CalendarEvent
		if err := rows.Scan(
			&event.ID,
			&event.Title,
			&event.Notes,
			&event.Start,
			&event.End,
			&event.UserID,
			&event.UserName,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, event)
	}
	return result, rows.Err()
}

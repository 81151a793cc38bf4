package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/calendarapp/calendar-service/internal/domain"
	"github.com/calendarapp/calendar-service/internal/repository"
)

// EventRepository keeps calendar events in a map. User names are resolved through
// the user repository, mirroring the SQL join.
type EventRepository struct {
	mu     sync.RWMutex
	events map[string]domain.CalendarEvent
	users  repository.UserRepository
}

// NewEventRepository returns an empty store.
func NewEventRepository(users repository.UserRepository) *EventRepository {
	return &EventRepository{
		events: make(map[string]domain.CalendarEvent),
		users:  users,
	}
}

func (r *EventRepository) Create(_ context.Context, event *domain.CalendarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	event.ID = uuid.NewString()
	event.CreatedAt = now
	event.UpdatedAt = now
	r.events[event.ID] = *event
	return nil
}

func (r *EventRepository) Update(_ context.Context, event *domain.CalendarEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.events[event.ID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Title = event.Title
	stored.Notes = event.Notes
	stored.Start = event.Start
	stored.End = event.End
	stored.UpdatedAt = time.Now().UTC()
	r.events[event.ID] = stored
	event.UpdatedAt = stored.UpdatedAt
	return nil
}

func (r *EventRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.events[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.events, id)
	return nil
}

func (r *EventRepository) GetByID(ctx context.Context, id string) (*domain.CalendarEvent, error) {
	r.mu.RLock()
	event, ok := r.events[id]
	r.mu.RUnlock()
	if !ok {
		return nil, pgx.ErrNoRows
	}
	r.resolveName(ctx, &event)
	return &event, nil
}

func (r *EventRepository) List(ctx context.Context, filter repository.EventFilter) ([]domain.CalendarEvent, error) {
	r.mu.RLock()
	result := make([]domain.CalendarEvent, 0, len(r.events))
	for _, event := range r.events {
		if filter.UserID != nil && event.UserID != *filter.UserID {
			continue
		}
		if filter.From != nil && event.End.Before(*filter.From) {
			continue
		}
		if filter.To != nil && event.Start.After(*filter.To) {
			continue
		}
		result = append(result, event)
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		if result[i].Start.Equal(result[j].Start) {
			return result[i].ID < result[j].ID
		}
		return result[i].Start.Before(result[j].Start)
	})

	if filter.Offset > 0 {
		if filter.Offset >= len(result) {
			return []domain.CalendarEvent{}, nil
		}
		result = result[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(result) {
		result = result[:filter.Limit]
	}
	for i := range result {
		r.resolveName(ctx, &result[i])
	}
	return result, nil
}

func (r *EventRepository) resolveName(ctx context.Context, event *domain.CalendarEvent) {
	if r.users == nil {
		return
	}
	if user, err := r.users.GetByID(ctx, event.UserID); err == nil {
		event.UserName = user.Name
	}
}

var _ repository.EventRepository = (*EventRepository)(nil)

package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/calendarapp/calendar-service/internal/domain"
	"github.com/calendarapp/calendar-service/internal/repository"
)

var (
	ErrEventNotFound = errors.New("event not found")
	ErrNotEventOwner = errors.New("event belongs to another user")
)

// EventInput describes the editable fields of a calendar event.
type EventInput struct {
	Title string
	Notes string
	Start time.Time
	End   time.Time
}

// EventListFilter narrows listings by time range.
type EventListFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Offset int
}

// EventService coordinates calendar event workflows. Every mutation is scoped to the
// claim that the auth gate attached to the request.
type EventService struct {
	events repository.EventRepository
}

// NewEventService constructs the service.
func NewEventService(events repository.EventRepository) *EventService {
	return &EventService{events: events}
}

// ListEvents returns every event in range, oldest start first.
func (s *EventService) ListEvents(ctx context.Context, filter EventListFilter) ([]domain.CalendarEvent, error) {
	return s.events.List(ctx, repository.EventFilter{
		From:   filter.From,
		To:     filter.To,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

// CreateEvent stores a new event owned by the caller.
func (s *EventService) CreateEvent(ctx context.Context, owner domain.Claim, input EventInput) (*domain.CalendarEvent, error) {
	event := &domain.CalendarEvent{
		Title:    strings.TrimSpace(input.Title),
		Notes:    input.Notes,
		Start:    input.Start,
		End:      input.End,
		UserID:   owner.SubjectID,
		UserName: owner.DisplayName,
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// UpdateEvent replaces the editable fields of an event the caller owns.
func (s *EventService) UpdateEvent(ctx context.Context, caller domain.Claim, id string, input EventInput) (*domain.CalendarEvent, error) {
	event, err := s.ownedEvent(ctx, caller, id)
	if err != nil {
		return nil, err
	}

	event.Title = strings.TrimSpace(input.Title)
	event.Notes = input.Notes
	event.Start = input.Start
	event.End = input.End
	if err := s.events.Update(ctx, event); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// DeleteEvent removes an event the caller owns.
func (s *EventService) DeleteEvent(ctx context.Context, caller domain.Claim, id string) error {
	if _, err := s.ownedEvent(ctx, caller, id); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrEventNotFound
		}
		return err
	}
	return nil
}

func (s *EventService) ownedEvent(ctx context.Context, caller domain.Claim, id string) (*domain.CalendarEvent, error) {
	event, err := s.events.GetByID(ctx, id)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrEventNotFound
	}
	if err != nil {
		return nil, err
	}
	if !event.OwnedBy(caller.SubjectID) {
		return nil, ErrNotEventOwner
	}
	return event, nil
}

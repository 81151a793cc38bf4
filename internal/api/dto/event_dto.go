package dto

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/calendarapp/calendar-service/internal/domain"
)

const (
	msgTitleRequired  = "El titulo es obligatorio"
	msgStartRequired  = "Fecha de inicio es obligatoria"
	msgEndRequired    = "Fecha de finalizacion es obligatoria"
	msgEndBeforeStart = "La fecha de finalizacion debe ser posterior a la de inicio"
)

// EventRequest payload for creating or replacing a calendar event.
type EventRequest struct {
	Title string     `json:"title"`
	Notes string     `json:"notes"`
	Start *time.Time `json:"start"`
	End   *time.Time `json:"end"`
}

// Validate checks required fields and ordering of the dates.
func (r EventRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Title,
			validation.Required.Error(msgTitleRequired),
			notBlank(msgTitleRequired),
		),
		validation.Field(&r.Start, validation.NotNil.Error(msgStartRequired)),
		validation.Field(&r.End,
			validation.NotNil.Error(msgEndRequired),
			validation.By(r.notBeforeStart),
		),
	)
}

func (r EventRequest) notBeforeStart(_ interface{}) error {
	if r.Start == nil || r.End == nil {
		return nil
	}
	if r.End.Before(*r.Start) {
		return errors.New(msgEndBeforeStart)
	}
	return nil
}

// EventUser is the owner summary embedded in every event.
type EventUser struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// EventResponse is the wire form of a calendar event.
type EventResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Notes     string    `json:"notes"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	User      EventUser `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewEventResponse maps a domain event.
func NewEventResponse(e domain.CalendarEvent) EventResponse {
	return EventResponse{
		ID:        e.ID,
		Title:     e.Title,
		Notes:     e.Notes,
		Start:     e.Start,
		End:       e.End,
		User:      EventUser{UID: e.UserID, Name: e.UserName},
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// NewEventResponses maps a slice, never returning nil.
func NewEventResponses(events []domain.CalendarEvent) []EventResponse {
	out := make([]EventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, NewEventResponse(e))
	}
	return out
}

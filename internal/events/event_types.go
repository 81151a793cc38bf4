package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType enumerates auth lifecycle events.
type EventType string

const (
	EventUserRegistered EventType = "user_registered"
	EventUserLoggedIn   EventType = "user_logged_in"
	EventLoginFailed    EventType = "login_failed"
	EventTokenRenewed   EventType = "token_renewed"
)

// Event is emitted by the auth service after a lifecycle step completes.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SubjectID string      `json:"subject_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, subjectID string, payload interface{}) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SubjectID: subjectID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

// TokenIssuedPayload payload shared by register, login and renew.
type TokenIssuedPayload struct {
	Name      string    `json:"name"`
	ExpiresAt time.Time `json:"expires_at"`
}

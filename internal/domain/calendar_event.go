package domain

import "time"

// CalendarEvent is an entry on a user's calendar.
type CalendarEvent struct {
	ID        string
	Title     string
	Notes     string
	Start     time.Time
	End       time.Time
	UserID    string
	UserName  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// OwnedBy reports whether the event belongs to the given subject.
func (e *CalendarEvent) OwnedBy(subjectID string) bool {
	return e.UserID == subjectID
}

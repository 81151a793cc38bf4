package api

import (
	"context"
	"net/http"
	"net/url"
	"time"
)

// AuthResponse is returned by register, login and renew.
type AuthResponse struct {
	OK    bool   `json:"ok"`
	UID   string `json:"uid"`
	Name  string `json:"name"`
	Token string `json:"token"`
}

// EventUser is the owner summary attached to every event.
type EventUser struct {
	UID  string `json:"uid"`
	Name string `json:"name"`
}

// Event is a calendar entry as the backend returns it.
type Event struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Notes string    `json:"notes"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	User  EventUser `json:"user"`
}

// EventInput is the editable part of an event.
type EventInput struct {
	Title string    `json:"title"`
	Notes string    `json:"notes,omitempty"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Login posts credentials to /auth.
func (c *Client) Login(ctx context.Context, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.Do(ctx, http.MethodPost, "/auth", map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

// Register posts a new account to /auth/new.
func (c *Client) Register(ctx context.Context, name, email, password string) (AuthResponse, error) {
	var out AuthResponse
	err := c.Do(ctx, http.MethodPost, "/auth/new", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, &out)
	return out, err
}

// Renew exchanges the stored token for a fresh one.
func (c *Client) Renew(ctx context.Context) (AuthResponse, error) {
	var out AuthResponse
	err := c.Do(ctx, http.MethodGet, "/auth/renew", nil, &out)
	return out, err
}

// ListEvents fetches every event.
func (c *Client) ListEvents(ctx context.Context) ([]Event, error) {
	var out struct {
		Eventos []Event `json:"eventos"`
	}
	if err := c.Do(ctx, http.MethodGet, "/events", nil, &out); err != nil {
		return nil, err
	}
	return out.Eventos, nil
}

// CreateEvent stores a new event owned by the current user.
func (c *Client) CreateEvent(ctx context.Context, input EventInput) (Event, error) {
	var out struct {
		Evento Event `json:"evento"`
	}
	err := c.Do(ctx, http.MethodPost, "/events", input, &out)
	return out.Evento, err
}

// UpdateEvent replaces an event the current user owns.
func (c *Client) UpdateEvent(ctx context.Context, id string, input EventInput) (Event, error) {
	var out struct {
		Evento Event `json:"evento"`
	}
	err := c.Do(ctx, http.MethodPut, "/events/"+url.PathEscape(id), input, &out)
	return out.Evento, err
}

// DeleteEvent removes an event the current user owns.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.Do(ctx, http.MethodDelete, "/events/"+url.PathEscape(id), nil, nil)
}

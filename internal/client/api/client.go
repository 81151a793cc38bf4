// Package api is the authenticated request client for the calendar backend. Every
// request carries whatever token is currently stored; the server decides whether it
// is acceptable.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/calendarapp/calendar-service/internal/client/storage"
)

// TokenHeader must match the server's gate.
const TokenHeader = "x-token"

// DefaultTimeout bounds a single request when no http.Client is supplied.
const DefaultTimeout = 10 * time.Second

// APIError is a non-2xx answer from the backend.
type APIError struct {
	StatusCode int
	Message    string
	Fields     map[string]string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend returned status %d: %s", e.StatusCode, e.Message)
}

// TransportError wraps a failure to reach the backend or to read its answer.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsUnauthorized reports whether err is a 401 from the backend. Callers decide what to
// do with it; the client never clears the stored token on its own.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized
}

// Client sends JSON requests to the backend.
type Client struct {
	baseURL string
	http    *http.Client
	store   storage.TokenStore
	logger  *zap.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New builds a client rooted at baseURL (such as http://localhost:8080/api).
func New(baseURL string, store storage.TokenStore, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
		store:   store,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type errorBody struct {
	Msg    string                       `json:"msg"`
	Errors map[string]map[string]string `json:"errors"`
}

// Do sends one request. body and out may be nil.
func (c *Client) Do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	c.attachToken(req)

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("request failed", zap.String("method", method), zap.String("path", path), zap.Error(err))
		return &TransportError{Op: method + " " + path, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: "read " + path, Err: err}
	}
	c.logger.Debug("request done", zap.String("method", method), zap.String("path", path), zap.Int("status", resp.StatusCode))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &TransportError{Op: "decode " + path, Err: err}
	}
	return nil
}

func (c *Client) attachToken(req *http.Request) {
	if c.store == nil {
		return
	}
	if creds, ok := c.store.Load(); ok {
		req.Header.Set(TokenHeader, creds.Token)
	}
}

func decodeError(status int, raw []byte) error {
	apiErr := &APIError{StatusCode: status}
	var body errorBody
	if err := json.Unmarshal(raw, &body); err == nil {
		apiErr.Message = body.Msg
		if len(body.Errors) > 0 {
			apiErr.Fields = make(map[string]string, len(body.Errors))
			for field, detail := range body.Errors {
				apiErr.Fields[field] = detail["msg"]
			}
		}
	}
	return apiErr
}

package dto

import (
	"testing"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRequest_EndBeforeStart(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(-time.Minute)
	err := EventRequest{Title: "x", Start: &start, End: &end}.Validate()

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.EqualError(t, errs["end"], msgEndBeforeStart)
	assert.NotContains(t, errs, "start")
}

func TestEventRequest_SameInstantAllowed(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	assert.NoError(t, EventRequest{Title: "x", Start: &start, End: &start}.Validate())
}

func TestLoginRequest_Valid(t *testing.T) {
	assert.NoError(t, LoginRequest{Email: "test@test.com", Password: "password123"}.Validate())
	assert.Error(t, LoginRequest{Email: "test@test.com", Password: "short"}.Validate())
}

func TestRegisterRequest_BlankName(t *testing.T) {
	err := RegisterRequest{Name: "   ", Email: "test@test.com", Password: "password123"}.Validate()

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.EqualError(t, errs["name"], msgNameRequired)
	assert.NotContains(t, errs, "email")
}

func TestEventRequest_BlankTitle(t *testing.T) {
	start := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	err := EventRequest{Title: "\t ", Start: &start, End: &start}.Validate()

	var errs validation.Errors
	require.ErrorAs(t, err, &errs)
	assert.EqualError(t, errs["title"], msgTitleRequired)
}

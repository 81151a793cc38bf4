package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/calendarapp/calendar-service/internal/events"
	"github.com/calendarapp/calendar-service/internal/observability"
)

func TestAuditService_LogsAndCounts(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	audit := NewAuditService(dispatcher, zap.New(core), metrics)
	audit.RegisterHandlers()

	ctx := context.Background()
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventUserLoggedIn, "u-1", events.TokenIssuedPayload{Name: "Test User"})))
	require.NoError(t, dispatcher.Publish(ctx, events.NewEvent(events.EventLoginFailed, "", events.LoginFailedPayload{Email: "a@test.com", Reason: "wrong password"})))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "user_logged_in", entries[0].Message)
	assert.Equal(t, "login_failed", entries[1].Message)
	assert.Equal(t, "wrong password", entries[1].ContextMap()["reason"])

	count, err := testutil.GatherAndCount(metrics.Registry, "calendar_auth_events_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/calendarapp/calendar-service/internal/events"
	"github.com/calendarapp/calendar-service/internal/observability"
)

// AuditService records auth lifecycle events in the log and in metrics.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
	metrics    *observability.Metrics
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger, metrics *observability.Metrics) *AuditService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger,
		metrics:    metrics,
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	a.dispatcher.Subscribe(events.EventUserRegistered, a.handleTokenIssued)
	a.dispatcher.Subscribe(events.EventUserLoggedIn, a.handleTokenIssued)
	a.dispatcher.Subscribe(events.EventTokenRenewed, a.handleTokenIssued)
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
}

func (a *AuditService) handleTokenIssued(_ context.Context, event events.Event) error {
	a.metrics.RecordAuthEvent(string(event.Type))
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("subject_id", event.SubjectID),
	}
	if payload, ok := event.Payload.(events.TokenIssuedPayload); ok {
		fields = append(fields, zap.Time("expires_at", payload.ExpiresAt))
	}
	a.logger.Info(string(event.Type), fields...)
	return nil
}

func (a *AuditService) handleLoginFailed(_ context.Context, event events.Event) error {
	a.metrics.RecordAuthEvent(string(event.Type))
	fields := []zap.Field{zap.String("event_id", event.ID)}
	if payload, ok := event.Payload.(events.LoginFailedPayload); ok {
		fields = append(fields, zap.String("email", payload.Email), zap.String("reason", payload.Reason))
	}
	a.logger.Warn(string(event.Type), fields...)
	return nil
}

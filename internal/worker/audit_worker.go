package worker

import (
	"github.com/calendarapp/calendar-service/internal/service"
)

// StartAuditWorker registers audit handlers on the auth event dispatcher.
func StartAuditWorker(auditService *service.AuditService) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}

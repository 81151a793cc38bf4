package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/calendarapp/calendar-service/internal/api/dto"
	"github.com/calendarapp/calendar-service/internal/auth"
	"github.com/calendarapp/calendar-service/internal/domain"
	"github.com/calendarapp/calendar-service/internal/service"
	apperrors "github.com/calendarapp/calendar-service/pkg/util/errorutil"
)

const (
	msgEventNotFound = "Evento no existe por ese id"
	msgCannotEdit    = "No tiene privilegio de editar este evento"
	msgCannotDelete  = "No tiene privilegio de eliminar este evento"
	msgInvalidRange  = "Rango de fechas invalido"
)

// EventsHandler manages calendar event endpoints. Every route sits behind the gate.
type EventsHandler struct {
	service *service.EventService
}

// NewEventsHandler constructs handler.
func NewEventsHandler(eventService *service.EventService) *EventsHandler {
	return &EventsHandler{service: eventService}
}

// ListEvents GET /events.
func (h *EventsHandler) ListEvents(c *fiber.Ctx) error {
	filter, err := parseEventQuery(c)
	if err != nil {
		return err
	}
	events, err := h.service.ListEvents(c.UserContext(), filter)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"ok": true, "eventos": dto.NewEventResponses(events)})
}

// CreateEvent POST /events.
func (h *EventsHandler) CreateEvent(c *fiber.Ctx) error {
	claim, err := requireClaim(c)
	if err != nil {
		return err
	}
	input, err := parseEventInput(c)
	if err != nil {
		return err
	}
	event, err := h.service.CreateEvent(c.UserContext(), claim, input)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"ok": true, "evento": dto.NewEventResponse(*event)})
}

// UpdateEvent PUT /events/:id.
func (h *EventsHandler) UpdateEvent(c *fiber.Ctx) error {
	claim, err := requireClaim(c)
	if err != nil {
		return err
	}
	input, err := parseEventInput(c)
	if err != nil {
		return err
	}
	event, err := h.service.UpdateEvent(c.UserContext(), claim, c.Params("id"), input)
	if err != nil {
		return mapEventError(err, msgCannotEdit)
	}
	return c.JSON(fiber.Map{"ok": true, "evento": dto.NewEventResponse(*event)})
}

// DeleteEvent DELETE /events/:id.
func (h *EventsHandler) DeleteEvent(c *fiber.Ctx) error {
	claim, err := requireClaim(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteEvent(c.UserContext(), claim, c.Params("id")); err != nil {
		return mapEventError(err, msgCannotDelete)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func requireClaim(c *fiber.Ctx) (domain.Claim, error) {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return domain.Claim{}, apperrors.NewUnauthorized(msgTokenInvalid)
	}
	return claim, nil
}

func parseEventInput(c *fiber.Ctx) (service.EventInput, error) {
	var req dto.EventRequest
	if err := c.BodyParser(&req); err != nil {
		return service.EventInput{}, apperrors.NewValidationError(msgInvalidPayload, nil)
	}
	if err := validatePayload(req); err != nil {
		return service.EventInput{}, err
	}
	return service.EventInput{
		Title: req.Title,
		Notes: req.Notes,
		Start: *req.Start,
		End:   *req.End,
	}, nil
}

func parseEventQuery(c *fiber.Ctx) (service.EventListFilter, error) {
	filter := service.EventListFilter{
		Limit:  c.QueryInt("limit", 0),
		Offset: c.QueryInt("offset", 0),
	}
	for key, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return filter, apperrors.NewValidationError(msgInvalidRange, map[string]any{
				key: map[string]string{"msg": msgInvalidRange},
			})
		}
		*dst = &t
	}
	return filter, nil
}

func mapEventError(err error, forbiddenMsg string) error {
	switch {
	case errors.Is(err, service.ErrEventNotFound):
		return apperrors.NewNotFound(msgEventNotFound)
	case errors.Is(err, service.ErrNotEventOwner):
		return apperrors.NewUnauthorized(forbiddenMsg)
	default:
		return err
	}
}

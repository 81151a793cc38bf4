package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/calendarapp/calendar-service/internal/api/dto"
	"github.com/calendarapp/calendar-service/internal/auth"
	"github.com/calendarapp/calendar-service/internal/service"
	apperrors "github.com/calendarapp/calendar-service/pkg/util/errorutil"
)

const (
	msgEmailTaken      = "Un usuario existe con es correo"
	msgUserNotFound    = "El usuario no existe con ese email"
	msgWrongPassword   = "Password incorrecto"
	msgTooManyAttempts = "Demasiados intentos, intente mas tarde"
	msgTokenInvalid    = "Token no valido"
)

// AuthHandler exposes register, login and renew.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// Register handles POST /auth/new.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(msgInvalidPayload, nil)
	}
	if err := validatePayload(req); err != nil {
		return err
	}

	result, err := h.auth.RegisterUser(c.UserContext(), req.Name, req.Email, req.Password)
	if err != nil {
		return mapAuthError(err)
	}
	return c.Status(http.StatusCreated).JSON(authResponse(result))
}

// Login handles POST /auth.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError(msgInvalidPayload, nil)
	}
	if err := validatePayload(req); err != nil {
		return err
	}

	result, err := h.auth.LoginUser(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return mapAuthError(err)
	}
	return c.JSON(authResponse(result))
}

// Renew handles GET /auth/renew. The gate has already verified the token.
func (h *AuthHandler) Renew(c *fiber.Ctx) error {
	claim, ok := auth.ClaimFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized(msgTokenInvalid)
	}
	result, err := h.auth.RenewToken(c.UserContext(), claim)
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	return c.JSON(authResponse(result))
}

func authResponse(result *service.AuthResult) dto.AuthResponse {
	return dto.AuthResponse{
		OK:    true,
		UID:   result.Claim.SubjectID,
		Name:  result.Claim.DisplayName,
		Token: result.Token.Value,
	}
}

func mapAuthError(err error) error {
	switch {
	case errors.Is(err, service.ErrEmailTaken):
		return apperrors.NewConflict(msgEmailTaken)
	case errors.Is(err, service.ErrUserNotFound):
		return apperrors.NewCredentialError(msgUserNotFound)
	case errors.Is(err, service.ErrWrongPassword):
		return apperrors.NewCredentialError(msgWrongPassword)
	case errors.Is(err, service.ErrTooManyAttempts):
		return apperrors.NewTooManyRequests(msgTooManyAttempts)
	default:
		return apperrors.NewInternalError(err)
	}
}

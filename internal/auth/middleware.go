package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/calendarapp/calendar-service/internal/domain"
	apperrors "github.com/calendarapp/calendar-service/pkg/util/errorutil"
)

const (
	// TokenHeader carries the bearer token on every protected request.
	TokenHeader = "x-token"

	claimKey = "auth_claim"

	msgMissingToken = "No hay token en la peticion"
	msgInvalidToken = "Token no valido"
)

// Gate rejects requests without a valid token and exposes the claim to later handlers.
// It keeps no state between requests.
type Gate struct {
	tokens *TokenManager
	logger *zap.Logger
}

// NewGate constructs middleware.
func NewGate(tokens *TokenManager, logger *zap.Logger) *Gate {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Gate{tokens: tokens, logger: logger}
}

// Handle enforces authentication for protected routes.
func (g *Gate) Handle(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Get(TokenHeader))
	if token == "" {
		return apperrors.NewUnauthorized(msgMissingToken)
	}

	claim, err := g.tokens.Verify(token)
	if err != nil {
		g.logger.Debug("token rejected", zap.String("path", c.Path()), zap.Error(err))
		return apperrors.NewUnauthorized(msgInvalidToken)
	}

	c.Locals(claimKey, claim)
	return c.Next()
}

// ClaimFromContext retrieves the identity attached by the gate.
func ClaimFromContext(c *fiber.Ctx) (domain.Claim, bool) {
	claim, ok := c.Locals(claimKey).(domain.Claim)
	return claim, ok
}

package http

import (
	"context"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/calendarapp/calendar-service/internal/auth"
	"github.com/calendarapp/calendar-service/internal/observability"
	apperrors "github.com/calendarapp/calendar-service/pkg/util/errorutil"
)

// MiddlewareConfig carries the knobs for the global middleware chain.
type MiddlewareConfig struct {
	Logger       *zap.Logger
	Metrics      *observability.Metrics
	Timeout      time.Duration
	AllowOrigins string
}

// RegisterMiddlewares attaches global middlewares such as CORS, logging and error handling.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins(cfg.AllowOrigins),
		AllowHeaders: strings.Join([]string{"Origin", "Content-Type", "Accept", auth.TokenHeader}, ", "),
	}))
	app.Use(observability.RequestLogger(logger, cfg.Metrics))
	app.Use(errorHandlingMiddleware(logger, cfg.Metrics))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
}

func allowOrigins(origins string) string {
	if strings.TrimSpace(origins) == "" {
		return "*"
	}
	return origins
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

func errorHandlingMiddleware(logger *zap.Logger, metrics *observability.Metrics) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic recovered", zap.Any("panic", r), zap.ByteString("stack", debug.Stack()))
				err = apperrors.NewInternalError(nil)
			}
			if err != nil {
				err = writeError(c, err, logger, metrics)
			}
		}()
		return c.Next()
	}
}

// ErrorHandler is installed as fiber's ErrorHandler so errors raised outside the
// middleware chain (unknown routes, body limits) share the same envelope.
func ErrorHandler(logger *zap.Logger, metrics *observability.Metrics) fiber.ErrorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *fiber.Ctx, err error) error {
		return writeError(c, err, logger, metrics)
	}
}

func writeError(c *fiber.Ctx, err error, logger *zap.Logger, metrics *observability.Metrics) error {
	domainErr := apperrors.ToDomainError(err)
	metrics.RecordError(c.Route().Path, c.Method(), domainErr.Code)

	response := fiber.Map{"ok": false, "msg": domainErr.Message}
	if len(domainErr.Details) > 0 {
		response["errors"] = domainErr.Details
	}
	if domainErr.HTTPStatus >= 500 {
		logger.Error("request failed", zap.Error(domainErr))
	}
	return c.Status(domainErr.HTTPStatus).JSON(response)
}

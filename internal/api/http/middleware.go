package http

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/guard"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/observability"
	apperrors "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/pkg/util"
)

// MiddlewareConfig controls the global middleware chain.
type MiddlewareConfig struct {
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Timeout time.Duration
	// Production hides error detail from the fallback view.
	Production bool
	// CSRF protects state-changing requests with a double-submit token.
	CSRF         bool
	CookieSecure bool
}

// CSRFHeader carries the token echoed from the csrf cookie.
const CSRFHeader = "X-Csrf-Token"

// CSRFCookie is the cookie holding the csrf token.
const CSRFCookie = "portal_csrf"

// RegisterMiddlewares attaches global middlewares such as error handling and logging.
func RegisterMiddlewares(app *fiber.App, cfg MiddlewareConfig) {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	app.Use(requestid.New())
	app.Use(observability.RequestLogger(cfg.Logger, cfg.Metrics))
	app.Use(errorBoundary(cfg.Logger, cfg.Metrics, cfg.Production))
	if cfg.Timeout > 0 {
		app.Use(requestTimeoutMiddleware(cfg.Timeout))
	}
	if cfg.CSRF {
		app.Use(csrf.New(csrf.Config{
			KeyLookup:      "header:" + CSRFHeader,
			CookieName:     CSRFCookie,
			CookieSameSite: "Lax",
			CookieSecure:   cfg.CookieSecure,
			Expiration:     2 * time.Hour,
			KeyGenerator:   utils.UUIDv4,
			Next: func(c *fiber.Ctx) bool {
				return strings.HasPrefix(c.Path(), "/health")
			},
		}))
	}
}

func requestTimeoutMiddleware(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()
		c.SetUserContext(ctx)
		return c.Next()
	}
}

// errorBoundary contains panics and renders every returned error. Panics get
// the fallback view; detail and stack are only included outside production.
// An expired session is sent back to the login page.
func errorBoundary(logger *zap.Logger, metrics *observability.Metrics, production bool) fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		defer func() {
			if r := recover(); r != nil {
				stack := debug.Stack()
				logger.Error("panic recovered",
					zap.Any("panic", r),
					zap.ByteString("stack", stack),
					zap.String("path", c.Path()),
				)
				metrics.RecordError(c.Path(), c.Method(), apperrors.CodeInternal)
				err = renderFallback(c, fmt.Sprint(r), stack, production)
				return
			}
			if err != nil {
				err = renderError(c, logger, metrics, err)
			}
		}()
		return c.Next()
	}
}

func renderFallback(c *fiber.Ctx, detail string, stack []byte, production bool) error {
	body := fiber.Map{
		"view":    "error",
		"message": "Something went wrong. Reload the page or go back home.",
		"actions": []string{"reload", "home"},
	}
	if !production {
		body["detail"] = detail
		body["stack"] = string(stack)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(body)
}

func renderError(c *fiber.Ctx, logger *zap.Logger, metrics *observability.Metrics, err error) error {
	domainErr := toDomainError(err)
	metrics.RecordError(c.Path(), c.Method(), domainErr.Code)

	if domainErr.Code == apperrors.CodeUnauthorized {
		target := guard.LoginPath
		if c.Method() == fiber.MethodGet {
			target = guard.LoginRedirect(c.OriginalURL())
		}
		return c.Redirect(target, fiber.StatusFound)
	}

	if domainErr.HTTPStatus >= 500 {
		logger.Error("request failed", zap.String("path", c.Path()), zap.Error(domainErr))
	}
	body := fiber.Map{
		"code":    domainErr.Code,
		"message": apperrors.DisplayMessage(domainErr),
	}
	if len(domainErr.Fields) > 0 {
		body["fields"] = domainErr.Fields
	}
	if len(domainErr.Details) > 0 {
		body["details"] = domainErr.Details
	}
	return c.Status(domainErr.HTTPStatus).JSON(fiber.Map{"error": body})
}

func toDomainError(err error) *apperrors.DomainError {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return apperrors.FromStatus(fiberErr.Code, fiberErr.Message, nil)
	}
	return apperrors.ToDomainError(err)
}

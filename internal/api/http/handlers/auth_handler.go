package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/api/dto"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/guard"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/session"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/views"
	apperrors "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/pkg/util"
)

// SessionCookies is the cookie side of the browser session.
type SessionCookies interface {
	Set(c *fiber.Ctx, id string, persistent bool)
	Clear(c *fiber.Ctx)
}

// AuthHandler serves login, registration, logout and the profile pages.
type AuthHandler struct {
	api      *apiclient.Client
	registry *session.Registry
	cookies  SessionCookies
	logger   *zap.Logger
}

// NewAuthHandler constructs handler. api is the anonymous client used for
// public lookups such as branches.
func NewAuthHandler(api *apiclient.Client, registry *session.Registry, cookies SessionCookies, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{api: api, registry: registry, cookies: cookies, logger: logger}
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	target := guard.SafeReturnPath(c.Query(guard.ReturnParam))
	state := store.State()
	if state.Authenticated() {
		return c.Redirect(target, fiber.StatusFound)
	}
	// the error is shown once
	store.ClearError()
	return c.JSON(fiber.Map{
		"view":     "login",
		"redirect": target,
		"error":    state.Error,
	})
}

// Login handles POST /login. Success redirects to the preserved return path.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	var req dto.LoginRequest
	if err := parseForm(c, &req); err != nil {
		return formFailure(c, "login", err)
	}
	if req.Redirect == "" {
		req.Redirect = c.Query(guard.ReturnParam)
	}

	if err := store.Login(c.UserContext(), req.Email, req.Password); err != nil {
		return formFailure(c, "login", err)
	}
	if req.RememberMe {
		h.cookies.Set(c, store.ID(), true)
	}
	return c.Redirect(guard.SafeReturnPath(req.Redirect), fiber.StatusFound)
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	branches, err := views.Branches(c.UserContext(), h.api)
	if err != nil {
		return err
	}
	state := store.State()
	store.ClearError()
	return c.JSON(fiber.Map{
		"view":       "register",
		"branches":   branches,
		"bloodTypes": domain.BloodTypes,
		"error":      state.Error,
	})
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	var req dto.RegisterRequest
	if err := parseForm(c, &req); err != nil {
		return formFailure(c, "register", err)
	}
	if err := store.Register(c.UserContext(), req.Profile()); err != nil {
		return formFailure(c, "register", err)
	}
	return c.Redirect(guard.HomePath, fiber.StatusFound)
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	if err := store.Logout(c.UserContext()); err != nil {
		h.logger.Warn("logout left a stored token behind", zap.String("session_id", store.ID()), zap.Error(err))
	}
	h.registry.Forget(store.ID())
	h.cookies.Clear(c)
	return c.Redirect(guard.LoginPath, fiber.StatusFound)
}

// Profile handles GET /me.
func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	user := store.User()
	return c.JSON(fiber.Map{
		"view": "profile",
		"data": dto.SessionResponse{User: user, Approved: auth.IsApproved(user)},
	})
}

// UpdateProfile handles PUT /me.
func (h *AuthHandler) UpdateProfile(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	var req dto.ProfileRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	if err := store.UpdateUser(c.UserContext(), req.Update()); err != nil {
		return err
	}
	return h.Profile(c)
}

// ChangePassword handles PUT /me/password.
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	var req dto.PasswordRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	if err := store.UpdatePassword(c.UserContext(), req.CurrentPassword, req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"view": "profile", "message": "Password updated"})
}

// formFailure re-renders a public form with the one-line error. A failed login
// is a form error here, not an expired session.
func formFailure(c *fiber.Ctx, view string, err error) error {
	var domainErr *apperrors.DomainError
	if !errors.As(err, &domainErr) {
		return err
	}
	body := fiber.Map{"view": view, "error": apperrors.DisplayMessage(domainErr)}
	if len(domainErr.Fields) > 0 {
		body["fields"] = domainErr.Fields
	}
	return c.Status(domainErr.HTTPStatus).JSON(body)
}

// Branches handles GET /branches for the registration form and filters.
func (h *AuthHandler) Branches(c *fiber.Ctx) error {
	branches, err := views.Branches(c.UserContext(), h.api)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": branches})
}

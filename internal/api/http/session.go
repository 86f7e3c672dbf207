package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/config"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/guard"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/session"
)

// SessionCookies issues and reads the browser session id cookie.
type SessionCookies struct {
	cfg config.SessionConfig
}

// NewSessionCookies returns cookie helpers for cfg.
func NewSessionCookies(cfg config.SessionConfig) *SessionCookies {
	return &SessionCookies{cfg: cfg}
}

// ID returns the session id carried by the request, if it is well formed.
func (s *SessionCookies) ID(c *fiber.Ctx) (string, bool) {
	raw := c.Cookies(s.cfg.CookieName)
	if raw == "" {
		return "", false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", false
	}
	return id.String(), true
}

// Set writes the session cookie. A persistent cookie outlives the browser.
func (s *SessionCookies) Set(c *fiber.Ctx, id string, persistent bool) {
	cookie := &fiber.Cookie{
		Name:     s.cfg.CookieName,
		Value:    id,
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
	if persistent {
		cookie.Expires = time.Now().Add(s.cfg.RememberMe())
	} else {
		cookie.SessionOnly = true
	}
	c.Cookie(cookie)
}

// Clear expires the session cookie.
func (s *SessionCookies) Clear(c *fiber.Ctx) {
	c.Cookie(&fiber.Cookie{
		Name:     s.cfg.CookieName,
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Secure:   s.cfg.CookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  time.Unix(0, 0),
	})
}

// SessionMiddleware binds the caller's session store to the request, issuing a
// fresh id to browsers that have none.
func SessionMiddleware(registry *session.Registry, cookies *SessionCookies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := cookies.ID(c)
		if !ok {
			id = uuid.NewString()
			cookies.Set(c, id, false)
		}
		store, err := registry.Get(c.UserContext(), id)
		if err != nil {
			return err
		}
		guard.Bind(c, store)
		return c.Next()
	}
}

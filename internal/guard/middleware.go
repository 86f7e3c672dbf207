package guard

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/session"
)

const storeKey = "portal_session"

// Bind attaches the session store to the request.
func Bind(c *fiber.Ctx, store *session.Store) {
	c.Locals(storeKey, store)
}

// Current returns the session store bound to the request.
func Current(c *fiber.Ctx) (*session.Store, bool) {
	store, ok := c.Locals(storeKey).(*session.Store)
	return store, ok && store != nil
}

// Require guards a route group. Terminal outcomes render a view instead of
// calling the next handler.
func Require(required auth.RoleSet) fiber.Handler {
	return func(c *fiber.Ctx) error {
		state := session.State{}
		if store, ok := Current(c); ok {
			state = store.State()
		}

		decision := Decide(state, required, c.OriginalURL())
		switch decision.Outcome {
		case OutcomeAllow:
			return c.Next()
		case OutcomeRedirect:
			return c.Redirect(decision.RedirectTo, fiber.StatusFound)
		case OutcomeLoading:
			c.Set(fiber.HeaderRetryAfter, "1")
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"view": OutcomeLoading})
		case OutcomeAccessDenied:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"view":          OutcomeAccessDenied,
				"message":       "You do not have permission to view this page.",
				"requiredRoles": required.List(),
			})
		default:
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"view":    OutcomePendingApproval,
				"message": "Your account is awaiting approval by a club officer.",
			})
		}
	}
}

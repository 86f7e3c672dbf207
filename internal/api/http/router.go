package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/api/http/handlers"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/guard"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/session"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Registry      *session.Registry
	Cookies       *SessionCookies
	Health        *handlers.HealthHandler
	Auth          *handlers.AuthHandler
	Dashboard     *handlers.DashboardHandler
	Events        *handlers.EventsHandler
	Announcements *handlers.AnnouncementsHandler
	Donations     *handlers.DonationsHandler
	Users         *handlers.UsersHandler
	Contacts      *handlers.ContactsHandler
}

// RegisterRoutes wires HTTP routes. Every page behind a guard uses one of the
// access policies from the auth package, the same ones the views consult.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Get("/branches", cfg.Auth.Branches)
	app.Post("/contact", cfg.Contacts.Submit)

	member := guard.Require(auth.AnyMember)
	staff := guard.Require(auth.StaffRoles)
	admin := guard.Require(auth.AdminOnly)

	portal := app.Group("", SessionMiddleware(cfg.Registry, cfg.Cookies))

	portal.Get("/login", cfg.Auth.LoginPage)
	portal.Post("/login", cfg.Auth.Login)
	portal.Get("/register", cfg.Auth.RegisterPage)
	portal.Post("/register", cfg.Auth.Register)
	portal.Post("/logout", cfg.Auth.Logout)

	portal.Get("/me", member, cfg.Auth.Profile)
	portal.Put("/me", member, cfg.Auth.UpdateProfile)
	portal.Put("/me/password", member, cfg.Auth.ChangePassword)

	portal.Get("/dashboard", member, cfg.Dashboard.Show)
	portal.Get("/admin", admin, cfg.Dashboard.Admin)

	events := portal.Group("/events")
	events.Get("/", member, cfg.Events.List)
	events.Get("/:id", member, cfg.Events.Get)
	events.Post("/", staff, cfg.Events.Create)
	events.Put("/:id", staff, cfg.Events.Update)
	events.Delete("/:id", staff, cfg.Events.Delete)
	events.Post("/:id/register", member, cfg.Events.Register)
	events.Post("/:id/feedback", member, cfg.Events.Feedback)

	announcements := portal.Group("/announcements")
	announcements.Get("/", member, cfg.Announcements.List)
	announcements.Post("/", staff, cfg.Announcements.Create)
	announcements.Put("/:id", staff, cfg.Announcements.Update)
	announcements.Delete("/:id", staff, cfg.Announcements.Delete)
	announcements.Post("/:id/like", member, cfg.Announcements.Like)
	announcements.Post("/:id/comments", member, cfg.Announcements.Comment)

	donations := portal.Group("/donations")
	donations.Get("/", staff, cfg.Donations.List)
	donations.Get("/stats", staff, cfg.Donations.Stats)
	donations.Post("/", staff, cfg.Donations.Create)
	donations.Put("/:id", staff, cfg.Donations.Update)
	donations.Put("/:id/verify", staff, cfg.Donations.Verify)
	donations.Delete("/:id", admin, cfg.Donations.Delete)

	users := portal.Group("/users")
	users.Get("/", staff, cfg.Users.List)
	users.Get("/:id", staff, cfg.Users.Get)
	users.Post("/", admin, cfg.Users.Create)
	users.Put("/:id", admin, cfg.Users.Update)
	users.Delete("/:id", admin, cfg.Users.Delete)
	users.Put("/:id/approve", staff, cfg.Users.Approve)
	users.Put("/:id/reject", staff, cfg.Users.Reject)

	contacts := portal.Group("/contacts")
	contacts.Get("/", staff, cfg.Contacts.List)
	contacts.Put("/:id/read", staff, cfg.Contacts.MarkRead)
	contacts.Delete("/:id", admin, cfg.Contacts.Delete)
}

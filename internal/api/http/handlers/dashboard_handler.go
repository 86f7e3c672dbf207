package handlers

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/errgroup"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/views"
)

// DashboardHandler serves the dashboard and the admin overview.
type DashboardHandler struct{}

// NewDashboardHandler constructs handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Show handles GET /dashboard.
func (h *DashboardHandler) Show(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	d := views.NewDashboard(c.UserContext(), store)
	defer d.Close()
	data, err := d.Load()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"view": "dashboard", "data": data})
}

// Admin handles GET /admin: the dashboard plus the approval queue, fetched
// together. Either failure cancels the other.
func (h *DashboardHandler) Admin(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	page := pageQuery(c)

	g, ctx := errgroup.WithContext(c.UserContext())
	d := views.NewDashboard(ctx, store)
	defer d.Close()
	pending := views.NewUsers(ctx, store)
	defer pending.Close()

	var data *views.DashboardView
	g.Go(func() error {
		var err error
		data, err = d.Load()
		return err
	})
	g.Go(func() error {
		return pending.Show(domain.UserFilter{Approval: "pending"}, page)
	})
	if err := g.Wait(); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"view":         "admin",
		"data":         data,
		"pending":      pending.Listing(),
		"capabilities": pending.Capabilities(),
	})
}

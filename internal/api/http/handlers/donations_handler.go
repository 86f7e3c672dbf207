package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/api/dto"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/views"
)

// DonationsHandler serves donation tracking.
type DonationsHandler struct{}

// NewDonationsHandler constructs handler.
func NewDonationsHandler() *DonationsHandler {
	return &DonationsHandler{}
}

func donationFilter(c *fiber.Ctx) domain.DonationFilter {
	return domain.DonationFilter{
		Type:   domain.DonationType(c.Query("type")),
		Status: domain.DonationStatus(c.Query("status")),
		Branch: c.Query("branch"),
		Search: c.Query("search"),
	}
}

func (h *DonationsHandler) render(c *fiber.Ctx, v *views.Donations, status int) error {
	return listing(c, "donations", status, v.Listing(), v.Capabilities())
}

// List handles GET /donations.
func (h *DonationsHandler) List(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	v := views.NewDonations(c.UserContext(), store)
	defer v.Close()
	if err := v.Show(donationFilter(c), pageQuery(c)); err != nil {
		return err
	}
	return h.render(c, v, http.StatusOK)
}

// Stats handles GET /donations/stats.
func (h *DonationsHandler) Stats(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	v := views.NewDonations(c.UserContext(), store)
	defer v.Close()
	stats, err := v.Stats()
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"view": "donation_stats", "data": stats})
}

// Create handles POST /donations.
func (h *DonationsHandler) Create(c *fiber.Ctx) error {
	var req dto.DonationRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	return h.mutate(c, http.StatusCreated, func(v *views.Donations) error {
		return v.Create(req.Input())
	})
}

// Update handles PUT /donations/:id.
func (h *DonationsHandler) Update(c *fiber.Ctx) error {
	var req dto.DonationRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	return h.mutate(c, http.StatusOK, func(v *views.Donations) error {
		return v.Update(c.Params("id"), req.Input())
	})
}

// Verify handles PUT /donations/:id/verify.
func (h *DonationsHandler) Verify(c *fiber.Ctx) error {
	return h.mutate(c, http.StatusOK, func(v *views.Donations) error {
		return v.Verify(c.Params("id"))
	})
}

// Delete handles DELETE /donations/:id.
func (h *DonationsHandler) Delete(c *fiber.Ctx) error {
	return h.mutate(c, http.StatusOK, func(v *views.Donations) error {
		return v.Delete(c.Params("id"))
	})
}

func (h *DonationsHandler) mutate(c *fiber.Ctx, status int, op func(*views.Donations) error) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	v := views.NewDonations(c.UserContext(), store)
	defer v.Close()
	v.Restore(donationFilter(c), pageQuery(c))
	if err := op(v); err != nil {
		return err
	}
	return h.render(c, v, status)
}

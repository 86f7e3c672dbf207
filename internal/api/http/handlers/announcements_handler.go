package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/api/dto"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/views"
)

// AnnouncementsHandler serves the announcements board.
type AnnouncementsHandler struct{}

// NewAnnouncementsHandler constructs handler.
func NewAnnouncementsHandler() *AnnouncementsHandler {
	return &AnnouncementsHandler{}
}

func announcementFilter(c *fiber.Ctx) domain.AnnouncementFilter {
	return domain.AnnouncementFilter{
		Category: c.Query("category"),
		Priority: c.Query("priority"),
		Search:   c.Query("search"),
	}
}

func (h *AnnouncementsHandler) render(c *fiber.Ctx, v *views.Announcements, status int) error {
	rendered, err := v.Rendered()
	if err != nil {
		return err
	}
	return listing(c, "announcements", status, rendered, fiber.Map{"manage": v.CanManage()})
}

// List handles GET /announcements.
func (h *AnnouncementsHandler) List(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	v := views.NewAnnouncements(c.UserContext(), store)
	defer v.Close()
	if err := v.Show(announcementFilter(c), pageQuery(c)); err != nil {
		return err
	}
	return h.render(c, v, http.StatusOK)
}

// Create handles POST /announcements.
func (h *AnnouncementsHandler) Create(c *fiber.Ctx) error {
	var req dto.AnnouncementRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	return h.mutate(c, http.StatusCreated, func(v *views.Announcements) error {
		return v.Create(req.Input())
	})
}

// Update handles PUT /announcements/:id.
func (h *AnnouncementsHandler) Update(c *fiber.Ctx) error {
	var req dto.AnnouncementRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	return h.mutate(c, http.StatusOK, func(v *views.Announcements) error {
		return v.Update(c.Params("id"), req.Input())
	})
}

// Delete handles DELETE /announcements/:id.
func (h *AnnouncementsHandler) Delete(c *fiber.Ctx) error {
	return h.mutate(c, http.StatusOK, func(v *views.Announcements) error {
		return v.Delete(c.Params("id"))
	})
}

// Like handles POST /announcements/:id/like.
func (h *AnnouncementsHandler) Like(c *fiber.Ctx) error {
	return h.mutate(c, http.StatusOK, func(v *views.Announcements) error {
		return v.ToggleLike(c.Params("id"))
	})
}

// Comment handles POST /announcements/:id/comments.
func (h *AnnouncementsHandler) Comment(c *fiber.Ctx) error {
	var req dto.CommentRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	return h.mutate(c, http.StatusCreated, func(v *views.Announcements) error {
		return v.Comment(c.Params("id"), req.Text)
	})
}

func (h *AnnouncementsHandler) mutate(c *fiber.Ctx, status int, op func(*views.Announcements) error) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	v := views.NewAnnouncements(c.UserContext(), store)
	defer v.Close()
	v.Restore(announcementFilter(c), pageQuery(c))
	if err := op(v); err != nil {
		return err
	}
	return h.render(c, v, status)
}

package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/api/dto"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/views"
)

// UsersHandler serves member management.
type UsersHandler struct{}

// NewUsersHandler constructs handler.
func NewUsersHandler() *UsersHandler {
	return &UsersHandler{}
}

func userFilter(c *fiber.Ctx) domain.UserFilter {
	return domain.UserFilter{
		Role:     domain.Role(c.Query("role")),
		Approval: c.Query("approval"),
		Branch:   c.Query("branch"),
		Search:   c.Query("search"),
	}
}

func (h *UsersHandler) render(c *fiber.Ctx, v *views.Users, status int) error {
	return listing(c, "users", status, v.Listing(), v.Capabilities())
}

// List handles GET /users.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	v := views.NewUsers(c.UserContext(), store)
	defer v.Close()
	if err := v.Show(userFilter(c), pageQuery(c)); err != nil {
		return err
	}
	return h.render(c, v, http.StatusOK)
}

// Get handles GET /users/:id.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	v := views.NewUsers(c.UserContext(), store)
	defer v.Close()
	user, err := v.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"view": "user", "data": user, "capabilities": v.Capabilities()})
}

// Create handles POST /users.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.NewUserRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	return h.mutate(c, http.StatusCreated, func(v *views.Users) error {
		return v.Create(req.Input())
	})
}

// Update handles PUT /users/:id.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UserRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	return h.mutate(c, http.StatusOK, func(v *views.Users) error {
		return v.Update(c.Params("id"), req.Input())
	})
}

// Delete handles DELETE /users/:id.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	return h.mutate(c, http.StatusOK, func(v *views.Users) error {
		return v.Delete(c.Params("id"))
	})
}

// Approve handles PUT /users/:id/approve.
func (h *UsersHandler) Approve(c *fiber.Ctx) error {
	return h.mutate(c, http.StatusOK, func(v *views.Users) error {
		return v.Approve(c.Params("id"))
	})
}

// Reject handles PUT /users/:id/reject.
func (h *UsersHandler) Reject(c *fiber.Ctx) error {
	var req dto.RejectRequest
	if len(c.Body()) > 0 {
		if err := parseForm(c, &req); err != nil {
			return err
		}
	}
	return h.mutate(c, http.StatusOK, func(v *views.Users) error {
		return v.Reject(c.Params("id"), req.Reason)
	})
}

func (h *UsersHandler) mutate(c *fiber.Ctx, status int, op func(*views.Users) error) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	v := views.NewUsers(c.UserContext(), store)
	defer v.Close()
	v.Restore(userFilter(c), pageQuery(c))
	if err := op(v); err != nil {
		return err
	}
	return h.render(c, v, status)
}

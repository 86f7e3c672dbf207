package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/api/dto"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/views"
)

// ContactsHandler serves the public contact form and the staff inbox.
type ContactsHandler struct {
	api *apiclient.Client
}

// NewContactsHandler constructs handler. api is the anonymous client.
func NewContactsHandler(api *apiclient.Client) *ContactsHandler {
	return &ContactsHandler{api: api}
}

// Submit handles POST /contact.
func (h *ContactsHandler) Submit(c *fiber.Ctx) error {
	var req dto.ContactRequest
	if err := parseForm(c, &req); err != nil {
		return formFailure(c, "contact", err)
	}
	if err := views.SubmitContact(c.UserContext(), h.api, req.Input()); err != nil {
		return formFailure(c, "contact", err)
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"view":    "contact",
		"message": "Thank you for reaching out. We will get back to you soon.",
	})
}

func contactFilter(c *fiber.Ctx) domain.ContactFilter {
	return domain.ContactFilter{
		Unread: c.QueryBool("unread"),
		Search: c.Query("search"),
	}
}

func (h *ContactsHandler) render(c *fiber.Ctx, v *views.Contacts, status int) error {
	store, _ := currentStore(c)
	return listing(c, "contacts", status, v.Listing(), fiber.Map{
		"delete": store != nil && store.HasRole(auth.AdminOnly),
	})
}

// List handles GET /contacts.
func (h *ContactsHandler) List(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	v := views.NewContacts(c.UserContext(), store)
	defer v.Close()
	if err := v.Show(contactFilter(c), pageQuery(c)); err != nil {
		return err
	}
	return h.render(c, v, http.StatusOK)
}

// MarkRead handles PUT /contacts/:id/read.
func (h *ContactsHandler) MarkRead(c *fiber.Ctx) error {
	return h.mutate(c, func(v *views.Contacts) error {
		return v.MarkRead(c.Params("id"))
	})
}

// Delete handles DELETE /contacts/:id.
func (h *ContactsHandler) Delete(c *fiber.Ctx) error {
	return h.mutate(c, func(v *views.Contacts) error {
		return v.Delete(c.Params("id"))
	})
}

func (h *ContactsHandler) mutate(c *fiber.Ctx, op func(*views.Contacts) error) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	v := views.NewContacts(c.UserContext(), store)
	defer v.Close()
	v.Restore(contactFilter(c), pageQuery(c))
	if err := op(v); err != nil {
		return err
	}
	return h.render(c, v, http.StatusOK)
}

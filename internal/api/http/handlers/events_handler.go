package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/api/dto"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/views"
)

// EventsHandler serves the events pages.
type EventsHandler struct{}

// NewEventsHandler constructs handler.
func NewEventsHandler() *EventsHandler {
	return &EventsHandler{}
}

func eventFilter(c *fiber.Ctx) domain.EventFilter {
	return domain.EventFilter{
		Type:   domain.EventType(c.Query("type")),
		Status: domain.EventStatus(c.Query("status")),
		Branch: c.Query("branch"),
		Search: c.Query("search"),
	}
}

func (h *EventsHandler) render(c *fiber.Ctx, v *views.Events, status int) error {
	return listing(c, "events", status, v.Listing(), v.Capabilities())
}

// List handles GET /events.
func (h *EventsHandler) List(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	v := views.NewEvents(c.UserContext(), store)
	defer v.Close()
	if err := v.Show(eventFilter(c), pageQuery(c)); err != nil {
		return err
	}
	return h.render(c, v, http.StatusOK)
}

// Get handles GET /events/:id.
func (h *EventsHandler) Get(c *fiber.Ctx) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	v := views.NewEvents(c.UserContext(), store)
	defer v.Close()
	detail, err := v.Get(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"view": "event", "data": detail, "capabilities": v.Capabilities()})
}

// Create handles POST /events.
func (h *EventsHandler) Create(c *fiber.Ctx) error {
	var req dto.EventRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	return h.mutate(c, http.StatusCreated, func(v *views.Events) error {
		return v.Create(req.Input())
	})
}

// Update handles PUT /events/:id.
func (h *EventsHandler) Update(c *fiber.Ctx) error {
	var req dto.EventRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	return h.mutate(c, http.StatusOK, func(v *views.Events) error {
		return v.Update(c.Params("id"), req.Input())
	})
}

// Delete handles DELETE /events/:id.
func (h *EventsHandler) Delete(c *fiber.Ctx) error {
	return h.mutate(c, http.StatusOK, func(v *views.Events) error {
		return v.Delete(c.Params("id"))
	})
}

// Register handles POST /events/:id/register.
func (h *EventsHandler) Register(c *fiber.Ctx) error {
	return h.mutate(c, http.StatusOK, func(v *views.Events) error {
		return v.Register(c.Params("id"))
	})
}

// Feedback handles POST /events/:id/feedback.
func (h *EventsHandler) Feedback(c *fiber.Ctx) error {
	var req dto.FeedbackRequest
	if err := parseForm(c, &req); err != nil {
		return err
	}
	return h.mutate(c, http.StatusOK, func(v *views.Events) error {
		return v.SubmitFeedback(c.Params("id"), domain.Feedback{Rating: req.Rating, Comment: req.Comment})
	})
}

func (h *EventsHandler) mutate(c *fiber.Ctx, status int, op func(*views.Events) error) error {
	store, err := currentStore(c)
	if err != nil {
		return err
	}
	v := views.NewEvents(c.UserContext(), store)
	defer v.Close()
	v.Restore(eventFilter(c), pageQuery(c))
	if err := op(v); err != nil {
		return err
	}
	return h.render(c, v, status)
}

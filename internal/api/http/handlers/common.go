package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/api/dto"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/guard"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/session"
	apperrors "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/pkg/util"
)

func currentStore(c *fiber.Ctx) (*session.Store, error) {
	store, ok := guard.Current(c)
	if !ok {
		return nil, apperrors.NewUnauthorized("no session")
	}
	return store, nil
}

// parseForm decodes the body into form and validates it.
func parseForm(c *fiber.Ctx, form any) error {
	if err := c.BodyParser(form); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	return dto.Check(form)
}

func pageQuery(c *fiber.Ctx) domain.PageQuery {
	return domain.PageQuery{
		Page:  parseInt(c.Query("page"), 1),
		Limit: parseInt(c.Query("limit"), domain.DefaultLimit),
	}.Normalize()
}

func parseInt(val string, def int) int {
	if val == "" {
		return def
	}
	parsed, err := strconv.Atoi(val)
	if err != nil || parsed <= 0 {
		return def
	}
	return parsed
}

// listing renders a collection page with the viewer's capabilities.
func listing(c *fiber.Ctx, view string, status int, data, capabilities any) error {
	return c.Status(status).JSON(fiber.Map{
		"view":         view,
		"data":         data,
		"capabilities": capabilities,
	})
}

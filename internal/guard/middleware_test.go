package guard_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient/apitest"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/guard"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/session"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/tokenstore"
)

func newApp(store *session.Store) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if store != nil {
			guard.Bind(c, store)
		}
		return c.Next()
	})
	app.Get("/admin", guard.Require(auth.AdminOnly), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"view": "admin"})
	})
	app.Get("/dashboard", guard.Require(auth.AnyMember), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"view": "dashboard"})
	})
	return app
}

func signedInStore(t *testing.T, user domain.User) *session.Store {
	t.Helper()
	backend := apitest.New()
	t.Cleanup(backend.Close)
	backend.AddUser(user, "pw")
	store := session.NewStore("sid", apiclient.New(backend.Config()), tokenstore.Bind(tokenstore.NewMemory(), "sid"), session.Options{})
	require.NoError(t, store.Login(context.Background(), user.Email, "pw"))
	return store
}

func view(t *testing.T, body []byte) string {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	v, _ := out["view"].(string)
	return v
}

func TestRequireRedirectsAnonymousWithReturnPath(t *testing.T) {
	resp, err := newApp(nil).Test(httptest.NewRequest(fiber.MethodGet, "/admin", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	loc, err := url.Parse(resp.Header.Get(fiber.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, guard.LoginPath, loc.Path)
	assert.Equal(t, "/admin", loc.Query().Get(guard.ReturnParam))
}

func TestRequireRendersPendingApproval(t *testing.T) {
	store := signedInStore(t, domain.User{Email: "member@club.org", Role: domain.RoleMember})

	resp, err := newApp(store).Test(httptest.NewRequest(fiber.MethodGet, "/dashboard", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, string(guard.OutcomePendingApproval), view(t, body))
}

func TestRequireRendersAccessDenied(t *testing.T) {
	store := signedInStore(t, domain.User{Email: "officer@club.org", Role: domain.RoleOfficer})

	resp, err := newApp(store).Test(httptest.NewRequest(fiber.MethodGet, "/admin", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, string(guard.OutcomeAccessDenied), view(t, body))
}

func TestRequireAllowsAdmin(t *testing.T) {
	store := signedInStore(t, domain.User{Email: "admin@club.org", Role: domain.RoleAdmin})

	resp, err := newApp(store).Test(httptest.NewRequest(fiber.MethodGet, "/admin", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

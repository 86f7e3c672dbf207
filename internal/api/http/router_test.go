package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/api/http"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/api/http/handlers"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient/apitest"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/config"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/observability"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/session"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/tokenstore"
)

type portal struct {
	app     *fiber.App
	backend *apitest.Backend
	cookies map[string]*http.Cookie
}

func newPortal(t *testing.T, csrf bool) *portal {
	t.Helper()
	backend := apitest.New()
	t.Cleanup(backend.Close)

	logger := zap.NewNop()
	metrics := observability.NewMetrics()
	api := apiclient.New(backend.Config(), apiclient.WithMetrics(metrics))
	registry := session.NewRegistry(api, tokenstore.NewMemory(), time.Minute, session.Options{Logger: logger})
	cookies := httptransport.NewSessionCookies(config.SessionConfig{CookieName: "portal_sid"})

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:  logger,
		Metrics: metrics,
		Timeout: 5 * time.Second,
		CSRF:    csrf,
	})
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Registry:      registry,
		Cookies:       cookies,
		Health:        handlers.NewHealthHandler("portal", "test", metrics, nil),
		Auth:          handlers.NewAuthHandler(api, registry, cookies, logger),
		Dashboard:     handlers.NewDashboardHandler(),
		Events:        handlers.NewEventsHandler(),
		Announcements: handlers.NewAnnouncementsHandler(),
		Donations:     handlers.NewDonationsHandler(),
		Users:         handlers.NewUsersHandler(),
		Contacts:      handlers.NewContactsHandler(api),
	})
	return &portal{app: app, backend: backend, cookies: map[string]*http.Cookie{}}
}

func (p *portal) do(t *testing.T, method, target string, body any, headers map[string]string) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = strings.NewReader(string(payload))
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	for _, c := range p.cookies {
		req.AddCookie(c)
	}
	resp, err := p.app.Test(req, -1)
	require.NoError(t, err)
	for _, c := range resp.Cookies() {
		p.cookies[c.Name] = c
	}
	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

func TestAdminRedirectRoundTrip(t *testing.T) {
	p := newPortal(t, false)
	p.backend.AddUser(domain.User{Email: "admin@club.org", Role: domain.RoleAdmin}, "pw")

	resp := p.do(t, fiber.MethodGet, "/admin", nil, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fadmin", resp.Header.Get("Location"))
	require.Contains(t, p.cookies, "portal_sid")

	resp = p.do(t, fiber.MethodPost, "/login", map[string]any{
		"email":    "admin@club.org",
		"password": "pw",
		"redirect": "/admin",
	}, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/admin", resp.Header.Get("Location"))

	resp = p.do(t, fiber.MethodGet, "/admin", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "admin", decode(t, resp)["view"])
}

func signInAdmin(t *testing.T, p *portal) {
	t.Helper()
	p.backend.AddUser(domain.User{Email: "admin@club.org", Role: domain.RoleAdmin}, "pw")
	resp := p.do(t, fiber.MethodPost, "/login", map[string]any{"email": "admin@club.org", "password": "pw"}, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestAdminFetchesDashboardAndQueueTogether(t *testing.T) {
	p := newPortal(t, false)
	signInAdmin(t, p)
	p.backend.Delay("GET /dashboard/stats", 200*time.Millisecond)
	p.backend.Delay("GET /users", 200*time.Millisecond)

	start := time.Now()
	resp := p.do(t, fiber.MethodGet, "/admin", nil, nil)
	elapsed := time.Since(start)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Less(t, elapsed, 380*time.Millisecond)
	assert.Len(t, p.backend.RequestsTo("GET /users"), 1)
	assert.Len(t, p.backend.RequestsTo("GET /dashboard/stats"), 1)
}

func TestAdminFailsWhenQueueFails(t *testing.T) {
	p := newPortal(t, false)
	signInAdmin(t, p)
	p.backend.Fail("GET /users", fiber.StatusInternalServerError)

	resp := p.do(t, fiber.MethodGet, "/admin", nil, nil)
	require.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	_, ok := decode(t, resp)["error"]
	assert.True(t, ok)
}

func TestLoginFailureRendersServerMessage(t *testing.T) {
	p := newPortal(t, false)
	p.backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember, IsApproved: true}, "pw")

	resp := p.do(t, fiber.MethodPost, "/login", map[string]any{"email": "member@club.org", "password": "nope"}, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, "login", body["view"])
	assert.Equal(t, "Invalid credentials", body["error"])
}

func TestLoginErrorIsShownOnce(t *testing.T) {
	p := newPortal(t, false)
	p.backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember, IsApproved: true}, "pw")

	resp := p.do(t, fiber.MethodPost, "/login", map[string]any{"email": "member@club.org", "password": "nope"}, nil)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = p.do(t, fiber.MethodGet, "/login", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Invalid credentials", decode(t, resp)["error"])

	resp = p.do(t, fiber.MethodGet, "/login", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "", decode(t, resp)["error"])

	resp = p.do(t, fiber.MethodGet, "/dashboard", nil, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	resp = p.do(t, fiber.MethodGet, resp.Header.Get("Location"), nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "", decode(t, resp)["error"])
}

func TestLoginRejectsForeignRedirect(t *testing.T) {
	p := newPortal(t, false)
	p.backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember, IsApproved: true}, "pw")

	resp := p.do(t, fiber.MethodPost, "/login", map[string]any{
		"email":    "member@club.org",
		"password": "pw",
		"redirect": "//evil.example",
	}, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestPendingMemberSeesApprovalView(t *testing.T) {
	p := newPortal(t, false)
	p.backend.AddUser(domain.User{Email: "new@club.org", Role: domain.RoleMember}, "pw")

	resp := p.do(t, fiber.MethodPost, "/login", map[string]any{"email": "new@club.org", "password": "pw"}, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	resp = p.do(t, fiber.MethodGet, "/dashboard", nil, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "pending_approval", decode(t, resp)["view"])
}

func TestMemberDeniedAdminPage(t *testing.T) {
	p := newPortal(t, false)
	p.backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember, IsApproved: true}, "pw")
	p.do(t, fiber.MethodPost, "/login", map[string]any{"email": "member@club.org", "password": "pw"}, nil)

	resp := p.do(t, fiber.MethodGet, "/admin", nil, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "access_denied", decode(t, resp)["view"])
}

func TestRevokedTokenSendsBackToLogin(t *testing.T) {
	p := newPortal(t, false)
	p.backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember, IsApproved: true}, "pw")
	p.do(t, fiber.MethodPost, "/login", map[string]any{"email": "member@club.org", "password": "pw"}, nil)

	p.backend.RevokeTokens()
	resp := p.do(t, fiber.MethodGet, "/events?type=meeting", nil, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Location"), "/login?redirect="))

	resp = p.do(t, fiber.MethodGet, "/dashboard", nil, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login?redirect=%2Fdashboard", resp.Header.Get("Location"))
}

func TestLogoutClearsSession(t *testing.T) {
	p := newPortal(t, false)
	p.backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember, IsApproved: true}, "pw")
	p.do(t, fiber.MethodPost, "/login", map[string]any{"email": "member@club.org", "password": "pw"}, nil)

	resp := p.do(t, fiber.MethodPost, "/logout", nil, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	resp = p.do(t, fiber.MethodGet, "/dashboard", nil, nil)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
}

func TestPublicContactForm(t *testing.T) {
	p := newPortal(t, false)

	resp := p.do(t, fiber.MethodPost, "/contact", map[string]any{"name": "Abebe"}, nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "contact", decode(t, resp)["view"])

	resp = p.do(t, fiber.MethodPost, "/contact", map[string]any{
		"name":    "Abebe",
		"email":   "abebe@example.com",
		"subject": "Volunteering",
		"message": "How can I join?",
	}, nil)
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Len(t, p.backend.RequestsTo("POST /contacts"), 1)
}

func TestCSRFProtectsStateChanges(t *testing.T) {
	p := newPortal(t, true)
	p.backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember, IsApproved: true}, "pw")
	creds := map[string]any{"email": "member@club.org", "password": "pw"}

	resp := p.do(t, fiber.MethodPost, "/login", creds, nil)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	resp = p.do(t, fiber.MethodGet, "/login", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	token, ok := p.cookies[httptransport.CSRFCookie]
	require.True(t, ok)

	resp = p.do(t, fiber.MethodPost, "/login", creds, map[string]string{httptransport.CSRFHeader: token.Value})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/dashboard", resp.Header.Get("Location"))
}

func TestHealthEndpoints(t *testing.T) {
	p := newPortal(t, true)

	resp := p.do(t, fiber.MethodGet, "/health/ready", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "ready", decode(t, resp)["status"])

	resp = p.do(t, fiber.MethodGet, "/health/metrics", nil, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, decode(t, resp), "requests")
}

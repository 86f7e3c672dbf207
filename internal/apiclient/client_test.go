package apiclient_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient/apitest"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/config"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/observability"
	apperrors "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/pkg/util"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func setup(t *testing.T) (*apitest.Backend, *apiclient.Client) {
	t.Helper()
	backend := apitest.New()
	t.Cleanup(backend.Close)
	return backend, apiclient.New(backend.Config())
}

func TestLoginReturnsTokenAndUser(t *testing.T) {
	backend, client := setup(t)
	backend.AddUser(domain.User{Email: "admin@club.org", Role: domain.RoleAdmin}, "secret")

	res, err := client.Login(context.Background(), domain.Credentials{Email: "admin@club.org", Password: "secret"})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, domain.RoleAdmin, res.User.Role)
}

func TestLoginWrongPasswordKeepsServerMessage(t *testing.T) {
	backend, client := setup(t)
	backend.AddUser(domain.User{Email: "m@club.org", Role: domain.RoleMember}, "secret")

	_, err := client.Login(context.Background(), domain.Credentials{Email: "m@club.org", Password: "nope"})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, "Invalid credentials", apperrors.DisplayMessage(err))
}

func TestLoginWithoutTokenIsBadGateway(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"user":null}`))
	}))
	defer server.Close()
	client := apiclient.New(config.BackendConfig{BaseURL: server.URL, TimeoutSeconds: 1})

	_, err := client.Login(context.Background(), domain.Credentials{Email: "m@club.org", Password: "pw"})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, apperrors.CodeBadGateway, domainErr.Code)
	assert.Equal(t, http.StatusBadGateway, domainErr.HTTPStatus)
	assert.Equal(t, "The server sent an incomplete response. Please try again.", apperrors.DisplayMessage(err))
}

func TestBearerTokenAttached(t *testing.T) {
	backend, base := setup(t)
	backend.AddUser(domain.User{Email: "m@club.org", Role: domain.RoleMember}, "pw")
	token := backend.IssueToken("m@club.org")

	client := base.WithSession(staticToken(token), nil)
	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "m@club.org", user.Email)

	calls := backend.RequestsTo("GET /auth/me")
	require.Len(t, calls, 1)
	assert.Equal(t, "Bearer "+token, calls[0].Auth)
}

func TestNoAuthorizationHeaderWithoutToken(t *testing.T) {
	backend, client := setup(t)
	_, err := client.ListBranches(context.Background())
	require.NoError(t, err)

	calls := backend.RequestsTo("GET /branches")
	require.Len(t, calls, 1)
	assert.Empty(t, calls[0].Auth)
}

func TestUnauthorizedHandlerReceivesSentToken(t *testing.T) {
	_, base := setup(t)

	var mu sync.Mutex
	var seen []string
	client := base.WithSession(staticToken("stale"), func(token string) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, token)
	})

	_, err := client.ListEvents(context.Background(), domain.EventFilter{}, domain.PageQuery{})
	require.Error(t, err)
	assert.True(t, apperrors.IsUnauthorized(err))
	assert.Equal(t, []string{"stale"}, seen)
}

func TestNetworkFailureIsNormalised(t *testing.T) {
	metrics := observability.NewMetrics()
	client := apiclient.New(config.BackendConfig{BaseURL: "http://127.0.0.1:1", TimeoutSeconds: 1}, apiclient.WithMetrics(metrics))

	_, err := client.ListBranches(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNetwork))
	assert.Equal(t, apperrors.NetworkErrorMessage, apperrors.DisplayMessage(err))
	require.Len(t, metrics.Snapshot().Backend, 1)
	assert.Equal(t, "/branches|GET|0", metrics.Snapshot().Backend[0].Key)
}

func TestTimeoutIsNetworkError(t *testing.T) {
	backend := apitest.New()
	defer backend.Close()
	backend.Delay("GET /branches", 2*time.Second)

	client := apiclient.New(backend.Config(), apiclient.WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	_, err := client.ListBranches(context.Background())
	require.Error(t, err)
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNetwork))
}

func TestValidationErrorsKeepFields(t *testing.T) {
	backend, base := setup(t)
	backend.AddUser(domain.User{Email: "o@club.org", Role: domain.RoleOfficer}, "pw")
	client := base.WithSession(staticToken(backend.IssueToken("o@club.org")), nil)

	_, err := client.CreateEvent(context.Background(), domain.EventInput{})
	require.Error(t, err)

	var domainErr *apperrors.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, http.StatusBadRequest, domainErr.HTTPStatus)
	assert.Equal(t, apperrors.CodeValidationFailed, domainErr.Code)
	require.Len(t, domainErr.Fields, 2)
	assert.Equal(t, "Title is required, Start date is required", apperrors.DisplayMessage(err))
}

func TestListSendsPageAndFilters(t *testing.T) {
	backend, base := setup(t)
	backend.AddUser(domain.User{Email: "m@club.org", Role: domain.RoleMember}, "pw")
	backend.AddEvent(domain.Event{Title: "Blood drive", Type: domain.EventBloodDonation})
	backend.AddEvent(domain.Event{Title: "Meeting", Type: domain.EventMeeting})
	client := base.WithSession(staticToken(backend.IssueToken("m@club.org")), nil)

	page, err := client.ListEvents(context.Background(),
		domain.EventFilter{Type: domain.EventBloodDonation},
		domain.PageQuery{Page: 1, Limit: 5})
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, 1, page.Total)

	calls := backend.RequestsTo("GET /events")
	require.Len(t, calls, 1)
	assert.Equal(t, "blood_donation", calls[0].Query.Get("type"))
	assert.Equal(t, "1", calls[0].Query.Get("page"))
	assert.Equal(t, "5", calls[0].Query.Get("limit"))
}

package session

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient/apitest"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/events"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/tokenstore"
	apperrors "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/pkg/util"
)

type countingStore struct {
	tokenstore.Store
	deletes atomic.Int32
	loadErr error
}

func (c *countingStore) Load(ctx context.Context, key string) (string, error) {
	if c.loadErr != nil {
		return "", c.loadErr
	}
	return c.Store.Load(ctx, key)
}

func (c *countingStore) Delete(ctx context.Context, key string) error {
	c.deletes.Add(1)
	return c.Store.Delete(ctx, key)
}

type fixture struct {
	backend *apitest.Backend
	tokens  *countingStore
	events  events.Dispatcher
	store   *Store

	mu        sync.Mutex
	published []events.EventType
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	backend := apitest.New()
	t.Cleanup(backend.Close)

	f := &fixture{
		backend: backend,
		tokens:  &countingStore{Store: tokenstore.NewMemory()},
		events:  events.NewInMemoryDispatcher(),
	}
	for _, et := range []events.EventType{
		events.EventLoggedIn, events.EventRegistered, events.EventRestored, events.EventLoginFailed,
		events.EventLoggedOut, events.EventUnauthorized, events.EventProfileUpdated, events.EventPasswordChanged,
	} {
		f.events.Subscribe(et, func(_ context.Context, ev events.Event) error {
			f.mu.Lock()
			defer f.mu.Unlock()
			f.published = append(f.published, ev.Type)
			return nil
		})
	}
	f.store = NewStore("sid-1", apiclient.New(backend.Config()), tokenstore.Bind(f.tokens, "sid-1"), Options{Events: f.events})
	return f
}

func (f *fixture) stored(t *testing.T) string {
	t.Helper()
	token, err := f.tokens.Load(context.Background(), "sid-1")
	if err != nil {
		require.ErrorIs(t, err, tokenstore.ErrNotFound)
		return ""
	}
	return token
}

func (f *fixture) publishedTypes() []events.EventType {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]events.EventType(nil), f.published...)
}

func TestReduceNeverHoldsUserAndError(t *testing.T) {
	user := &domain.User{ID: "u-1", Role: domain.RoleMember}
	s := reduce(State{}, authStarted{})
	assert.Equal(t, StatusLoading, s.Status())

	s = reduce(s, authSucceeded{user: user, token: "tok"})
	assert.Equal(t, StatusAuthenticated, s.Status())
	assert.Empty(t, s.Error)

	s = reduce(s, authFailed{message: "Invalid credentials"})
	assert.Nil(t, s.User)
	assert.Empty(t, s.Token)
	assert.Equal(t, StatusError, s.Status())

	s = reduce(s, errorCleared{})
	assert.Equal(t, StatusIdle, s.Status())
}

func TestReduceTokenRevokedIgnoresStaleToken(t *testing.T) {
	s := State{User: &domain.User{ID: "u-1"}, Token: "new"}
	assert.Equal(t, s, reduce(s, tokenRevoked{token: "old"}))
	assert.Equal(t, State{}, reduce(s, tokenRevoked{token: "new"}))
}

func TestMountWithoutTokenStaysIdle(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.store.Mount(context.Background()))

	assert.Equal(t, StatusIdle, f.store.State().Status())
	assert.Empty(t, f.backend.Requests())
}

func TestMountRestoresStoredToken(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember, IsApproved: true}, "pw")
	token := f.backend.IssueToken("member@club.org")
	require.NoError(t, f.tokens.Save(context.Background(), "sid-1", token, time.Hour))

	require.NoError(t, f.store.Mount(context.Background()))

	state := f.store.State()
	assert.Equal(t, StatusAuthenticated, state.Status())
	assert.Equal(t, token, state.Token)
	assert.Equal(t, "member@club.org", state.User.Email)
	assert.Contains(t, f.publishedTypes(), events.EventRestored)
}

func TestMountDiscardsRejectedToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.Save(context.Background(), "sid-1", "revoked", time.Hour))

	err := f.store.Mount(context.Background())
	require.Error(t, err)

	state := f.store.State()
	assert.Equal(t, StatusIdle, state.Status())
	assert.Empty(t, state.Token)
	assert.Empty(t, f.stored(t))
	assert.Equal(t, int32(1), f.tokens.deletes.Load())
}

func TestMountDiscardsNetworkFailure(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.Save(context.Background(), "sid-1", "tok", time.Hour))
	f.backend.Close()

	err := f.store.Mount(context.Background())
	assert.True(t, apperrors.HasCode(err, apperrors.CodeNetwork))
	assert.Equal(t, StatusIdle, f.store.State().Status())
	assert.Empty(t, f.stored(t))
}

func TestMountKeepsTokenWhenStorageUnavailable(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.Save(context.Background(), "sid-1", "tok", time.Hour))
	f.tokens.loadErr = errors.New("dial tcp 127.0.0.1:6379: connection refused")

	require.NoError(t, f.store.Mount(context.Background()))

	assert.Equal(t, StatusIdle, f.store.State().Status())
	assert.Equal(t, int32(0), f.tokens.deletes.Load())
	assert.Empty(t, f.backend.Requests())

	f.tokens.loadErr = nil
	assert.Equal(t, "tok", f.stored(t))
}

func TestMountDiscardsCorruptToken(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.tokens.Save(context.Background(), "sid-1", "tok", time.Hour))
	f.tokens.loadErr = tokenstore.ErrCorrupt

	require.NoError(t, f.store.Mount(context.Background()))

	assert.Equal(t, StatusIdle, f.store.State().Status())
	assert.Equal(t, int32(1), f.tokens.deletes.Load())
	f.tokens.loadErr = nil
	assert.Empty(t, f.stored(t))
}

func TestMountSkipsExpiredJWT(t *testing.T) {
	f := newFixture(t)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u-1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	require.NoError(t, f.tokens.Save(context.Background(), "sid-1", expired, time.Hour))

	require.NoError(t, f.store.Mount(context.Background()))

	assert.Equal(t, StatusIdle, f.store.State().Status())
	assert.Empty(t, f.stored(t))
	assert.Empty(t, f.backend.Requests())
}

func TestLoginPersistsToken(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{Email: "admin@club.org", Role: domain.RoleAdmin}, "secret")

	require.NoError(t, f.store.Login(context.Background(), "admin@club.org", "secret"))

	state := f.store.State()
	assert.Equal(t, StatusAuthenticated, state.Status())
	assert.NotEmpty(t, state.Token)
	assert.Equal(t, state.Token, f.stored(t))
	assert.True(t, f.store.HasRole(auth.AdminOnly))
	assert.True(t, f.store.IsApproved())
	assert.Equal(t, []events.EventType{events.EventLoggedIn}, f.publishedTypes())
}

func TestLoginFailureKeepsServerMessageAndDropsStoredToken(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{Email: "admin@club.org", Role: domain.RoleAdmin}, "secret")
	require.NoError(t, f.tokens.Save(context.Background(), "sid-1", "stale", time.Hour))

	err := f.store.Login(context.Background(), "admin@club.org", "wrong")
	require.Error(t, err)

	state := f.store.State()
	assert.Equal(t, StatusError, state.Status())
	assert.Equal(t, "Invalid credentials", state.Error)
	assert.Nil(t, state.User)
	assert.Empty(t, f.stored(t))
	assert.Equal(t, []events.EventType{events.EventLoginFailed}, f.publishedTypes())
}

func TestRegisterJoinsValidationMessages(t *testing.T) {
	f := newFixture(t)

	err := f.store.Register(context.Background(), domain.RegistrationProfile{FirstName: "Abebe", Email: "abebe@club.org"})
	require.Error(t, err)

	assert.Equal(t, "lastName is required, password is required", f.store.State().Error)
}

func TestRegisterSignsIn(t *testing.T) {
	f := newFixture(t)

	err := f.store.Register(context.Background(), domain.RegistrationProfile{
		FirstName: "Abebe", LastName: "Kebede", Email: "abebe@club.org", Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleMember, f.store.User().Role)
	assert.False(t, f.store.IsApproved())
	assert.NotEmpty(t, f.stored(t))
}

func TestLogoutClearsWithoutBackendCall(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember}, "pw")
	require.NoError(t, f.store.Login(context.Background(), "member@club.org", "pw"))
	before := len(f.backend.Requests())

	require.NoError(t, f.store.Logout(context.Background()))

	assert.Equal(t, State{}, f.store.State())
	assert.Empty(t, f.stored(t))
	assert.Len(t, f.backend.Requests(), before)
	assert.Contains(t, f.publishedTypes(), events.EventLoggedOut)
}

func TestUnauthorizedResponsesClearStorageOnce(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember}, "pw")
	require.NoError(t, f.store.Login(context.Background(), "member@club.org", "pw"))
	f.backend.RevokeTokens()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.store.API().ListEvents(context.Background(), domain.EventFilter{}, domain.PageQuery{})
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		assert.True(t, apperrors.IsUnauthorized(err))
	}
	assert.Equal(t, StatusIdle, f.store.State().Status())
	assert.Empty(t, f.stored(t))
	assert.Equal(t, int32(1), f.tokens.deletes.Load())

	unauthorized := 0
	for _, et := range f.publishedTypes() {
		if et == events.EventUnauthorized {
			unauthorized++
		}
	}
	assert.Equal(t, 1, unauthorized)
}

func TestUpdateUserFailureLeavesState(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{Email: "member@club.org", FirstName: "Sara", Role: domain.RoleMember}, "pw")
	require.NoError(t, f.store.Login(context.Background(), "member@club.org", "pw"))
	before := f.store.State()
	f.backend.Fail("PUT /auth/updatedetails", http.StatusBadRequest)

	err := f.store.UpdateUser(context.Background(), domain.ProfileUpdate{FirstName: "Sarah"})
	require.Error(t, err)

	after := f.store.State()
	assert.Empty(t, after.Error)
	assert.Equal(t, before.Token, after.Token)
	assert.Equal(t, "Sara", after.User.FirstName)
}

func TestUpdateUserReplacesUser(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{Email: "member@club.org", FirstName: "Sara", Role: domain.RoleMember}, "pw")
	require.NoError(t, f.store.Login(context.Background(), "member@club.org", "pw"))

	require.NoError(t, f.store.UpdateUser(context.Background(), domain.ProfileUpdate{Phone: "+251911000000"}))

	assert.Equal(t, "+251911000000", f.store.User().Phone)
}

func TestUpdatePasswordRotatesToken(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember}, "pw")
	require.NoError(t, f.store.Login(context.Background(), "member@club.org", "pw"))
	old := f.store.Token()

	require.NoError(t, f.store.UpdatePassword(context.Background(), "pw", "pw2"))

	assert.NotEqual(t, old, f.store.Token())
	assert.Equal(t, f.store.Token(), f.stored(t))
}

func TestUpdateWithoutSessionIsUnauthorized(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.store.UpdateUser(context.Background(), domain.ProfileUpdate{}), ErrNotAuthenticated)
	assert.ErrorIs(t, f.store.UpdatePassword(context.Background(), "a", "b"), ErrNotAuthenticated)
	assert.ErrorIs(t, f.store.LoadUser(context.Background()), ErrNotAuthenticated)
}

func TestClearErrorWithoutErrorNotifiesNobody(t *testing.T) {
	f := newFixture(t)
	calls := 0
	f.store.Subscribe(func(State) { calls++ })

	f.store.ClearError()

	assert.Zero(t, calls)
}

func TestSubscribersSeeEveryTransition(t *testing.T) {
	f := newFixture(t)
	f.backend.AddUser(domain.User{Email: "member@club.org", Role: domain.RoleMember}, "pw")
	var seen []Status
	cancel := f.store.Subscribe(func(s State) { seen = append(seen, s.Status()) })

	require.Error(t, f.store.Login(context.Background(), "member@club.org", "wrong"))
	f.store.ClearError()
	cancel()
	require.NoError(t, f.store.Logout(context.Background()))

	assert.Equal(t, []Status{StatusLoading, StatusError, StatusIdle}, seen)
}

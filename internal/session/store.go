// Package session holds the per-browser authentication state machine.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/events"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/tokenstore"
	apperrors "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/pkg/util"
)

// ErrNotAuthenticated is returned by operations that need a signed-in user.
var ErrNotAuthenticated = apperrors.NewUnauthorized("not authenticated")

// Options tune a Store.
type Options struct {
	// TokenTTL bounds storage of tokens that declare no expiry.
	TokenTTL time.Duration
	Events   events.Dispatcher
	Logger   *zap.Logger
}

// Store owns one Session. Every mutation goes through dispatch.
type Store struct {
	id       string
	api      *apiclient.Client
	tokens   tokenstore.Slot
	events   events.Dispatcher
	logger   *zap.Logger
	tokenTTL time.Duration
	now      func() time.Time

	mu     sync.Mutex
	state  State
	subs   map[int]func(State)
	nextID int
}

// NewStore creates an idle store whose API client is bound to this session.
func NewStore(id string, base *apiclient.Client, tokens tokenstore.Slot, opts Options) *Store {
	if opts.Events == nil {
		opts.Events = events.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 7 * 24 * time.Hour
	}
	s := &Store{
		id:       id,
		tokens:   tokens,
		events:   opts.Events,
		logger:   opts.Logger,
		tokenTTL: opts.TokenTTL,
		now:      time.Now,
		subs:     map[int]func(State){},
	}
	s.api = base.WithSession(s, s.handleUnauthorized)
	return s
}

// ID returns the browser session id.
func (s *Store) ID() string { return s.id }

// API returns the client that carries this session's token.
func (s *Store) API() *apiclient.Client { return s.api }

// Token implements apiclient.TokenSource.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Token
}

// State returns a snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.clone()
}

// User returns a copy of the signed-in user, or nil.
func (s *Store) User() *domain.User {
	return s.State().User
}

// Subscribe registers fn for every state change and returns its cancel func.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) dispatch(a action) State {
	_, next := s.transition(a)
	return next
}

// transition applies a under the lock and notifies subscribers when the state
// changed. It returns the states before and after.
func (s *Store) transition(a action) (State, State) {
	s.mu.Lock()
	prev := s.state
	s.state = reduce(s.state, a)
	next := s.state
	var subs []func(State)
	if next != prev {
		subs = make([]func(State), 0, len(s.subs))
		for _, fn := range s.subs {
			subs = append(subs, fn)
		}
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(next.clone())
	}
	return prev.clone(), next.clone()
}

// Mount restores a session from durable storage. Without a stored token the
// store stays idle and no request is made.
func (s *Store) Mount(ctx context.Context) error {
	token, err := s.tokens.Load(ctx)
	if errors.Is(err, tokenstore.ErrNotFound) {
		return nil
	}
	if errors.Is(err, tokenstore.ErrCorrupt) {
		s.logger.Warn("discarding unreadable stored token", zap.String("session_id", s.id), zap.Error(err))
		s.deleteStored(ctx)
		return nil
	}
	if err != nil {
		// storage outage: stay idle, the token is still valid for a later mount
		s.logger.Warn("token storage unavailable", zap.String("session_id", s.id), zap.Error(err))
		return nil
	}

	if info, err := auth.InspectToken(token); err == nil && info.Expired(s.now()) {
		s.deleteStored(ctx)
		return nil
	}

	s.dispatch(authStarted{token: token})
	if err := s.whoAmI(ctx, token); err != nil {
		return err
	}
	s.publish(ctx, events.EventRestored, s.User(), nil)
	return nil
}

// LoadUser re-runs "who am I" with the current token.
func (s *Store) LoadUser(ctx context.Context) error {
	token := s.Token()
	if token == "" {
		return ErrNotAuthenticated
	}
	s.dispatch(authStarted{})
	return s.whoAmI(ctx, token)
}

func (s *Store) whoAmI(ctx context.Context, token string) error {
	user, err := s.api.Me(ctx)
	if err != nil {
		s.expire(ctx, token)
		s.dispatch(sessionReset{})
		return err
	}
	s.dispatch(authSucceeded{user: user, token: token})
	return nil
}

// Login exchanges credentials for a session. On failure any stored token is
// discarded and Error carries the server message.
func (s *Store) Login(ctx context.Context, email, password string) error {
	s.dispatch(authStarted{})
	res, err := s.api.Login(ctx, domain.Credentials{Email: email, Password: password})
	if err != nil {
		s.fail(ctx, err)
		s.publish(ctx, events.EventLoginFailed, nil, events.LoginFailedPayload{Email: email, Reason: apperrors.DisplayMessage(err)})
		return err
	}
	if err := s.establish(ctx, res); err != nil {
		return err
	}
	s.publish(ctx, events.EventLoggedIn, res.User, nil)
	return nil
}

// Register creates an account and signs it in, with the same contract as Login.
func (s *Store) Register(ctx context.Context, profile domain.RegistrationProfile) error {
	s.dispatch(authStarted{})
	res, err := s.api.Register(ctx, profile)
	if err != nil {
		s.fail(ctx, err)
		return err
	}
	if err := s.establish(ctx, res); err != nil {
		return err
	}
	s.publish(ctx, events.EventRegistered, res.User, nil)
	return nil
}

func (s *Store) establish(ctx context.Context, res *domain.AuthResult) error {
	if err := s.tokens.Save(ctx, res.Token, s.ttlFor(res.Token)); err != nil {
		s.logger.Error("persist token", zap.String("session_id", s.id), zap.Error(err))
		wrapped := apperrors.NewInternalError(err)
		s.dispatch(authFailed{message: "Unable to keep you signed in. Please try again."})
		return wrapped
	}
	s.dispatch(authSucceeded{user: res.User, token: res.Token})
	return nil
}

func (s *Store) fail(ctx context.Context, err error) {
	s.deleteStored(ctx)
	s.dispatch(authFailed{message: apperrors.DisplayMessage(err)})
}

// Logout clears the session and durable storage without calling the backend.
// The in-memory state is cleared even when storage fails.
func (s *Store) Logout(ctx context.Context) error {
	prev := s.User()
	s.dispatch(sessionReset{})
	err := s.tokens.Delete(ctx)
	if prev != nil {
		s.publish(ctx, events.EventLoggedOut, prev, nil)
	}
	return err
}

// UpdateUser changes the profile. Failures are returned and leave the state untouched.
func (s *Store) UpdateUser(ctx context.Context, update domain.ProfileUpdate) error {
	if !s.State().Authenticated() {
		return ErrNotAuthenticated
	}
	user, err := s.api.UpdateDetails(ctx, update)
	if err != nil {
		return err
	}
	s.dispatch(userUpdated{user: user})
	s.publish(ctx, events.EventProfileUpdated, user, nil)
	return nil
}

// UpdatePassword changes the password. A rotated token replaces the stored one.
func (s *Store) UpdatePassword(ctx context.Context, current, next string) error {
	if !s.State().Authenticated() {
		return ErrNotAuthenticated
	}
	user, token, err := s.api.UpdatePassword(ctx, domain.PasswordChange{CurrentPassword: current, NewPassword: next})
	if err != nil {
		return err
	}
	if token != "" {
		if err := s.tokens.Save(ctx, token, s.ttlFor(token)); err != nil {
			s.logger.Error("persist rotated token", zap.String("session_id", s.id), zap.Error(err))
			return apperrors.NewInternalError(err)
		}
	}
	s.dispatch(userUpdated{user: user, token: token})
	s.publish(ctx, events.EventPasswordChanged, user, nil)
	return nil
}

// HasRole reports whether the signed-in user belongs to required.
func (s *Store) HasRole(required auth.RoleSet) bool {
	return auth.HasRole(s.User(), required)
}

// IsApproved reports whether the signed-in user passed the approval gate.
func (s *Store) IsApproved() bool {
	return auth.IsApproved(s.User())
}

// ClearError drops the last authentication error. It is a no-op when there is none.
func (s *Store) ClearError() {
	s.dispatch(errorCleared{})
}

// handleUnauthorized is the global 401 interceptor for this session.
func (s *Store) handleUnauthorized(token string) {
	ctx := context.Background()
	if prev, ok := s.expire(ctx, token); ok {
		s.publish(ctx, events.EventUnauthorized, prev.User, nil)
	}
}

// expire resets the session and deletes the stored token if token is still the
// current one, so concurrent 401s for the same token clear storage once.
func (s *Store) expire(ctx context.Context, token string) (State, bool) {
	prev, _ := s.transition(tokenRevoked{token: token})
	if token == "" || prev.Token != token {
		return prev, false
	}
	s.deleteStored(ctx)
	return prev, true
}

func (s *Store) deleteStored(ctx context.Context) {
	if err := s.tokens.Delete(ctx); err != nil {
		s.logger.Warn("delete stored token", zap.String("session_id", s.id), zap.Error(err))
	}
}

func (s *Store) ttlFor(token string) time.Duration {
	info, err := auth.InspectToken(token)
	if err != nil || !info.HasExpiry() {
		return s.tokenTTL
	}
	if ttl := info.TTL(s.now(), s.tokenTTL); ttl > 0 {
		return ttl
	}
	return s.tokenTTL
}

func (s *Store) publish(ctx context.Context, eventType events.EventType, user *domain.User, payload interface{}) {
	if err := s.events.Publish(ctx, events.NewEvent(eventType, s.id, user, payload)); err != nil {
		s.logger.Warn("publish session event", zap.String("type", string(eventType)), zap.Error(err))
	}
}

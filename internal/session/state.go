package session

import "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"

// Status is the observable phase of the authentication state machine.
type Status string

const (
	StatusIdle          Status = "idle"
	StatusLoading       Status = "loading"
	StatusAuthenticated Status = "authenticated"
	StatusError         Status = "error"
)

// State is an immutable snapshot of a browser session.
type State struct {
	User    *domain.User `json:"user"`
	Token   string       `json:"-"`
	Loading bool         `json:"loading"`
	Error   string       `json:"error,omitempty"`
}

// Status derives the state machine phase. A state never carries both a user and
// an error.
func (s State) Status() Status {
	switch {
	case s.Loading:
		return StatusLoading
	case s.User != nil:
		return StatusAuthenticated
	case s.Error != "":
		return StatusError
	default:
		return StatusIdle
	}
}

// Authenticated reports whether a user is signed in.
func (s State) Authenticated() bool {
	return s.User != nil && s.Token != ""
}

// clone detaches the user from the store's copy.
func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

type action interface {
	apply(State) State
}

// authStarted enters loading. A non-empty token is mirrored from durable storage.
type authStarted struct {
	token string
}

func (a authStarted) apply(s State) State {
	s.Loading = true
	s.Error = ""
	if a.token != "" {
		s.Token = a.token
	}
	return s
}

type authSucceeded struct {
	user  *domain.User
	token string
}

func (a authSucceeded) apply(State) State {
	return State{User: a.user, Token: a.token}
}

type authFailed struct {
	message string
}

func (a authFailed) apply(State) State {
	return State{Error: a.message}
}

// sessionReset covers logout, 401 responses and a failed "who am I".
type sessionReset struct{}

func (sessionReset) apply(State) State {
	return State{}
}

type userUpdated struct {
	user  *domain.User
	token string
}

func (a userUpdated) apply(s State) State {
	if s.User == nil {
		return s
	}
	s.User = a.user
	if a.token != "" {
		s.Token = a.token
	}
	return s
}

// tokenRevoked resets the session only while token is still the current one.
type tokenRevoked struct {
	token string
}

func (a tokenRevoked) apply(s State) State {
	if a.token == "" || s.Token != a.token {
		return s
	}
	return State{}
}

type errorCleared struct{}

func (errorCleared) apply(s State) State {
	s.Error = ""
	return s
}

func reduce(s State, a action) State {
	return a.apply(s)
}

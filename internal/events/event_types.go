package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// EventType enumerates session lifecycle events.
type EventType string

const (
	EventLoggedIn        EventType = "session_logged_in"
	EventRegistered      EventType = "session_registered"
	EventRestored        EventType = "session_restored"
	EventLoginFailed     EventType = "session_login_failed"
	EventLoggedOut       EventType = "session_logged_out"
	EventUnauthorized    EventType = "session_unauthorized"
	EventProfileUpdated  EventType = "session_profile_updated"
	EventPasswordChanged EventType = "session_password_changed"
)

// Event is published by the session store after a state change.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	SessionID string      `json:"session_id"`
	UserID    string      `json:"user_id,omitempty"`
	Role      domain.Role `json:"role,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload,omitempty"`
}

// NewEvent stamps an event for the given session and user.
func NewEvent(eventType EventType, sessionID string, user *domain.User, payload interface{}) Event {
	ev := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		SessionID: sessionID,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
	if user != nil {
		ev.UserID = user.ID
		ev.Role = user.Role
	}
	return ev
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Email  string `json:"email"`
	Reason string `json:"reason"`
}

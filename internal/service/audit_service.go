package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/events"
)

// AuditService writes session lifecycle events to the audit log.
type AuditService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewAuditService creates the service.
func NewAuditService(dispatcher events.Dispatcher, logger *zap.Logger) *AuditService {
	return &AuditService{
		dispatcher: dispatcher,
		logger:     logger.Named("audit"),
	}
}

// RegisterHandlers subscribes to events.
func (a *AuditService) RegisterHandlers() {
	if a.dispatcher == nil {
		return
	}
	for _, eventType := range []events.EventType{
		events.EventLoggedIn,
		events.EventRegistered,
		events.EventRestored,
		events.EventLoggedOut,
		events.EventProfileUpdated,
		events.EventPasswordChanged,
	} {
		a.dispatcher.Subscribe(eventType, a.handleSessionChange)
	}
	a.dispatcher.Subscribe(events.EventLoginFailed, a.handleLoginFailed)
	a.dispatcher.Subscribe(events.EventUnauthorized, a.handleUnauthorized)
}

func (a *AuditService) handleSessionChange(_ context.Context, event events.Event) error {
	a.logger.Info(string(event.Type), fields(event)...)
	return nil
}

func (a *AuditService) handleLoginFailed(_ context.Context, event events.Event) error {
	fs := fields(event)
	if payload, ok := event.Payload.(events.LoginFailedPayload); ok {
		fs = append(fs, zap.String("email", payload.Email), zap.String("reason", payload.Reason))
	}
	a.logger.Warn(string(event.Type), fs...)
	return nil
}

func (a *AuditService) handleUnauthorized(_ context.Context, event events.Event) error {
	a.logger.Warn(string(event.Type), fields(event)...)
	return nil
}

func fields(event events.Event) []zap.Field {
	return []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("session_id", event.SessionID),
		zap.String("user_id", event.UserID),
		zap.String("role", string(event.Role)),
		zap.Time("at", event.Timestamp),
	}
}

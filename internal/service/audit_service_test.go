package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/events"
)

func TestAuditServiceLogsSessionEvents(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	dispatcher := events.NewInMemoryDispatcher()
	NewAuditService(dispatcher, zap.New(core)).RegisterHandlers()

	user := &domain.User{ID: "u-1", Role: domain.RoleAdmin}
	require.NoError(t, dispatcher.Publish(context.Background(), events.NewEvent(events.EventLoggedIn, "sid", user, nil)))
	require.NoError(t, dispatcher.Publish(context.Background(), events.NewEvent(events.EventLoginFailed, "sid", nil,
		events.LoginFailedPayload{Email: "x@club.org", Reason: "Invalid credentials"})))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "session_logged_in", entries[0].Message)
	assert.Equal(t, "u-1", entries[0].ContextMap()["user_id"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
	assert.Equal(t, "x@club.org", entries[1].ContextMap()["email"])
}

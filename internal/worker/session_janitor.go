package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/service"
)

// Sweeper evicts idle in-memory sessions.
type Sweeper interface {
	Sweep(now time.Time) int
}

// Purger removes expired durable tokens. Stores that expire entries on their
// own do not implement it.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// SessionJanitor periodically sweeps the session registry and purges expired
// tokens from storage.
type SessionJanitor struct {
	sweeper  Sweeper
	purger   Purger
	interval time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewSessionJanitor builds a janitor. purger may be nil.
func NewSessionJanitor(sweeper Sweeper, purger Purger, interval time.Duration, logger *zap.Logger) *SessionJanitor {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionJanitor{
		sweeper:  sweeper,
		purger:   purger,
		interval: interval,
		logger:   logger.Named("janitor"),
		now:      time.Now,
	}
}

// Run ticks until ctx is cancelled.
func (j *SessionJanitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			j.Tick(ctx)
		}
	}
}

// Tick performs one sweep.
func (j *SessionJanitor) Tick(ctx context.Context) {
	if evicted := j.sweeper.Sweep(j.now()); evicted > 0 {
		j.logger.Debug("evicted idle sessions", zap.Int("count", evicted))
	}
	if j.purger == nil {
		return
	}
	purged, err := j.purger.PurgeExpired(ctx)
	if err != nil {
		j.logger.Warn("purge expired tokens", zap.Error(err))
		return
	}
	if purged > 0 {
		j.logger.Debug("purged expired tokens", zap.Int64("count", purged))
	}
}

// StartAuditWorker registers the audit handlers.
func StartAuditWorker(audit *service.AuditService) {
	if audit == nil {
		return
	}
	audit.RegisterHandlers()
}

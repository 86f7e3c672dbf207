package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/tokenstore"
)

// Registry maps browser session ids to their Store. Evicting a store only drops
// the in-memory state; the durable token lets the next request mount it again.
type Registry struct {
	base   *apiclient.Client
	tokens tokenstore.Store
	opts   Options
	idle   time.Duration
	now    func() time.Time

	mu      sync.Mutex
	entries map[string]*entry
}

type entry struct {
	store    *Store
	lastSeen time.Time
	mounted  chan struct{}
}

// NewRegistry creates an empty registry. idle <= 0 disables eviction.
func NewRegistry(base *apiclient.Client, tokens tokenstore.Store, idle time.Duration, opts Options) *Registry {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Registry{
		base:    base,
		tokens:  tokens,
		opts:    opts,
		idle:    idle,
		now:     time.Now,
		entries: map[string]*entry{},
	}
}

// Get returns the store for id, creating and mounting it on first use.
// Concurrent callers for a new id wait for the single mount to finish.
func (r *Registry) Get(ctx context.Context, id string) (*Store, error) {
	r.mu.Lock()
	e, ok := r.entries[id]
	if ok {
		e.lastSeen = r.now()
		r.mu.Unlock()
		select {
		case <-e.mounted:
			return e.store, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	e = &entry{
		store:    NewStore(id, r.base, tokenstore.Bind(r.tokens, id), r.opts),
		lastSeen: r.now(),
		mounted:  make(chan struct{}),
	}
	r.entries[id] = e
	r.mu.Unlock()

	defer close(e.mounted)
	if err := e.store.Mount(ctx); err != nil {
		r.opts.Logger.Debug("session restore failed", zap.String("session_id", id), zap.Error(err))
	}
	return e.store, nil
}

// Forget drops id from memory.
func (r *Registry) Forget(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.entries, id)
}

// Sweep evicts stores idle since before now-idle and returns how many went.
func (r *Registry) Sweep(now time.Time) int {
	if r.idle <= 0 {
		return 0
	}
	cutoff := now.Add(-r.idle)

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, id)
			evicted++
		}
	}
	return evicted
}

// Len returns the number of live stores.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

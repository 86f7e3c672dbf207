// Package views holds the per-page controllers of the portal. Each view owns
// its filter and page state and always re-fetches from the backend after a
// change; nothing is patched locally.
package views

import (
	"context"
	"errors"
	"sync"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	apperrors "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/pkg/util"
)

// ErrClosed is returned by views used after Close.
var ErrClosed = errors.New("view closed")

// Session is what a view needs from the session store.
type Session interface {
	API() *apiclient.Client
	User() *domain.User
}

// FetchFunc loads one page of a collection.
type FetchFunc[T, F any] func(ctx context.Context, filter F, page domain.PageQuery) (domain.Page[T], error)

// Listing is the rendered state of a collection.
type Listing[T, F any] struct {
	Items   []T             `json:"items"`
	Meta    domain.PageMeta `json:"meta"`
	Filter  F               `json:"filter"`
	Loading bool            `json:"loading"`
	Error   string          `json:"error,omitempty"`
}

// Collection is filter and pagination state bound to a view lifetime.
// Responses that arrive after a newer fetch started, or after Close, are dropped.
type Collection[T, F any] struct {
	fetch  FetchFunc[T, F]
	life   context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	filter  F
	page    domain.PageQuery
	gen     uint64
	closed  bool
	loading bool
	result  domain.Page[T]
	err     error
}

// NewCollection binds fetch to a lifetime derived from parent.
func NewCollection[T, F any](parent context.Context, fetch FetchFunc[T, F]) *Collection[T, F] {
	life, cancel := context.WithCancel(parent)
	return &Collection[T, F]{
		fetch:  fetch,
		life:   life,
		cancel: cancel,
		page:   domain.PageQuery{Page: 1, Limit: domain.DefaultLimit},
	}
}

// Filter returns the committed filter.
func (c *Collection[T, F]) Filter() F {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.filter
}

// PageQuery returns the committed page and limit.
func (c *Collection[T, F]) PageQuery() domain.PageQuery {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.page
}

// Show commits filter and page together and fetches once.
func (c *Collection[T, F]) Show(filter F, page domain.PageQuery) error {
	c.mu.Lock()
	c.filter = filter
	c.page = page.Normalize()
	c.mu.Unlock()
	return c.Refresh()
}

// Restore sets state carried over from an earlier request without fetching.
// The next refresh or mutation loads it.
func (c *Collection[T, F]) Restore(filter F, page domain.PageQuery) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter = filter
	c.page = page.Normalize()
}

// SetFilter commits filter, resets to the first page and fetches.
func (c *Collection[T, F]) SetFilter(filter F) error {
	c.mu.Lock()
	c.filter = filter
	c.page.Page = 1
	c.mu.Unlock()
	return c.Refresh()
}

// SetPage moves to page and fetches.
func (c *Collection[T, F]) SetPage(page int) error {
	c.mu.Lock()
	c.page = domain.PageQuery{Page: page, Limit: c.page.Limit}.Normalize()
	c.mu.Unlock()
	return c.Refresh()
}

// ClearFilters drops every filter, resets to the first page and fetches.
func (c *Collection[T, F]) ClearFilters() error {
	var zero F
	return c.SetFilter(zero)
}

// Refresh re-fetches the committed filter and page.
func (c *Collection[T, F]) Refresh() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	c.gen++
	gen := c.gen
	filter, page := c.filter, c.page
	c.loading = true
	c.mu.Unlock()

	result, err := c.fetch(c.life, filter, page)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}
	if gen != c.gen {
		// a newer fetch owns the state
		return err
	}
	c.loading = false
	c.err = err
	if err == nil {
		c.result = result
	}
	return err
}

// Listing returns the current state of the collection.
func (c *Collection[T, F]) Listing() Listing[T, F] {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.result.Items
	if items == nil {
		items = []T{}
	}
	return Listing[T, F]{
		Items:   items,
		Meta:    c.result.Meta(),
		Filter:  c.filter,
		Loading: c.loading,
		Error:   apperrors.DisplayMessage(c.err),
	}
}

// Context is the lifetime every fetch and mutation of the view runs under.
func (c *Collection[T, F]) Context() context.Context {
	return c.life
}

// Close cancels in-flight fetches. Later calls fail with ErrClosed.
func (c *Collection[T, F]) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()
	c.cancel()
}

// mutate runs op under the view lifetime and re-fetches the whole collection on
// success.
func (c *Collection[T, F]) mutate(op func(ctx context.Context) error) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}
	if err := op(c.life); err != nil {
		return err
	}
	return c.Refresh()
}

// FormError reduces a mutation error to the single line shown above a form.
func FormError(err error) string {
	if errors.Is(err, ErrClosed) {
		return ""
	}
	return apperrors.DisplayMessage(err)
}

func allow(user *domain.User, policy auth.RoleSet) error {
	if auth.HasRole(user, policy) {
		return nil
	}
	return apperrors.NewForbidden("not permitted for role")
}

package apiclient

import (
	"context"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// ListEvents fetches one page of events.
func (c *Client) ListEvents(ctx context.Context, filter domain.EventFilter, page domain.PageQuery) (domain.Page[domain.Event], error) {
	var out domain.Page[domain.Event]
	err := c.get(ctx, "/events", page.Values(filter.Query()), &out)
	return out, err
}

// GetEvent fetches one event.
func (c *Client) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	var out dataEnvelope[domain.Event]
	if err := c.get(ctx, idPath("/events", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateEvent schedules a new event.
func (c *Client) CreateEvent(ctx context.Context, in domain.EventInput) (*domain.Event, error) {
	var out dataEnvelope[domain.Event]
	if err := c.post(ctx, "/events", in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateEvent changes an event.
func (c *Client) UpdateEvent(ctx context.Context, id string, in domain.EventInput) (*domain.Event, error) {
	var out dataEnvelope[domain.Event]
	if err := c.put(ctx, idPath("/events", id), in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteEvent removes an event.
func (c *Client) DeleteEvent(ctx context.Context, id string) error {
	return c.delete(ctx, idPath("/events", id))
}

// RegisterForEvent adds the signed-in user to the participants.
func (c *Client) RegisterForEvent(ctx context.Context, id string) error {
	return c.post(ctx, idPath("/events", id, "register"), nil, nil)
}

// SubmitEventFeedback rates an attended event.
func (c *Client) SubmitEventFeedback(ctx context.Context, id string, feedback domain.Feedback) error {
	return c.post(ctx, idPath("/events", id, "feedback"), feedback, nil)
}

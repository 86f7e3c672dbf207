package apiclient

import (
	"context"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// ListUsers fetches one page of accounts.
func (c *Client) ListUsers(ctx context.Context, filter domain.UserFilter, page domain.PageQuery) (domain.Page[domain.User], error) {
	var out domain.Page[domain.User]
	err := c.get(ctx, "/users", page.Values(filter.Query()), &out)
	return out, err
}

// GetUser fetches one account.
func (c *Client) GetUser(ctx context.Context, id string) (*domain.User, error) {
	var out dataEnvelope[domain.User]
	if err := c.get(ctx, idPath("/users", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateUser adds an account.
func (c *Client) CreateUser(ctx context.Context, in domain.UserInput) (*domain.User, error) {
	var out dataEnvelope[domain.User]
	if err := c.post(ctx, "/users", in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateUser edits an account.
func (c *Client) UpdateUser(ctx context.Context, id string, in domain.UserInput) (*domain.User, error) {
	var out dataEnvelope[domain.User]
	if err := c.put(ctx, idPath("/users", id), in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteUser removes an account.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, idPath("/users", id))
}

// ApproveUser lifts the approval gate for an account.
func (c *Client) ApproveUser(ctx context.Context, id string) error {
	return c.put(ctx, idPath("/users", id, "approve"), nil, nil)
}

// RejectUser declines a pending account.
func (c *Client) RejectUser(ctx context.Context, id, reason string) error {
	var body any
	if reason != "" {
		body = map[string]string{"reason": reason}
	}
	return c.put(ctx, idPath("/users", id, "reject"), body, nil)
}

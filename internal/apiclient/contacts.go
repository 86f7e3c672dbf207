package apiclient

import (
	"context"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// SubmitContact sends a public contact form message.
func (c *Client) SubmitContact(ctx context.Context, in domain.ContactInput) error {
	return c.post(ctx, "/contacts", in, nil)
}

// ListContacts fetches one page of contact messages.
func (c *Client) ListContacts(ctx context.Context, filter domain.ContactFilter, page domain.PageQuery) (domain.Page[domain.Contact], error) {
	var out domain.Page[domain.Contact]
	err := c.get(ctx, "/contacts", page.Values(filter.Query()), &out)
	return out, err
}

// MarkContactRead flags a message as handled.
func (c *Client) MarkContactRead(ctx context.Context, id string) error {
	return c.put(ctx, idPath("/contacts", id, "read"), nil, nil)
}

// DeleteContact removes a message.
func (c *Client) DeleteContact(ctx context.Context, id string) error {
	return c.delete(ctx, idPath("/contacts", id))
}

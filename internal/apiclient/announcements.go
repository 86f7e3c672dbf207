package apiclient

import (
	"context"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// ListAnnouncements fetches one page of announcements.
func (c *Client) ListAnnouncements(ctx context.Context, filter domain.AnnouncementFilter, page domain.PageQuery) (domain.Page[domain.Announcement], error) {
	var out domain.Page[domain.Announcement]
	err := c.get(ctx, "/announcements", page.Values(filter.Query()), &out)
	return out, err
}

// GetAnnouncement fetches one announcement with its comments.
func (c *Client) GetAnnouncement(ctx context.Context, id string) (*domain.Announcement, error) {
	var out dataEnvelope[domain.Announcement]
	if err := c.get(ctx, idPath("/announcements", id), nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// CreateAnnouncement publishes an announcement.
func (c *Client) CreateAnnouncement(ctx context.Context, in domain.AnnouncementInput) (*domain.Announcement, error) {
	var out dataEnvelope[domain.Announcement]
	if err := c.post(ctx, "/announcements", in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateAnnouncement edits an announcement.
func (c *Client) UpdateAnnouncement(ctx context.Context, id string, in domain.AnnouncementInput) (*domain.Announcement, error) {
	var out dataEnvelope[domain.Announcement]
	if err := c.put(ctx, idPath("/announcements", id), in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteAnnouncement removes an announcement.
func (c *Client) DeleteAnnouncement(ctx context.Context, id string) error {
	return c.delete(ctx, idPath("/announcements", id))
}

// LikeAnnouncement toggles the signed-in user's like.
func (c *Client) LikeAnnouncement(ctx context.Context, id string) error {
	return c.post(ctx, idPath("/announcements", id, "like"), nil, nil)
}

// CommentOnAnnouncement appends a comment.
func (c *Client) CommentOnAnnouncement(ctx context.Context, id, text string) error {
	return c.post(ctx, idPath("/announcements", id, "comments"), map[string]string{"text": text}, nil)
}

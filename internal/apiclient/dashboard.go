package apiclient

import (
	"context"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// ListBranches fetches every club branch.
func (c *Client) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	var out domain.Page[domain.Branch]
	query := domain.PageQuery{Page: 1, Limit: domain.MaxLimit}.Values(nil)
	if err := c.get(ctx, "/branches", query, &out); err != nil {
		return nil, err
	}
	return out.Items, nil
}

// DashboardStats fetches the admin aggregates.
func (c *Client) DashboardStats(ctx context.Context) (*domain.DashboardStats, error) {
	var out dataEnvelope[domain.DashboardStats]
	if err := c.get(ctx, "/dashboard/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DashboardActivities fetches the recent activity feed.
func (c *Client) DashboardActivities(ctx context.Context) ([]domain.Activity, error) {
	var out dataEnvelope[[]domain.Activity]
	if err := c.get(ctx, "/dashboard/activities", nil, &out); err != nil {
		return nil, err
	}
	return out.Data, nil
}

// DashboardPersonal fetches the signed-in member's own summary.
func (c *Client) DashboardPersonal(ctx context.Context) (*domain.PersonalDashboard, error) {
	var out dataEnvelope[domain.PersonalDashboard]
	if err := c.get(ctx, "/dashboard/personal", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

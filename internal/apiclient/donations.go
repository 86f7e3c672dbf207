package apiclient

import (
	"context"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// ListDonations fetches one page of donations.
func (c *Client) ListDonations(ctx context.Context, filter domain.DonationFilter, page domain.PageQuery) (domain.Page[domain.Donation], error) {
	var out domain.Page[domain.Donation]
	err := c.get(ctx, "/donations", page.Values(filter.Query()), &out)
	return out, err
}

// CreateDonation records a donation.
func (c *Client) CreateDonation(ctx context.Context, in domain.DonationInput) (*domain.Donation, error) {
	var out dataEnvelope[domain.Donation]
	if err := c.post(ctx, "/donations", in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// UpdateDonation edits a donation.
func (c *Client) UpdateDonation(ctx context.Context, id string, in domain.DonationInput) (*domain.Donation, error) {
	var out dataEnvelope[domain.Donation]
	if err := c.put(ctx, idPath("/donations", id), in, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

// DeleteDonation removes a donation.
func (c *Client) DeleteDonation(ctx context.Context, id string) error {
	return c.delete(ctx, idPath("/donations", id))
}

// VerifyDonation marks a donation as verified.
func (c *Client) VerifyDonation(ctx context.Context, id string) error {
	return c.put(ctx, idPath("/donations", id, "verify"), nil, nil)
}

// DonationStats fetches the donation aggregates.
func (c *Client) DonationStats(ctx context.Context) (*domain.DonationStats, error) {
	var out dataEnvelope[domain.DonationStats]
	if err := c.get(ctx, "/donations/stats", nil, &out); err != nil {
		return nil, err
	}
	return &out.Data, nil
}

package views

import (
	"context"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// DonationCapabilities are the donation controls the viewer may use.
type DonationCapabilities struct {
	Record bool `json:"record"`
	Edit   bool `json:"edit"`
	Verify bool `json:"verify"`
	Delete bool `json:"delete"`
	Stats  bool `json:"stats"`
}

// Donations is the donation tracking controller.
type Donations struct {
	*Collection[domain.Donation, domain.DonationFilter]
	api    *apiclient.Client
	viewer *domain.User
}

// NewDonations binds a donations view to ctx.
func NewDonations(ctx context.Context, sess Session) *Donations {
	api := sess.API()
	return &Donations{
		Collection: NewCollection[domain.Donation, domain.DonationFilter](ctx, api.ListDonations),
		api:        api,
		viewer:     sess.User(),
	}
}

// Capabilities derives the viewer's controls from the shared policies.
func (v *Donations) Capabilities() DonationCapabilities {
	staff := auth.HasRole(v.viewer, auth.StaffRoles)
	return DonationCapabilities{
		Record: staff,
		Edit:   staff,
		Verify: staff,
		Delete: auth.HasRole(v.viewer, auth.AdminOnly),
		Stats:  staff,
	}
}

// Stats loads the donation aggregates.
func (v *Donations) Stats() (*domain.DonationStats, error) {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return nil, err
	}
	return v.api.DonationStats(v.Context())
}

// Create records a donation.
func (v *Donations) Create(in domain.DonationInput) error {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		_, err := v.api.CreateDonation(ctx, in)
		return err
	})
}

// Update edits a donation.
func (v *Donations) Update(id string, in domain.DonationInput) error {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		_, err := v.api.UpdateDonation(ctx, id, in)
		return err
	})
}

// Verify marks a donation verified.
func (v *Donations) Verify(id string) error {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		return v.api.VerifyDonation(ctx, id)
	})
}

// Delete removes a donation.
func (v *Donations) Delete(id string) error {
	if err := allow(v.viewer, auth.AdminOnly); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		return v.api.DeleteDonation(ctx, id)
	})
}

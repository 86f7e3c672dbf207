package views

import (
	"context"
	"strings"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// UserCapabilities are the member management controls the viewer may use.
type UserCapabilities struct {
	Create  bool `json:"create"`
	Edit    bool `json:"edit"`
	Delete  bool `json:"delete"`
	Approve bool `json:"approve"`
}

// Users is the member management controller.
type Users struct {
	*Collection[domain.User, domain.UserFilter]
	api    *apiclient.Client
	viewer *domain.User
}

// NewUsers binds a users view to ctx.
func NewUsers(ctx context.Context, sess Session) *Users {
	api := sess.API()
	return &Users{
		Collection: NewCollection[domain.User, domain.UserFilter](ctx, api.ListUsers),
		api:        api,
		viewer:     sess.User(),
	}
}

// Capabilities derives the viewer's controls from the shared policies.
func (v *Users) Capabilities() UserCapabilities {
	admin := auth.HasRole(v.viewer, auth.AdminOnly)
	return UserCapabilities{
		Create:  admin,
		Edit:    admin,
		Delete:  admin,
		Approve: auth.HasRole(v.viewer, auth.StaffRoles),
	}
}

// Get loads one account.
func (v *Users) Get(id string) (*domain.User, error) {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return nil, err
	}
	return v.api.GetUser(v.Context(), id)
}

// Create adds an account.
func (v *Users) Create(in domain.UserInput) error {
	if err := allow(v.viewer, auth.AdminOnly); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		_, err := v.api.CreateUser(ctx, in)
		return err
	})
}

// Update edits an account.
func (v *Users) Update(id string, in domain.UserInput) error {
	if err := allow(v.viewer, auth.AdminOnly); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		_, err := v.api.UpdateUser(ctx, id, in)
		return err
	})
}

// Delete removes an account.
func (v *Users) Delete(id string) error {
	if err := allow(v.viewer, auth.AdminOnly); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		return v.api.DeleteUser(ctx, id)
	})
}

// Approve lifts the approval gate for an account.
func (v *Users) Approve(id string) error {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		return v.api.ApproveUser(ctx, id)
	})
}

// Reject declines an account with an optional reason.
func (v *Users) Reject(id, reason string) error {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		return v.api.RejectUser(ctx, id, strings.TrimSpace(reason))
	})
}

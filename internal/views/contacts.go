package views

import (
	"context"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// Contacts is the inbox of the public contact form.
type Contacts struct {
	*Collection[domain.Contact, domain.ContactFilter]
	api    *apiclient.Client
	viewer *domain.User
}

// NewContacts binds a contacts view to ctx.
func NewContacts(ctx context.Context, sess Session) *Contacts {
	api := sess.API()
	return &Contacts{
		Collection: NewCollection[domain.Contact, domain.ContactFilter](ctx, api.ListContacts),
		api:        api,
		viewer:     sess.User(),
	}
}

// MarkRead flags a message as read.
func (v *Contacts) MarkRead(id string) error {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		return v.api.MarkContactRead(ctx, id)
	})
}

// Delete removes a message.
func (v *Contacts) Delete(id string) error {
	if err := allow(v.viewer, auth.AdminOnly); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		return v.api.DeleteContact(ctx, id)
	})
}

// SubmitContact posts the public contact form. It needs no session.
func SubmitContact(ctx context.Context, api *apiclient.Client, in domain.ContactInput) error {
	return api.SubmitContact(ctx, in)
}

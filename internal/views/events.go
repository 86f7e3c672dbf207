package views

import (
	"context"
	"strings"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	apperrors "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/pkg/util"
)

// EventCapabilities are the controls the viewer may use on the events pages.
type EventCapabilities struct {
	Manage   bool `json:"manage"`
	Register bool `json:"register"`
}

// EventDetail is a single event as shown to the viewer.
type EventDetail struct {
	domain.Event
	Registered  bool `json:"registered"`
	Full        bool `json:"full"`
	CanRegister bool `json:"canRegister"`
}

// Events is the events list and detail controller.
type Events struct {
	*Collection[domain.Event, domain.EventFilter]
	api    *apiclient.Client
	viewer *domain.User
}

// NewEvents binds an events view to ctx.
func NewEvents(ctx context.Context, sess Session) *Events {
	api := sess.API()
	return &Events{
		Collection: NewCollection[domain.Event, domain.EventFilter](ctx, api.ListEvents),
		api:        api,
		viewer:     sess.User(),
	}
}

// Capabilities derives the viewer's controls from the shared policies.
func (v *Events) Capabilities() EventCapabilities {
	return EventCapabilities{
		Manage:   auth.HasRole(v.viewer, auth.StaffRoles),
		Register: auth.HasRole(v.viewer, auth.AnyMember) && auth.IsApproved(v.viewer),
	}
}

// Get loads one event.
func (v *Events) Get(id string) (*EventDetail, error) {
	ev, err := v.api.GetEvent(v.Context(), id)
	if err != nil {
		return nil, err
	}
	detail := &EventDetail{Event: *ev, Full: ev.IsFull()}
	if v.viewer != nil {
		detail.Registered = ev.HasParticipant(v.viewer.ID)
	}
	detail.CanRegister = v.Capabilities().Register && !detail.Registered && !detail.Full && ev.Status == domain.EventUpcoming
	return detail, nil
}

// Create adds an event.
func (v *Events) Create(in domain.EventInput) error {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		_, err := v.api.CreateEvent(ctx, in)
		return err
	})
}

// Update changes an event.
func (v *Events) Update(id string, in domain.EventInput) error {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		_, err := v.api.UpdateEvent(ctx, id, in)
		return err
	})
}

// Delete removes an event.
func (v *Events) Delete(id string) error {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		return v.api.DeleteEvent(ctx, id)
	})
}

// Register signs the viewer up for an event.
func (v *Events) Register(id string) error {
	if err := allow(v.viewer, auth.AnyMember); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		return v.api.RegisterForEvent(ctx, id)
	})
}

// SubmitFeedback rates an attended event from 1 to 5.
func (v *Events) SubmitFeedback(id string, fb domain.Feedback) error {
	if fb.Rating < 1 || fb.Rating > 5 {
		return apperrors.NewValidationError("Validation failed", []apperrors.FieldError{
			{Field: "rating", Message: "Rating must be between 1 and 5"},
		})
	}
	fb.Comment = strings.TrimSpace(fb.Comment)
	return v.mutate(func(ctx context.Context) error {
		return v.api.SubmitEventFeedback(ctx, id, fb)
	})
}

package views

import (
	"bytes"
	"context"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/apiclient"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	apperrors "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/pkg/util"
)

// markdown renders announcement bodies. Raw HTML in the source is dropped.
var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify, extension.Strikethrough))

// RenderedAnnouncement is an announcement with its body rendered for display.
type RenderedAnnouncement struct {
	domain.Announcement
	HTML         string `json:"html"`
	LikeCount    int    `json:"likeCount"`
	LikedByMe    bool   `json:"likedByMe"`
	CommentCount int    `json:"commentCount"`
}

// Announcements is the announcements board controller.
type Announcements struct {
	*Collection[domain.Announcement, domain.AnnouncementFilter]
	api    *apiclient.Client
	viewer *domain.User
}

// NewAnnouncements binds an announcements view to ctx.
func NewAnnouncements(ctx context.Context, sess Session) *Announcements {
	api := sess.API()
	return &Announcements{
		Collection: NewCollection[domain.Announcement, domain.AnnouncementFilter](ctx, api.ListAnnouncements),
		api:        api,
		viewer:     sess.User(),
	}
}

// CanManage reports whether the viewer may create, edit or delete.
func (v *Announcements) CanManage() bool {
	return auth.HasRole(v.viewer, auth.StaffRoles)
}

// Rendered returns the current page with bodies rendered.
func (v *Announcements) Rendered() (Listing[RenderedAnnouncement, domain.AnnouncementFilter], error) {
	listing := v.Listing()
	out := Listing[RenderedAnnouncement, domain.AnnouncementFilter]{
		Items:   make([]RenderedAnnouncement, 0, len(listing.Items)),
		Meta:    listing.Meta,
		Filter:  listing.Filter,
		Loading: listing.Loading,
		Error:   listing.Error,
	}
	for _, a := range listing.Items {
		rendered, err := v.render(a)
		if err != nil {
			return out, err
		}
		out.Items = append(out.Items, rendered)
	}
	return out, nil
}

func (v *Announcements) render(a domain.Announcement) (RenderedAnnouncement, error) {
	html, err := RenderMarkdown(a.Content)
	if err != nil {
		return RenderedAnnouncement{}, err
	}
	r := RenderedAnnouncement{
		Announcement: a,
		HTML:         html,
		LikeCount:    len(a.Likes),
		CommentCount: len(a.Comments),
	}
	if v.viewer != nil {
		r.LikedByMe = a.LikedBy(v.viewer.ID)
	}
	return r, nil
}

// RenderMarkdown converts an announcement body to HTML.
func RenderMarkdown(source string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(source), &buf); err != nil {
		return "", apperrors.NewInternalError(err)
	}
	return buf.String(), nil
}

// Create posts an announcement.
func (v *Announcements) Create(in domain.AnnouncementInput) error {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		_, err := v.api.CreateAnnouncement(ctx, in)
		return err
	})
}

// Update edits an announcement.
func (v *Announcements) Update(id string, in domain.AnnouncementInput) error {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		_, err := v.api.UpdateAnnouncement(ctx, id, in)
		return err
	})
}

// Delete removes an announcement.
func (v *Announcements) Delete(id string) error {
	if err := allow(v.viewer, auth.StaffRoles); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		return v.api.DeleteAnnouncement(ctx, id)
	})
}

// ToggleLike likes or unlikes; the backend decides which.
func (v *Announcements) ToggleLike(id string) error {
	if err := allow(v.viewer, auth.AnyMember); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		return v.api.LikeAnnouncement(ctx, id)
	})
}

// Comment adds a reply.
func (v *Announcements) Comment(id, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return apperrors.NewValidationError("Validation failed", []apperrors.FieldError{
			{Field: "text", Message: "Comment text is required"},
		})
	}
	if err := allow(v.viewer, auth.AnyMember); err != nil {
		return err
	}
	return v.mutate(func(ctx context.Context) error {
		return v.api.CommentOnAnnouncement(ctx, id, text)
	})
}

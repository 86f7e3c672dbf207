package apiclient

import (
	"context"
	"errors"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	apperrors "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/pkg/util"
)

var errMissingUser = apperrors.NewBadGateway(
	"The server sent an incomplete response. Please try again.",
	errors.New("backend response carried no user"),
)

type userEnvelope struct {
	User  *domain.User `json:"user"`
	Token string       `json:"token,omitempty"`
}

// Login exchanges credentials for a token and the signed-in user.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (*domain.AuthResult, error) {
	var out domain.AuthResult
	if err := c.post(ctx, "/auth/login", creds, &out); err != nil {
		return nil, err
	}
	if out.User == nil || out.Token == "" {
		return nil, errMissingUser
	}
	return &out, nil
}

// Register creates an account and signs it in.
func (c *Client) Register(ctx context.Context, profile domain.RegistrationProfile) (*domain.AuthResult, error) {
	var out domain.AuthResult
	if err := c.post(ctx, "/auth/register", profile, &out); err != nil {
		return nil, err
	}
	if out.User == nil || out.Token == "" {
		return nil, errMissingUser
	}
	return &out, nil
}

// Me returns the user owning the current token.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out userEnvelope
	if err := c.get(ctx, "/auth/me", nil, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, errMissingUser
	}
	return out.User, nil
}

// UpdateDetails changes the signed-in user's profile.
func (c *Client) UpdateDetails(ctx context.Context, update domain.ProfileUpdate) (*domain.User, error) {
	var out userEnvelope
	if err := c.put(ctx, "/auth/updatedetails", update, &out); err != nil {
		return nil, err
	}
	if out.User == nil {
		return nil, errMissingUser
	}
	return out.User, nil
}

// UpdatePassword changes the signed-in user's password. The backend may rotate
// the token; the new one is returned when present.
func (c *Client) UpdatePassword(ctx context.Context, change domain.PasswordChange) (*domain.User, string, error) {
	var out userEnvelope
	if err := c.put(ctx, "/auth/updatepassword", change, &out); err != nil {
		return nil, "", err
	}
	if out.User == nil {
		return nil, "", errMissingUser
	}
	return out.User, out.Token, nil
}

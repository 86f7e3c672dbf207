// Package guard decides whether a page may render for the current session.
package guard

import (
	"net/url"
	"strings"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/auth"
	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/session"
)

// Outcome is the result of a guard decision.
type Outcome string

const (
	OutcomeLoading         Outcome = "loading"
	OutcomeRedirect        Outcome = "redirect"
	OutcomeAccessDenied    Outcome = "access_denied"
	OutcomePendingApproval Outcome = "pending_approval"
	OutcomeAllow           Outcome = "allow"
)

const (
	// LoginPath is where unauthenticated visitors are sent.
	LoginPath = "/login"
	// HomePath is the landing page after login when no return path is known.
	HomePath = "/dashboard"
	// ReturnParam carries the attempted path through the login page.
	ReturnParam = "redirect"
)

// Decision is what the guard tells the caller to do.
type Decision struct {
	Outcome    Outcome
	RedirectTo string
}

// Decide evaluates state against required. The checks run in a fixed order:
// loading, then authentication, then role, then approval. An empty required set
// admits any signed-in user.
func Decide(state session.State, required auth.RoleSet, path string) Decision {
	if state.Loading {
		return Decision{Outcome: OutcomeLoading}
	}
	user := state.User
	if user == nil {
		return Decision{Outcome: OutcomeRedirect, RedirectTo: LoginRedirect(path)}
	}
	if !required.Empty() && !auth.HasRole(user, required) {
		return Decision{Outcome: OutcomeAccessDenied}
	}
	if auth.RequiresApproval(user.Role) && !auth.IsApproved(user) {
		return Decision{Outcome: OutcomePendingApproval}
	}
	return Decision{Outcome: OutcomeAllow}
}

// LoginRedirect builds the login URL that returns to path afterwards.
func LoginRedirect(path string) string {
	return LoginPath + "?" + url.Values{ReturnParam: {SafeReturnPath(path)}}.Encode()
}

// SafeReturnPath accepts only local absolute paths and falls back to HomePath.
// Scheme-relative and backslash forms are rejected.
func SafeReturnPath(raw string) string {
	if raw == "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") || strings.Contains(raw, "\\") {
		return HomePath
	}
	u, err := url.Parse(raw)
	if err != nil || u.IsAbs() || u.Host != "" {
		return HomePath
	}
	if u.Path == LoginPath {
		return HomePath
	}
	return raw
}

package auth

import (
	"sort"
	"strings"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// RoleSet is an immutable set of roles a caller must belong to.
type RoleSet struct {
	roles map[domain.Role]struct{}
}

// Roles builds a RoleSet from the given roles.
func Roles(roles ...domain.Role) RoleSet {
	set := make(map[domain.Role]struct{}, len(roles))
	for _, role := range roles {
		set[role] = struct{}{}
	}
	return RoleSet{roles: set}
}

// Contains reports whether role is a member of the set.
func (s RoleSet) Contains(role domain.Role) bool {
	_, ok := s.roles[role]
	return ok
}

// Empty reports whether the set names no roles. An empty requirement admits any
// authenticated user.
func (s RoleSet) Empty() bool {
	return len(s.roles) == 0
}

// List returns the roles in a stable order.
func (s RoleSet) List() []domain.Role {
	out := make([]domain.Role, 0, len(s.roles))
	for role := range s.roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func (s RoleSet) String() string {
	names := make([]string, 0, len(s.roles))
	for _, role := range s.List() {
		names = append(names, string(role))
	}
	return strings.Join(names, ",")
}

// Access policies shared by route guards and view capabilities.
var (
	AnyMember  = Roles(domain.AllRoles...)
	StaffRoles = Roles(domain.RoleAdmin, domain.RoleOfficer)
	AdminOnly  = Roles(domain.RoleAdmin)
)

// HasRole reports whether user belongs to required. A nil user never does.
func HasRole(user *domain.User, required RoleSet) bool {
	if user == nil {
		return false
	}
	return required.Contains(user.Role)
}

// IsApproved reports whether user passed the approval gate. Admins and officers
// are always approved; everyone else carries the backend flag.
func IsApproved(user *domain.User) bool {
	if user == nil {
		return false
	}
	if StaffRoles.Contains(user.Role) {
		return true
	}
	return user.IsApproved
}

// RequiresApproval reports whether the approval gate applies to role at all.
func RequiresApproval(role domain.Role) bool {
	return role == domain.RoleMember || role == domain.RoleVolunteer
}

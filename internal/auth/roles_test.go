package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

func TestIsApprovedAlwaysTrueForStaff(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleAdmin, domain.RoleOfficer} {
		for _, flag := range []bool{true, false} {
			user := &domain.User{Role: role, IsApproved: flag}
			assert.True(t, IsApproved(user), "role=%s isApproved=%v", role, flag)
		}
	}
}

func TestIsApprovedFollowsFlagForOtherRoles(t *testing.T) {
	for _, role := range []domain.Role{domain.RoleMember, domain.RoleVolunteer, domain.RoleVisitor} {
		assert.True(t, IsApproved(&domain.User{Role: role, IsApproved: true}))
		assert.False(t, IsApproved(&domain.User{Role: role, IsApproved: false}))
	}
	assert.False(t, IsApproved(nil))
}

func TestHasRoleStaffSet(t *testing.T) {
	for _, role := range domain.AllRoles {
		want := role == domain.RoleAdmin || role == domain.RoleOfficer
		assert.Equal(t, want, HasRole(&domain.User{Role: role}, StaffRoles), "role=%s", role)
	}
	assert.False(t, HasRole(nil, StaffRoles))
	assert.False(t, HasRole(nil, AnyMember))
}

func TestHasRoleSingleRole(t *testing.T) {
	assert.True(t, HasRole(&domain.User{Role: domain.RoleAdmin}, Roles(domain.RoleAdmin)))
	assert.False(t, HasRole(&domain.User{Role: domain.RoleOfficer}, AdminOnly))
}

func TestRoleSetString(t *testing.T) {
	assert.Equal(t, "admin,officer", StaffRoles.String())
	assert.True(t, Roles().Empty())
	assert.False(t, AdminOnly.Empty())
}

func TestRequiresApproval(t *testing.T) {
	assert.True(t, RequiresApproval(domain.RoleMember))
	assert.True(t, RequiresApproval(domain.RoleVolunteer))
	assert.False(t, RequiresApproval(domain.RoleVisitor))
	assert.False(t, RequiresApproval(domain.RoleAdmin))
}

package domain

import "time"

// Role is one of the fixed club access levels.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleOfficer   Role = "officer"
	RoleMember    Role = "member"
	RoleVolunteer Role = "volunteer"
	RoleVisitor   Role = "visitor"
)

// AllRoles lists every role in privilege order.
var AllRoles = []Role{RoleAdmin, RoleOfficer, RoleMember, RoleVolunteer, RoleVisitor}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	for _, known := range AllRoles {
		if r == known {
			return true
		}
	}
	return false
}

// BloodType values accepted by the registration form.
var BloodTypes = []string{"A+", "A-", "B+", "B-", "AB+", "AB-", "O+", "O-"}

// User is a club account as returned by the backend. Fields are never derived locally.
type User struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"firstName"`
	LastName   string    `json:"lastName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	Role       Role      `json:"role"`
	IsApproved bool      `json:"isApproved"`
	IsActive   bool      `json:"isActive"`
	Branch     string    `json:"branch,omitempty"`
	BloodType  string    `json:"bloodType,omitempty"`
	StudentID  string    `json:"studentId,omitempty"`
	Department string    `json:"department,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
}

// FullName joins first and last name.
func (u User) FullName() string {
	switch {
	case u.FirstName == "":
		return u.LastName
	case u.LastName == "":
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// UserRef is the compact author/donor reference embedded in other resources.
type UserRef struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Email     string `json:"email,omitempty"`
}

// UserFilter narrows the users collection.
type UserFilter struct {
	Role     Role   `json:"role,omitempty"`
	Approval string `json:"approval,omitempty"` // "approved", "pending" or empty
	Branch   string `json:"branch,omitempty"`
	Search   string `json:"search,omitempty"`
}

// Query renders the filter as backend query parameters.
func (f UserFilter) Query() map[string]string {
	q := map[string]string{}
	setIf(q, "role", string(f.Role))
	switch f.Approval {
	case "approved":
		q["isApproved"] = "true"
	case "pending":
		q["isApproved"] = "false"
	}
	setIf(q, "branch", f.Branch)
	setIf(q, "search", f.Search)
	return q
}

// UserInput is the admin create/update payload.
type UserInput struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	Password   string `json:"password,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Role       Role   `json:"role,omitempty"`
	Branch     string `json:"branch,omitempty"`
	BloodType  string `json:"bloodType,omitempty"`
	StudentID  string `json:"studentId,omitempty"`
	Department string `json:"department,omitempty"`
	IsActive   *bool  `json:"isActive,omitempty"`
}

func setIf(q map[string]string, key, val string) {
	if val != "" {
		q[key] = val
	}
}

package domain

// Credentials are submitted to POST /auth/login.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegistrationProfile is the full payload of POST /auth/register.
type RegistrationProfile struct {
	FirstName  string `json:"firstName"`
	LastName   string `json:"lastName"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	Phone      string `json:"phone,omitempty"`
	Branch     string `json:"branch,omitempty"`
	BloodType  string `json:"bloodType,omitempty"`
	StudentID  string `json:"studentId,omitempty"`
	Department string `json:"department,omitempty"`
	Role       Role   `json:"role,omitempty"`
}

// ProfileUpdate is the partial payload of PUT /auth/updatedetails.
type ProfileUpdate struct {
	FirstName  string `json:"firstName,omitempty"`
	LastName   string `json:"lastName,omitempty"`
	Email      string `json:"email,omitempty"`
	Phone      string `json:"phone,omitempty"`
	Branch     string `json:"branch,omitempty"`
	BloodType  string `json:"bloodType,omitempty"`
	Department string `json:"department,omitempty"`
}

// PasswordChange is the payload of PUT /auth/updatepassword.
type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// AuthResult is returned by login and register.
type AuthResult struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}

package dto

import (
	"strings"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// LoginRequest payload for POST /login.
type LoginRequest struct {
	Email      string `json:"email" form:"email" validate:"required,email"`
	Password   string `json:"password" form:"password" validate:"required"`
	RememberMe bool   `json:"rememberMe" form:"rememberMe"`
	Redirect   string `json:"redirect" form:"redirect"`
}

// RegisterRequest payload for POST /register.
type RegisterRequest struct {
	FirstName       string      `json:"firstName" form:"firstName" validate:"notblank,max=50"`
	LastName        string      `json:"lastName" form:"lastName" validate:"notblank,max=50"`
	Email           string      `json:"email" form:"email" validate:"required,email"`
	Password        string      `json:"password" form:"password" validate:"required,min=6"`
	ConfirmPassword string      `json:"confirmPassword" form:"confirmPassword" validate:"required,eqfield=Password"`
	Phone           string      `json:"phone" form:"phone" validate:"omitempty,max=20"`
	Branch          string      `json:"branch" form:"branch"`
	BloodType       string      `json:"bloodType" form:"bloodType" validate:"blood_type"`
	StudentID       string      `json:"studentId" form:"studentId"`
	Department      string      `json:"department" form:"department"`
	Role            domain.Role `json:"role" form:"role" validate:"omitempty,oneof=member volunteer"`
}

// Profile converts the form into the backend payload.
func (r RegisterRequest) Profile() domain.RegistrationProfile {
	return domain.RegistrationProfile{
		FirstName:  strings.TrimSpace(r.FirstName),
		LastName:   strings.TrimSpace(r.LastName),
		Email:      strings.TrimSpace(strings.ToLower(r.Email)),
		Password:   r.Password,
		Phone:      strings.TrimSpace(r.Phone),
		Branch:     r.Branch,
		BloodType:  r.BloodType,
		StudentID:  strings.TrimSpace(r.StudentID),
		Department: strings.TrimSpace(r.Department),
		Role:       r.Role,
	}
}

// ProfileRequest payload for PUT /me.
type ProfileRequest struct {
	FirstName  string `json:"firstName" validate:"omitempty,max=50"`
	LastName   string `json:"lastName" validate:"omitempty,max=50"`
	Email      string `json:"email" validate:"omitempty,email"`
	Phone      string `json:"phone" validate:"omitempty,max=20"`
	Branch     string `json:"branch"`
	BloodType  string `json:"bloodType" validate:"blood_type"`
	Department string `json:"department"`
}

// Update converts the form into the backend payload.
func (r ProfileRequest) Update() domain.ProfileUpdate {
	return domain.ProfileUpdate{
		FirstName:  strings.TrimSpace(r.FirstName),
		LastName:   strings.TrimSpace(r.LastName),
		Email:      strings.TrimSpace(r.Email),
		Phone:      strings.TrimSpace(r.Phone),
		Branch:     r.Branch,
		BloodType:  r.BloodType,
		Department: strings.TrimSpace(r.Department),
	}
}

// PasswordRequest payload for PUT /me/password.
type PasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6,nefield=CurrentPassword"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=NewPassword"`
}

// SessionResponse is the view model of the signed-in session.
type SessionResponse struct {
	User     *domain.User `json:"user"`
	Approved bool         `json:"approved"`
	Redirect string       `json:"redirect,omitempty"`
}

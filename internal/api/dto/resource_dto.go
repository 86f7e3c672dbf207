package dto

import (
	"strings"
	"time"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
)

// EventRequest payload for creating or editing an event.
type EventRequest struct {
	Title           string             `json:"title" validate:"notblank,max=120"`
	Description     string             `json:"description" validate:"max=5000"`
	Type            domain.EventType   `json:"type" validate:"required,oneof=blood_donation first_aid_training awareness_campaign disaster_response fundraising community_service meeting other"`
	Status          domain.EventStatus `json:"status" validate:"omitempty,oneof=upcoming ongoing completed cancelled"`
	StartDate       *time.Time         `json:"startDate" validate:"required"`
	EndDate         *time.Time         `json:"endDate"`
	Location        string             `json:"location" validate:"max=200"`
	Branch          string             `json:"branch"`
	MaxParticipants int                `json:"maxParticipants" validate:"min=0"`
}

// Input converts the form into the backend payload.
func (r EventRequest) Input() domain.EventInput {
	return domain.EventInput{
		Title:           strings.TrimSpace(r.Title),
		Description:     strings.TrimSpace(r.Description),
		Type:            r.Type,
		Status:          r.Status,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		Location:        strings.TrimSpace(r.Location),
		Branch:          r.Branch,
		MaxParticipants: r.MaxParticipants,
	}
}

// FeedbackRequest payload for rating an event.
type FeedbackRequest struct {
	Rating  int    `json:"rating" validate:"min=1,max=5"`
	Comment string `json:"comment" validate:"max=1000"`
}

// AnnouncementRequest payload for posting an announcement.
type AnnouncementRequest struct {
	Title       string `json:"title" validate:"notblank,max=200"`
	Content     string `json:"content" validate:"notblank"`
	Category    string `json:"category" validate:"omitempty,oneof=general event emergency training meeting"`
	Priority    string `json:"priority" validate:"omitempty,oneof=low medium high urgent"`
	IsPublished *bool  `json:"isPublished"`
}

// Input converts the form into the backend payload.
func (r AnnouncementRequest) Input() domain.AnnouncementInput {
	return domain.AnnouncementInput{
		Title:       strings.TrimSpace(r.Title),
		Content:     r.Content,
		Category:    r.Category,
		Priority:    r.Priority,
		IsPublished: r.IsPublished,
	}
}

// CommentRequest payload for replying to an announcement.
type CommentRequest struct {
	Text string `json:"text" validate:"notblank,max=1000"`
}

// DonationRequest payload for recording a donation.
type DonationRequest struct {
	Donor        string                `json:"donor"`
	DonorName    string                `json:"donorName" validate:"max=100"`
	Type         domain.DonationType   `json:"type" validate:"required,oneof=blood money material"`
	Amount       float64               `json:"amount" validate:"min=0"`
	Quantity     int                   `json:"quantity" validate:"min=0"`
	Description  string                `json:"description" validate:"max=1000"`
	Status       domain.DonationStatus `json:"status" validate:"omitempty,oneof=pending verified rejected"`
	Branch       string                `json:"branch"`
	DonationDate *time.Time            `json:"donationDate"`
}

// Input converts the form into the backend payload.
func (r DonationRequest) Input() domain.DonationInput {
	return domain.DonationInput{
		Donor:        r.Donor,
		DonorName:    strings.TrimSpace(r.DonorName),
		Type:         r.Type,
		Amount:       r.Amount,
		Quantity:     r.Quantity,
		Description:  strings.TrimSpace(r.Description),
		Status:       r.Status,
		Branch:       r.Branch,
		DonationDate: r.DonationDate,
	}
}

// UserRequest payload for the admin user editor. Password is only required on create.
type UserRequest struct {
	FirstName  string      `json:"firstName" validate:"omitempty,max=50"`
	LastName   string      `json:"lastName" validate:"omitempty,max=50"`
	Email      string      `json:"email" validate:"omitempty,email"`
	Password   string      `json:"password" validate:"omitempty,min=6"`
	Phone      string      `json:"phone" validate:"omitempty,max=20"`
	Role       domain.Role `json:"role" validate:"club_role"`
	Branch     string      `json:"branch"`
	BloodType  string      `json:"bloodType" validate:"blood_type"`
	StudentID  string      `json:"studentId"`
	Department string      `json:"department"`
	IsActive   *bool       `json:"isActive"`
}

// NewUserRequest wraps UserRequest with the fields a new account needs.
type NewUserRequest struct {
	UserRequest
	FirstName string `json:"firstName" validate:"notblank"`
	LastName  string `json:"lastName" validate:"notblank"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
}

// Input converts the form into the backend payload.
func (r UserRequest) Input() domain.UserInput {
	return domain.UserInput{
		FirstName:  strings.TrimSpace(r.FirstName),
		LastName:   strings.TrimSpace(r.LastName),
		Email:      strings.TrimSpace(strings.ToLower(r.Email)),
		Password:   r.Password,
		Phone:      strings.TrimSpace(r.Phone),
		Role:       r.Role,
		Branch:     r.Branch,
		BloodType:  r.BloodType,
		StudentID:  strings.TrimSpace(r.StudentID),
		Department: strings.TrimSpace(r.Department),
		IsActive:   r.IsActive,
	}
}

// Input merges the required fields over the optional ones.
func (r NewUserRequest) Input() domain.UserInput {
	in := r.UserRequest
	in.FirstName, in.LastName, in.Email, in.Password = r.FirstName, r.LastName, r.Email, r.Password
	return in.Input()
}

// RejectRequest payload for declining an account.
type RejectRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// ContactRequest payload for the public contact form.
type ContactRequest struct {
	Name    string `json:"name" form:"name" validate:"notblank,max=100"`
	Email   string `json:"email" form:"email" validate:"required,email"`
	Subject string `json:"subject" form:"subject" validate:"notblank,max=200"`
	Message string `json:"message" form:"message" validate:"notblank,max=5000"`
}

// Input converts the form into the backend payload.
func (r ContactRequest) Input() domain.ContactInput {
	return domain.ContactInput{
		Name:    strings.TrimSpace(r.Name),
		Email:   strings.TrimSpace(r.Email),
		Subject: strings.TrimSpace(r.Subject),
		Message: strings.TrimSpace(r.Message),
	}
}

package dto

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	apperrors "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/pkg/util"
)

func fieldsOf(t *testing.T, err error) map[string]string {
	t.Helper()
	var domainErr *apperrors.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, apperrors.CodeValidationFailed, domainErr.Code)
	out := map[string]string{}
	for _, f := range domainErr.Fields {
		out[f.Field] = f.Message
	}
	return out
}

func TestCheckUsesJSONNamesAndTranslations(t *testing.T) {
	fields := fieldsOf(t, Check(RegisterRequest{FirstName: "  ", Email: "abebe@club.org", Password: "secret1", ConfirmPassword: "secret1"}))

	assert.Equal(t, "firstName cannot be blank", fields["firstName"])
	assert.Equal(t, "lastName cannot be blank", fields["lastName"])
	assert.NotContains(t, fields, "email")
}

func TestCheckRejectsMismatchedConfirmation(t *testing.T) {
	fields := fieldsOf(t, Check(RegisterRequest{
		FirstName: "Abebe", LastName: "Kebede", Email: "abebe@club.org",
		Password: "secret1", ConfirmPassword: "secret2",
	}))

	assert.Contains(t, fields, "confirmPassword")
}

func TestCheckCustomTags(t *testing.T) {
	fields := fieldsOf(t, Check(UserRequest{Role: "chairman", BloodType: "Z"}))

	assert.Equal(t, "role must be a club role", fields["role"])
	assert.Equal(t, "bloodType must be a blood type such as O+", fields["bloodType"])
}

func TestCheckAcceptsValidForms(t *testing.T) {
	start := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

	assert.NoError(t, Check(ContactRequest{Name: "Hana", Email: "hana@example.com", Subject: "Volunteering", Message: "How can I join?"}))
	assert.NoError(t, Check(EventRequest{Title: "Blood drive", Type: domain.EventBloodDonation, StartDate: &start}))
	assert.NoError(t, Check(LoginRequest{Email: "admin@club.org", Password: "x"}))
}

func TestFeedbackRatingRange(t *testing.T) {
	assert.Contains(t, fieldsOf(t, Check(FeedbackRequest{Rating: 0})), "rating")
	assert.Contains(t, fieldsOf(t, Check(FeedbackRequest{Rating: 6})), "rating")
	assert.NoError(t, Check(FeedbackRequest{Rating: 5}))
}

func TestNewUserRequestRequiresIdentity(t *testing.T) {
	fields := fieldsOf(t, Check(NewUserRequest{UserRequest: UserRequest{Role: domain.RoleMember}}))
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "password")

	in := NewUserRequest{
		UserRequest: UserRequest{Role: domain.RoleVolunteer},
		FirstName:   "Sara", LastName: "Tesfaye", Email: "Sara@Club.org", Password: "secret1",
	}.Input()
	assert.Equal(t, "sara@club.org", in.Email)
	assert.Equal(t, domain.RoleVolunteer, in.Role)
}

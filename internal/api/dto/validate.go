package dto

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/internal/domain"
	apperrors "github.com/Nadh116/Haramaya-University-Red-Cross-Club-Management-System-sub000/pkg/util"
)

var (
	validate   *validator.Validate
	translator ut.Translator

	// custom validation tags
	notBlankTag  = "notblank"
	roleTag      = "club_role"
	bloodTypeTag = "blood_type"
)

func init() {
	validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// report JSON names, the same names the backend uses in its error list
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlank)
	_ = validate.RegisterValidation(roleTag, clubRole)
	_ = validate.RegisterValidation(bloodTypeTag, bloodType)

	registerCustomTranslations(map[string]string{
		notBlankTag:  "{0} cannot be blank",
		roleTag:      "{0} must be a club role",
		bloodTypeTag: "{0} must be a blood type such as O+",
	})
}

func registerCustomTranslations(texts map[string]string) {
	for tag, text := range texts {
		text := text
		_ = validate.RegisterTranslation(tag, translator,
			func(trans ut.Translator) error { return trans.Add(tag, text, true) },
			func(trans ut.Translator, fe validator.FieldError) string {
				msg, _ := trans.T(fe.Tag(), fe.Field())
				return msg
			})
	}
}

// Check validates a form and converts failures into the backend's
// {field, message} list so both sources render the same way.
func Check(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return apperrors.NewValidationError("Validation failed", nil)
	}
	fields := make([]apperrors.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: fe.Translate(translator)})
	}
	return apperrors.NewValidationError("Validation failed", fields)
}

// Custom Validators

func notBlank(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func clubRole(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	return val == "" || domain.Role(val).Valid()
}

func bloodType(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	for _, bt := range domain.BloodTypes {
		if bt == val {
			return true
		}
	}
	return false
}

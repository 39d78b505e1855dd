package register

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"quickchat/internal/domain"
)

// Validation failures, in the order they are checked.
var (
	ErrIncompleteForm   = errors.New("please fill in all fields")
	ErrInvalidName      = errors.New("full name must be at least 2 characters and contain no numbers")
	ErrInvalidEmail     = errors.New("please enter a valid email address")
	ErrInvalidPhone     = errors.New("phone number must be exactly 10 digits")
	ErrWeakPassword     = errors.New("password must be at least 6 characters long")
	ErrPasswordMismatch = errors.New("password and confirm password must match")
)

// Custom validation tags used on domain.RegistrationForm.
const (
	TagNoDigits   = "nodigits"
	TagLooseEmail = "looseemail"
	TagTenDigits  = "tendigits"
)

var (
	digitRegex      = regexp.MustCompile(`\d`)
	looseEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	tenDigitsRegex  = regexp.MustCompile(`^[0-9]{10}$`)
)

// userMessages are the texts shown for each validation failure.
var userMessages = map[error]string{
	ErrIncompleteForm:   "Please fill in all fields",
	ErrInvalidName:      "Full Name must be at least 2 characters and contain no numbers",
	ErrInvalidEmail:     "Please enter a valid email address",
	ErrInvalidPhone:     "Phone number must be exactly 10 digits",
	ErrWeakPassword:     "Password must be at least 6 characters long",
	ErrPasswordMismatch: "Password and Confirm Password must match",
}

// fieldErrors maps a form field to the error its non-required rules raise.
// The slice order is the check order.
var fieldErrors = []struct {
	field string
	err   error
}{
	{"FullName", ErrInvalidName},
	{"Email", ErrInvalidEmail},
	{"Phone", ErrInvalidPhone},
	{"Password", ErrWeakPassword},
	{"ConfirmPassword", ErrPasswordMismatch},
}

// Validator checks registration forms.
type Validator struct {
	validate *validator.Validate
}

// NewValidator returns a Validator with the form's custom rules registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation(TagNoDigits, func(fl validator.FieldLevel) bool {
		return !digitRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation(TagLooseEmail, func(fl validator.FieldLevel) bool {
		return looseEmailRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation(TagTenDigits, func(fl validator.FieldLevel) bool {
		return tenDigitsRegex.MatchString(fl.Field().String())
	})
	return &Validator{validate: v}
}

// Validate returns the first failing check, or nil. Presence of every field,
// the picked image included, is checked before any format rule.
func (v *Validator) Validate(form domain.RegistrationForm) error {
	if form.ProfileImage.IsZero() {
		return ErrIncompleteForm
	}
	err := v.validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	failed := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		failed[fe.StructField()] = fe.Tag()
		if fe.Tag() == "required" {
			return ErrIncompleteForm
		}
	}
	for _, fe := range fieldErrors {
		if _, ok := failed[fe.field]; ok {
			return fe.err
		}
	}
	return err
}

// UserMessage returns the text to show for a validation error.
func UserMessage(err error) string {
	for e, msg := range userMessages {
		if errors.Is(err, e) {
			return msg
		}
	}
	return domain.GenericFailureMessage
}

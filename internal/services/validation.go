package services

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/template-settings-api/internal/errors"
)

// NonFieldErrors is the key for errors that concern the request as a whole.
const NonFieldErrors = "non_field_errors"

const (
	MsgRequired     = "This field is required."
	MsgInvalidEmail = "Enter a valid email address."
	MsgInvalidURL   = "Enter a valid URL."
	MsgInvalidPhone = "Phone number must be entered in the format: '+999999999'. Up to 15 digits allowed."
	MsgBlank        = "This field may not be blank."
)

var phonePattern = regexp.MustCompile(`^\+?1?\d{9,15}$`)

var validate = validator.New()

// ValidPhoneNumber reports whether s is an accepted phone number.
func ValidPhoneNumber(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidEmail reports whether s is a well formed email address.
func ValidEmail(s string) bool {
	return validate.Var(s, "required,email") == nil
}

// ValidURL reports whether s is an absolute URL.
func ValidURL(s string) bool {
	return validate.Var(s, "required,url") == nil
}

// checkRequired records MsgBlank when the trimmed value is empty.
func checkRequired(verr *ValidationError, field, value string) bool {
	if value == "" {
		verr.Add(field, MsgBlank)
		return false
	}
	return true
}

// checkMaxLength records a length error when value has more than max characters.
func checkMaxLength(verr *ValidationError, field, value string, max int) {
	if utf8.RuneCountInString(value) > max {
		verr.Add(field, fmt.Sprintf("Ensure this field has no more than %d characters.", max))
	}
}

// ValidationError carries per-field messages for a rejected request.
type ValidationError struct {
	Message string
	Fields  apierrors.FieldErrors
}

func newValidationError(message string) *ValidationError {
	return &ValidationError{
		Message: message,
		Fields:  apierrors.FieldErrors{},
	}
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return e.Message + ": " + strings.Join(keys, ", ")
}

// Add records a message for field.
func (e *ValidationError) Add(field, message string) {
	e.Fields.Add(field, message)
}

// HasErrors reports whether any field failed.
func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

// orNil returns e as an error only when it holds messages.
func (e *ValidationError) orNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	apierrors "github.com/yukikurage/template-settings-api/internal/errors"
	"github.com/yukikurage/template-settings-api/internal/services"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding rules, makes validation
// errors report JSON field names and keeps JSON numbers as json.Number.
// Safe to call more than once.
func RegisterValidators() {
	registerOnce.Do(func() {
		binding.EnableDecoderUseNumber = true

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}

		v.RegisterTagNameFunc(func(field reflect.StructField) string {
			name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return field.Name
			}
			return name
		})

		_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
			return services.ValidPhoneNumber(fl.Field().String())
		})
	})
}

// bindJSON binds the request body into req. On failure it writes a 400 with
// per-field messages and returns false.
func bindJSON(c *gin.Context, req interface{}, message string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		apierrors.BadRequestWithDetails(c, message, bindingErrors(err))
		return false
	}
	return true
}

func bindingErrors(err error) apierrors.FieldErrors {
	fields := apierrors.FieldErrors{}

	var validationErrs validator.ValidationErrors
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError

	switch {
	case errors.As(err, &validationErrs):
		for _, fe := range validationErrs {
			fields.Add(fe.Field(), fieldMessage(fe))
		}
	case errors.As(err, &typeErr):
		field := typeErr.Field
		if field == "" {
			field = services.NonFieldErrors
		}
		fields.Add(field, fmt.Sprintf("Incorrect type. Expected %s.", typeErr.Type.Kind()))
	case errors.As(err, &syntaxErr):
		fields.Add(services.NonFieldErrors, "JSON parse error.")
	case errors.Is(err, io.EOF):
		fields.Add(services.NonFieldErrors, "No data provided.")
	default:
		fields.Add(services.NonFieldErrors, "Invalid request body.")
	}

	return fields
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return services.MsgRequired
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "email":
		return services.MsgInvalidEmail
	case "url":
		return services.MsgInvalidURL
	case "phone":
		return services.MsgInvalidPhone
	default:
		return "Invalid value."
	}
}

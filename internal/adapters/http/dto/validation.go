package dto

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// ErrBinding indicates the request could not be bound.
var ErrBinding = errors.New("binding failed")

// Validator returns the shared validator. Error fields use JSON tag names.
var Validator = sync.OnceValue(func() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}

		return name
	})

	return v
})

// BindAndValidate binds the JSON body into v and validates it.
func BindAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validator().Struct(v)
}

// BindQueryAndValidate binds query parameters into v and validates it.
func BindQueryAndValidate(c *gin.Context, v any) error {
	if err := c.ShouldBindQuery(v); err != nil {
		return fmt.Errorf("%w: %w", ErrBinding, err)
	}

	return Validator().Struct(v)
}

// ValidationErrors extracts field-level messages from a validator error.
// Returns nil when err carries none.
func ValidationErrors(err error) map[string]string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil
	}

	fieldErrors := make(map[string]string, len(validationErrs))
	for _, fe := range validationErrs {
		fieldErrors[fe.Field()] = validationMessage(fe)
	}

	return fieldErrors
}

// RespondBindingError writes the 400 response for a BindAndValidate or
// BindQueryAndValidate failure.
func RespondBindingError(c *gin.Context, err error) {
	if details := ValidationErrors(err); details != nil {
		c.AbortWithStatusJSON(HTTPStatusFromCode(ErrorCodeValidation),
			NewErrorResponseWithDetails(ErrorCodeValidation, "request validation failed", details).
				WithTraceID(GetTraceID(c)))

		return
	}

	AbortWithErrorCode(c, ErrorCodeBadRequest, err.Error())
}

var validationMessages = map[string]string{
	"required": "this field is required",
	"oneof":    "must be one of: {param}",
}

func validationMessage(fe validator.FieldError) string {
	switch tag := fe.Tag(); tag {
	case "min", "max":
		suffix := ""
		if fe.Kind() == reflect.String {
			suffix = " characters"
		}

		bound := "at least"
		if tag == "max" {
			bound = "at most"
		}

		return "must be " + bound + " " + fe.Param() + suffix
	default:
		if msg, ok := validationMessages[tag]; ok {
			return strings.ReplaceAll(msg, "{param}", fe.Param())
		}

		return "failed validation: " + tag
	}
}

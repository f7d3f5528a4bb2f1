package dto

import (
	"errors"
	"log/slog"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotebox/internal/domain"
	"github.com/jsamuelsen/quotebox/internal/platform/logging"
)

// internalMessage hides the cause of unexpected errors from clients.
const internalMessage = "an internal error occurred"

// MapDomainError maps a domain error to an error code and a response.
// message replaces err's text when not empty, so a handler can return the
// notification the widget showed. Unknown errors map to INTERNAL_ERROR.
func MapDomainError(err error, message string) (string, *ErrorResponse) {
	code := ErrorCodeInternal

	switch {
	case domain.IsValidation(err):
		code = ErrorCodeValidation
	case domain.IsInvalidFormat(err):
		code = ErrorCodeInvalidFormat
	case domain.IsParseFailure(err):
		code = ErrorCodeParseFailure
	case domain.IsUnavailable(err):
		code = ErrorCodeUnavailable
	case domain.IsNotFound(err):
		code = ErrorCodeNotFound
	}

	switch {
	case code == ErrorCodeInternal:
		message = internalMessage
	case message == "":
		message = err.Error()
	}

	resp := NewErrorResponse(code, message)

	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) && validationErr.Field != "" {
		resp.Error.Details = map[string]string{validationErr.Field: validationErr.Message}
	}

	return code, resp
}

// HandleError writes the error response for err and aborts the chain.
func HandleError(c *gin.Context, err error) {
	HandleErrorMessage(c, err, "")
}

// HandleErrorMessage is HandleError with a client-facing message override.
func HandleErrorMessage(c *gin.Context, err error, message string) {
	code, resp := MapDomainError(err, message)
	resp.TraceID = GetTraceID(c)

	status := HTTPStatusFromCode(code)
	if status >= 500 {
		logging.FromContext(c.Request.Context()).ErrorContext(c.Request.Context(), "request failed",
			slog.Any("error", err),
			slog.String("code", code),
		)
	}

	c.AbortWithStatusJSON(status, resp)
}

// AbortWithErrorCode aborts the chain with a specific error code.
// Use this for adapter-level failures that have no domain error.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// GetTraceID returns the active trace ID, or "" when the request is untraced.
func GetTraceID(c *gin.Context) string {
	if c.Request == nil {
		return ""
	}

	sc := trace.SpanContextFromContext(c.Request.Context())
	if !sc.HasTraceID() {
		return ""
	}

	return sc.TraceID().String()
}

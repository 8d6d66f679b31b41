package helpers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApiError is a request-level failure that maps to a specific HTTP status.
// Services return these; handlers hand them to RespondError at the boundary.
type ApiError struct {
	Status  int
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewValidationError(msg string) *ApiError {
	return &ApiError{Status: http.StatusBadRequest, Message: msg}
}

func NewUnauthenticatedError(msg string) *ApiError {
	return &ApiError{Status: http.StatusUnauthorized, Message: msg}
}

func NewForbiddenError(msg string) *ApiError {
	return &ApiError{Status: http.StatusForbidden, Message: msg}
}

func NewNotFoundError(msg string) *ApiError {
	return &ApiError{Status: http.StatusNotFound, Message: msg}
}

// NewPolicyError covers well-formed requests blocked by a business rule,
// e.g. the booking cancellation window. Same status as validation failures
// but kept separate so callers can phrase the message for the user.
func NewPolicyError(msg string) *ApiError {
	return &ApiError{Status: http.StatusBadRequest, Message: msg}
}

// RespondError maps an error to the JSON envelope. Typed ApiErrors surface
// their own message; anything else is a 500 with a generic message, with
// the underlying error attached to the gin context for the request logger.
func RespondError(c *gin.Context, err error) {
	var apiErr *ApiError
	if errors.As(err, &apiErr) {
		c.JSON(apiErr.Status, ErrorResponse(apiErr.Message))
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, ErrorResponse("internal server error"))
}

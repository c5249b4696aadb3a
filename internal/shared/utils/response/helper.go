package response

import (
	"errors"
	"net/http"

	"tourboard/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError maps a service error onto the right HTTP status. Validation
// errors get 4xx and should not be retried; persistence failures get 500
// and may be retried by the caller.
func RespondError(c *gin.Context, err error) {
	code := http.StatusInternalServerError

	switch {
	case errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, gorm.ErrRecordNotFound):
		code = http.StatusNotFound
	case errors.Is(err, apperrors.ErrUnauthorized):
		code = http.StatusForbidden
	case errors.Is(err, apperrors.ErrInvalidTransition),
		errors.Is(err, apperrors.ErrRequestNotActive),
		errors.Is(err, apperrors.ErrHoldLimitExceeded):
		code = http.StatusConflict
	case errors.Is(err, apperrors.ErrDateOutOfWindow),
		errors.Is(err, apperrors.ErrDateUnavailable),
		errors.Is(err, apperrors.ErrInvalidCapacity),
		errors.Is(err, apperrors.ErrInvalidWindow):
		code = http.StatusUnprocessableEntity
	}

	var details interface{}
	var pe *apperrors.PersistenceError
	if errors.As(err, &pe) {
		details = gin.H{"completed_steps": pe.Completed, "retryable": true}
	}

	// Internal failures carry driver and query details that must not reach
	// the client. Validation errors are safe to echo back.
	message := err.Error()
	if code == http.StatusInternalServerError {
		message = "internal server error"
	}

	RespondJSON(c, "error", code, message, nil, details)
}

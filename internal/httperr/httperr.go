package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// WriteDomain maps a BusinessError to its HTTP status. Store and other
// unexpected failures fall through as a generic 500 so clients can tell
// "bad request" apart from "system unavailable".
func WriteDomain(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c, "internal_error", "Something went wrong.")
		return
	}

	switch be.Kind {
	case KindNotFound:
		NotFound(c, be.Code, "Resource not found.")
	case KindConflict:
		Conflict(c, be.Code, "Requested slot is not available.")
	case KindAlreadyCancelled:
		Conflict(c, be.Code, "Appointment is already cancelled.")
	case KindValidation:
		BadRequest(c, be.Code, "Invalid request.")
	default:
		Internal(c, "internal_error", "Something went wrong.")
	}
}

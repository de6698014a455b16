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

func BadRequestJSON(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func Internal(c *gin.Context) {
	Write(c, http.StatusInternalServerError, "internal_error", "Something went wrong.")
}

// Handle writes err as the proper HTTP response. Business errors map to
// 4xx by kind; anything else becomes an opaque 500 so storage details
// never leak to the client.
func Handle(c *gin.Context, err error) {
	var be BusinessError
	if !errors.As(err, &be) {
		Internal(c)
		return
	}

	status := http.StatusBadRequest
	switch be.Kind {
	case KindValidation:
		status = http.StatusUnprocessableEntity
	case KindSlotConflict, KindInvalidState:
		status = http.StatusConflict
	case KindNotFound:
		status = http.StatusNotFound
	case KindBadRequest:
		status = http.StatusBadRequest
	}

	Write(c, status, be.Code, be.Message)
}

package errorsx

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// BadRequestError maps to 400 when handled.
type BadRequestError struct {
	Err error
}

func NewBadRequestError(err error) error {
	return &BadRequestError{Err: err}
}

func (e *BadRequestError) Error() string {
	return e.Err.Error()
}

func (e *BadRequestError) Unwrap() error {
	return e.Err
}

// UnauthorizedError maps to 401 when handled.
type UnauthorizedError struct {
	Err error
}

func NewUnauthorizedError(err error) error {
	return &UnauthorizedError{Err: err}
}

func (e *UnauthorizedError) Error() string {
	return e.Err.Error()
}

func (e *UnauthorizedError) Unwrap() error {
	return e.Err
}

// LockedError maps to 423 when handled.
type LockedError struct {
	Err error
}

func NewLockedError(err error) error {
	return &LockedError{Err: err}
}

func (e *LockedError) Error() string {
	return e.Err.Error()
}

func (e *LockedError) Unwrap() error {
	return e.Err
}

// HandleError writes the response for a service-layer error. Untyped
// errors become a 500 with a generic message so internals never leak.
func HandleError(c *gin.Context, err error) {
	var badRequest *BadRequestError
	var unauthorized *UnauthorizedError
	var locked *LockedError

	switch {
	case errors.As(err, &badRequest):
		c.JSON(http.StatusBadRequest, gin.H{"data": nil, "message": badRequest.Error()})
	case errors.As(err, &unauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"data": nil, "message": unauthorized.Error()})
	case errors.As(err, &locked):
		c.JSON(http.StatusLocked, gin.H{"data": nil, "message": locked.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"data": nil, "message": "something went wrong"})
	}
}

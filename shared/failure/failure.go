package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
// Key is the client-facing message key used by alert headers, when one applies.
type Failure struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Key     string `json:"key,omitempty"`
}

var InvalidSortParam = &Failure{Code: http.StatusBadRequest, Message: "invalid sort parameter"}
var InvalidIDParam = &Failure{Code: http.StatusBadRequest, Message: "invalid id parameter"}

// ErrLocationBuild marks a resource location that could not be built from a freshly assigned id.
var ErrLocationBuild = errors.New("failed to build resource location")

const keyIDExists = "idexists"

// Error returns the error code and message in a formatted string.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: msg,
	}
}

// IDExists is returned when a create request already carries an identifier.
func IDExists(entityName string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf("A new %s cannot already have an ID", entityName),
		Key:     keyIDExists,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(message string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Message: message,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKey returns the message key of an error interface, or an empty string.
func GetKey(err error) string {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Key
	}

	return ""
}

// IsIDExists reports whether err is the failure returned by IDExists.
func IsIDExists(err error) bool {
	return GetKey(err) == keyIDExists
}

package refapi

import (
	"fmt"
	"net/http"
)

// StatusSuccess is the status marker the reference API returns on success.
const StatusSuccess = http.StatusOK

// Error is a failure reported by the reference API. Two errors match under
// errors.Is when their statuses are equal.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("refapi: status %d", e.Status)
	}
	return fmt.Sprintf("refapi: status %d: %s", e.Status, e.Message)
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Status == e.Status
}

var (
	ErrNotFound     = &Error{Status: http.StatusNotFound, Message: "not found"}
	ErrStaleVersion = &Error{Status: http.StatusConflict, Message: "record was changed by someone else"}
	ErrInvalid      = &Error{Status: http.StatusUnprocessableEntity, Message: "invalid payload"}
)

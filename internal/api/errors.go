package api

import (
	"errors"
	"net/http"
)

// Error is a request failure with a fixed HTTP status. The constructors below
// cover the taxonomy the routes share; remote-service errors are mapped by
// WriteError instead.
type Error struct {
	Status  int
	Message string
	Detail  any
}

func (e *Error) Error() string { return e.Message }

// NewValidationError is a 400: required input missing or malformed.
func NewValidationError(message string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: message}
}

// NewNotFoundError is a 404: natural-key resolution found no record.
func NewNotFoundError(message string) *Error {
	return &Error{Status: http.StatusNotFound, Message: message}
}

// statusCoder is implemented by downstream errors that carry their own HTTP
// status, such as the mailing service's API errors.
type statusCoder interface {
	HTTPStatus() int
}

// detailer optionally supplies a structured detail payload for the body.
type detailer interface {
	Detail() any
}

// WriteError converts err to the {error, detail} body with the right status:
// typed gateway errors keep their status, downstream errors that carry a
// status propagate it, and everything else (remote envelope errors, transport
// failures) is a 500.
func WriteError(w http.ResponseWriter, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		WriteJSON(w, apiErr.Status, ErrorBody{Message: apiErr.Message, Detail: apiErr.Detail})
		return
	}

	status := http.StatusInternalServerError
	var sc statusCoder
	if errors.As(err, &sc) {
		status = sc.HTTPStatus()
	}

	body := ErrorBody{Message: err.Error()}
	var d detailer
	if errors.As(err, &d) {
		body.Detail = d.Detail()
	}
	WriteJSON(w, status, body)
}

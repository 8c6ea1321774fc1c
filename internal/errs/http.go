package errs

import (
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FieldError describes a single rejected input field.
//
// Example:
//
//	{ "field": "name", "error": "\"name\" is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// HTTPError is the error type returned by services and handlers.
//
// It implements error, and the global error handler turns it into a
// response: Status becomes the status line and Message the plain-text body.
// Errors carries per-field detail for validation failures.
type HTTPError struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Status  int          `json:"status"`
	Errors  []FieldError `json:"errors,omitempty"`
}

// Error returns the client-facing message.
func (e *HTTPError) Error() string {
	return e.Message
}

// NewNotFoundError creates a 404 Not Found HTTPError.
func NewNotFoundError(message string) *HTTPError {
	return &HTTPError{
		// http.StatusText(404) => "Not Found" => "NOT_FOUND"
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound)),
		Message: message,
		Status:  http.StatusNotFound,
	}
}

// NewCourseNotFoundError builds the 404 returned for an unknown course id.
// rawID is the id exactly as it appeared in the request path.
func NewCourseNotFoundError(rawID string) *HTTPError {
	return NewNotFoundError(fmt.Sprintf("The course with the given ID=%s was not found.", rawID))
}

// NewBadRequestError creates a 400 Bad Request HTTPError.
//
// fieldErrors is optional and is typically filled in by the validation
// package when a payload fails its rules.
func NewBadRequestError(message string, fieldErrors []FieldError) *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest)),
		Message: message,
		Status:  http.StatusBadRequest,
		Errors:  fieldErrors,
	}
}

// NewInternalServerError creates a 500 Internal Server Error HTTPError.
//
// The message is always the generic status text; the real cause is logged,
// never sent to the client.
func NewInternalServerError() *HTTPError {
	return &HTTPError{
		Code:    MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message: http.StatusText(http.StatusInternalServerError),
		Status:  http.StatusInternalServerError,
	}
}

// MakeUpperCaseWithUnderscores converts "Bad Request" into "BAD_REQUEST".
// A Caser keeps state, so each call gets its own.
func MakeUpperCaseWithUnderscores(str string) string {
	return cases.Upper(language.English).String(strings.Join(strings.Fields(str), "_"))
}

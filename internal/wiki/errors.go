package wiki

import (
	"errors"
	"fmt"
)

// Wiki client errors.
var (
	// ErrInvalidEndpoint is returned when the API endpoint is not an absolute http(s) URL.
	ErrInvalidEndpoint = errors.New("invalid API endpoint: expected an absolute http or https URL")

	// ErrRequestFailed is returned when the HTTP round trip fails or the
	// server answers with a non-2xx status.
	ErrRequestFailed = errors.New("wiki API request failed")

	// ErrLoginFailed is returned when the wiki rejects the credentials.
	ErrLoginFailed = errors.New("wiki login failed")

	// ErrEditConflict is matched by an APIError with code "editconflict":
	// the page changed between reading it and saving the edit.
	ErrEditConflict = errors.New("edit conflict")

	// ErrEditRejected is returned when the edit call succeeds at the HTTP
	// level but the wiki does not report success (e.g. a captcha or an
	// abuse filter).
	ErrEditRejected = errors.New("edit was not accepted")

	// ErrMissingToken is returned when the wiki does not hand out a token.
	ErrMissingToken = errors.New("wiki returned no token")
)

// codeEditConflict is the API error code for a conflicting edit.
const codeEditConflict = "editconflict"

// APIError is an error reported by the MediaWiki API in the "error" member
// of a response.
type APIError struct {
	// Code is the machine-readable error code, e.g. "editconflict".
	Code string `json:"code"`

	// Info is the human-readable description.
	Info string `json:"info"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("wiki API error %s: %s", e.Code, e.Info)
}

// Is lets errors.Is match ErrEditConflict for edit conflict responses.
func (e *APIError) Is(target error) bool {
	return target == ErrEditConflict && e.Code == codeEditConflict
}

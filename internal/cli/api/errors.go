package api

import "fmt"

// The dispatcher classifies every failed call into exactly one of the error
// types below and always returns the error to the caller after its side
// effects. Nothing is retried and nothing is swallowed at this layer.

// AuthExpiredError reports a 401 from any endpoint. By the time the caller
// sees it the stored session has already been torn down.
type AuthExpiredError struct {
	URL    string
	Method string
}

func (e *AuthExpiredError) Error() string {
	return fmt.Sprintf("authentication expired (status 401) on %s %s", e.Method, e.URL)
}

// ServerError reports a non-401 error status. Body is kept verbatim so
// callers can surface endpoint-specific messages (duplicate names,
// permission denials).
type ServerError struct {
	Status int
	Body   []byte
	URL    string
	Method string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (status %d) on %s %s: %s", e.Status, e.Method, e.URL, e.Body)
}

// NetworkError reports that no response was received at all.
type NetworkError struct {
	URL    string
	Method string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error on %s %s: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// SetupError reports that the request could not be constructed and was never
// sent.
type SetupError struct {
	Err error
}

func (e *SetupError) Error() string {
	return fmt.Sprintf("request setup error: %v", e.Err)
}

func (e *SetupError) Unwrap() error {
	return e.Err
}

// UploadValidationError reports an invalid upload before any network call is
// made.
type UploadValidationError struct {
	Reason string
}

func (e *UploadValidationError) Error() string {
	return "upload validation failed: " + e.Reason
}

package domain

import "errors"

var (
	// ErrNotFound is returned by a KeyValueStore when a key is absent
	ErrNotFound = errors.New("not found")

	// ErrPersistenceLoad marks unreadable or corrupt local storage
	ErrPersistenceLoad = errors.New("failed to load persisted state")

	ErrSessionNotFound = errors.New("session not found")

	// ErrNothingToSend is returned when a send has neither text nor attachment
	ErrNothingToSend = errors.New("nothing to send")

	// ErrSendInFlight is returned when a send is issued while another is pending
	ErrSendInFlight = errors.New("a message is already being sent")

	ErrUnsupportedFormat = errors.New("please upload a Word document (.docx)")
	ErrParseFailure      = errors.New("unable to read the file content, make sure the document is not corrupted")

	ErrMissingCredential    = errors.New("Missing API Key. Please configure it in Settings.")
	ErrAuthenticationFailed = errors.New("Authentication failed (401). Please check your API Key.")
	ErrEndpointNotFound     = errors.New("Model or Endpoint not found (404). Check your Model Name and Base URL.")
	ErrTransport            = errors.New("transport or provider error")
)

// GenericSendFailure is shown when a send fails without a usable description
const GenericSendFailure = "Sorry, something went wrong while contacting the server. Please try again later."

// CompletionError is a human-readable failure of a completion call. Kind is
// one of ErrAuthenticationFailed, ErrEndpointNotFound or ErrTransport.
type CompletionError struct {
	Kind    error
	Message string
}

func (e *CompletionError) Error() string {
	return "request failed: " + e.Message
}

func (e *CompletionError) Unwrap() error {
	return e.Kind
}

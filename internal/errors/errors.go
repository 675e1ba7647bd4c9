package errors

import "errors"

// This package defines the sentinel errors for the application. Services
// return these (usually wrapped with %w and a detail message) so the API
// layer can map them to HTTP status codes with errors.Is, without coupling
// business logic to transport concerns.

var (
	// ErrNotFound signifies that a requested resource could not be located.
	// Mapped to 404 Not Found.
	ErrNotFound = errors.New("resource not found")

	// ErrValidation signifies that a file or request failed a pre-flight
	// check: unsupported type, over the per-file or aggregate size limit,
	// over the file-count limit, or a malformed request body.
	// Mapped to 400 Bad Request.
	ErrValidation = errors.New("validation failed")

	// ErrStorage signifies a durable-store I/O or schema failure. The
	// attempted mutation is not retried automatically.
	// Mapped to 500 Internal Server Error.
	ErrStorage = errors.New("storage failure")

	// ErrGateway signifies a network failure or non-2xx response from the
	// model gateway. The turn that triggered it is abandoned; prior
	// persisted state is untouched and the user may resend.
	// Mapped to 502 Bad Gateway.
	ErrGateway = errors.New("gateway failure")

	// ErrInternal signifies an unexpected server-side error. Used to avoid
	// leaking implementation details to the client.
	// Mapped to 500 Internal Server Error.
	ErrInternal = errors.New("internal server error")
)

package errors

import "errors"

var (
	// ErrUserNotFound is returned when no account matches the given id.
	ErrUserNotFound = errors.New("user not found")
	// ErrUserAlreadyExists is returned when an account with the email exists.
	ErrUserAlreadyExists = errors.New("user already exists")
)

// ErrorItem is a single failed check in an error response.
type ErrorItem struct {
	Msg string `json:"msg"`
}

// ErrorResponse is the error envelope for validation and server failures.
type ErrorResponse struct {
	Errors []ErrorItem `json:"errors"`
}

// MessageResponse carries a single human-readable message.
type MessageResponse struct {
	Msg string `json:"msg"`
}

// NewErrorResponse wraps messages into the error envelope.
func NewErrorResponse(msgs ...string) ErrorResponse {
	items := make([]ErrorItem, 0, len(msgs))
	for _, m := range msgs {
		items = append(items, ErrorItem{Msg: m})
	}
	return ErrorResponse{Errors: items}
}

// ServerError is the generic 500 body; the cause is only logged server-side.
func ServerError() ErrorResponse {
	return NewErrorResponse("Server Error")
}

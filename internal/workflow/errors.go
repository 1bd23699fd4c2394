package workflow

import "errors"

type Code string

const (
	CodeValidation   Code = "validation"
	CodeUnauthorized Code = "unauthorized"
	CodeForbidden    Code = "forbidden"
	CodeNotFound     Code = "not_found"
	CodeConflict     Code = "conflict"
)

// Error carries a machine-readable code the HTTP layer maps to a status.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NewError(code Code, message string) error {
	return &Error{Code: code, Message: message}
}

// Is reports whether err is a workflow error with the given code.
func Is(err error, code Code) bool {
	var wErr *Error
	if errors.As(err, &wErr) {
		return wErr.Code == code
	}
	return false
}

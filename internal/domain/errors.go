package domain

import "errors"

// Error - ошибка бизнес-правила. Message безопасно показывать пользователю.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(code, message string) *Error {
	return &Error{Code: code, Message: message}
}

const (
	CodeUnauthorized       = "unauthorized"
	CodeForbidden          = "forbidden"
	CodeRoomNotFound       = "room_not_found"
	CodeRequestNotFound    = "request_not_found"
	CodeAdminNotFound      = "admin_not_found"
	CodeQuotaExceeded      = "quota_exceeded"
	CodeInvalidToken       = "invalid_token"
	CodeTokenExpired       = "token_expired"
	CodeAlreadyAdmin       = "already_admin"
	CodeOwnerCannotBeAdmin = "owner_cannot_be_admin"
	CodeNoDueDateSet       = "no_due_date_set"
	CodeAlreadyReturned    = "already_returned"
	CodeInvalidStatus      = "invalid_status"
	CodeInvalidTransition  = "invalid_transition"
	CodeValidation         = "validation"
)

var (
	ErrUnauthorized       = newError(CodeUnauthorized, "not authenticated")
	ErrForbidden          = newError(CodeForbidden, "you do not have permission for this room")
	ErrRoomNotFound       = newError(CodeRoomNotFound, "room not found")
	ErrRequestNotFound    = newError(CodeRequestNotFound, "request not found")
	ErrAdminNotFound      = newError(CodeAdminNotFound, "admin not found")
	ErrQuotaExceeded      = newError(CodeQuotaExceeded, "room limit reached")
	ErrInvalidToken       = newError(CodeInvalidToken, "invalid token")
	ErrTokenExpired       = newError(CodeTokenExpired, "token has expired")
	ErrAlreadyAdmin       = newError(CodeAlreadyAdmin, "this user is already an admin")
	ErrOwnerCannotBeAdmin = newError(CodeOwnerCannotBeAdmin, "the owner cannot be added as an admin")
	ErrNoDueDateSet       = newError(CodeNoDueDateSet, "no return due date is set")
	ErrAlreadyReturned    = newError(CodeAlreadyReturned, "the book has already been returned")
	ErrInvalidStatus      = newError(CodeInvalidStatus, "invalid status")
	ErrInvalidTransition  = newError(CodeInvalidTransition, "status cannot change in this direction")
)

// ErrNotFound возвращают репозитории; usecase переводит его в конкретную ошибку.
var ErrNotFound = errors.New("not found")

// ErrDuplicate возвращают репозитории при нарушении уникальности.
var ErrDuplicate = errors.New("duplicate")

// ValidationError - первая найденная ошибка валидации входных данных
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

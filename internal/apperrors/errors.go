package apperrors

import "errors"

type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindPermissionDenied Kind = "permission_denied"
	KindConflict         Kind = "conflict"
	KindValidation       Kind = "validation_error"
)

// Machine-readable codes carried by permission errors.
const (
	CodeAssigneeNotMember    = "assignee_not_member"
	CodeCannotChangeOwnRole  = "cannot_change_own_role"
	CodeCannotDeactivateSelf = "cannot_deactivate_self"
)

// Error is a domain error surfaced verbatim to the caller. Kind decides the
// HTTP status at the handler boundary; Code is a machine-readable identifier.
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Code: string(KindNotFound), Message: message}
}

func PermissionDenied(message string) *Error {
	return &Error{Kind: KindPermissionDenied, Code: string(KindPermissionDenied), Message: message}
}

func PermissionDeniedCode(code, message string) *Error {
	return &Error{Kind: KindPermissionDenied, Code: code, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Code: string(KindConflict), Message: message}
}

func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Code: string(KindValidation), Message: message}
}

// As unwraps err as a domain *Error.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

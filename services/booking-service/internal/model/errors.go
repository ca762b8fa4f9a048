package model

import "errors"

type Code string

const (
	CodeOverlap             Code = "E_OVERLAP"
	CodeHoldExpired         Code = "E_HOLD_EXPIRED"
	CodeHoldNotFound        Code = "E_HOLD_NOT_FOUND"
	CodeHoldInactive        Code = "E_HOLD_INACTIVE"
	CodeInvalidArgument     Code = "E_INVALID_ARGUMENT"
	CodeServiceNotFound     Code = "E_SERVICE_NOT_FOUND"
	CodeServiceInactive     Code = "E_SERVICE_INACTIVE"
	CodeAppointmentNotFound Code = "E_APPOINTMENT_NOT_FOUND"
)

// Error is a failure the caller can branch on by Code.
type Error struct {
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches any *Error with the same code, so wrapped errors carrying extra
// detail still satisfy errors.Is against the sentinels below.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	ErrOverlap             = &Error{Code: CodeOverlap, Message: "requested interval is already taken"}
	ErrHoldExpired         = &Error{Code: CodeHoldExpired, Message: "hold has expired"}
	ErrHoldNotFound        = &Error{Code: CodeHoldNotFound, Message: "hold not found"}
	ErrHoldInactive        = &Error{Code: CodeHoldInactive, Message: "hold is no longer active"}
	ErrInvalidArgument     = &Error{Code: CodeInvalidArgument, Message: "invalid argument"}
	ErrServiceNotFound     = &Error{Code: CodeServiceNotFound, Message: "service not found"}
	ErrServiceInactive     = &Error{Code: CodeServiceInactive, Message: "service is not active"}
	ErrAppointmentNotFound = &Error{Code: CodeAppointmentNotFound, Message: "appointment not found"}
)

// CodeOf returns the code of the first *Error in err's chain, or "".
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

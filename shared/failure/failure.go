package failure

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies a business failure so callers can branch on the outcome
// without parsing messages. The zero value means "unclassified".
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindDoubleBooking    Kind = "double_booking"
	KindCapacityExceeded Kind = "capacity_exceeded"
	KindDateBlocked      Kind = "date_blocked"
	KindInvalidSequence  Kind = "invalid_sequence"
	KindValidation       Kind = "validation"
)

// Failure is a wrapper for error messages and codes using standard HTTP response codes.
type Failure struct {
	Code    int    `json:"code"`
	Kind    Kind   `json:"kind,omitempty"`
	Message string `json:"message"`
}

var InvalidPageParam = &Failure{Code: http.StatusBadRequest, Kind: KindValidation, Message: "invalid page parameter"}
var InvalidLimitParam = &Failure{Code: http.StatusBadRequest, Kind: KindValidation, Message: "invalid limit parameter"}
var ForbiddenError = &Failure{Code: http.StatusForbidden, Message: "You don't have the required permissions"}
var ResourceRestrictedError = &Failure{Code: http.StatusForbidden, Message: "You don't have permission to access this resource"}

// Error returns the error message.
func (e *Failure) Error() string {
	return e.Message
}

// BadRequest returns a new Failure with code for bad requests.
func BadRequest(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusBadRequest,
			Kind:    KindValidation,
			Message: err.Error(),
		}
	}

	return nil
}

// BadRequestFromString returns a new Failure with code for bad requests with message set from string.
func BadRequestFromString(msg string) error {
	return &Failure{
		Code:    http.StatusBadRequest,
		Kind:    KindValidation,
		Message: msg,
	}
}

// Unauthorized returns a new Failure with code for unauthorized requests.
func Unauthorized(msg string) error {
	return &Failure{
		Code:    http.StatusUnauthorized,
		Message: msg,
	}
}

// InternalError returns a new Failure with code for internal error and message derived from an error interface.
func InternalError(err error) error {
	if err != nil {
		return &Failure{
			Code:    http.StatusInternalServerError,
			Message: err.Error(),
		}
	}

	return nil
}

// NotFound returns a new Failure with code for entity not found.
func NotFound(msg string) error {
	return &Failure{
		Code:    http.StatusNotFound,
		Kind:    KindNotFound,
		Message: msg,
	}
}

// Conflict returns a new Failure with code for conflict situations.
func Conflict(message string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Message: message,
	}
}

func Forbidden(msg string) error {
	return &Failure{
		Code:    http.StatusForbidden,
		Message: msg,
	}
}

// DoubleBooking reports that a hunter already holds an active booking on the
// given date, naming the field the conflicting booking is on.
func DoubleBooking(date, fieldName string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindDoubleBooking,
		Message: fmt.Sprintf("Double booking prevented: you already have a booking on %s at %s", date, fieldName),
	}
}

// CapacityExceeded reports that a field cannot take the requested party size,
// including the remaining headroom for the day.
func CapacityExceeded(remaining int) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindCapacityExceeded,
		Message: fmt.Sprintf("Insufficient capacity: only %d spots available", remaining),
	}
}

// DateBlocked reports that the outfitter has blocked the requested date.
func DateBlocked(date string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindDateBlocked,
		Message: fmt.Sprintf("Date %s is blocked by the outfitter", date),
	}
}

// InvalidSequence reports a lifecycle ordering violation, e.g. starting an
// already-started hunt session or ending one before its report is filed.
// These indicate caller bugs rather than user mistakes.
func InvalidSequence(msg string) error {
	return &Failure{
		Code:    http.StatusConflict,
		Kind:    KindInvalidSequence,
		Message: msg,
	}
}

// GetCode returns the error code of an error interface.
func GetCode(err error) int {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Code
	}

	return http.StatusInternalServerError
}

// GetKind returns the failure kind of an error, or the zero Kind when the
// error is not a classified Failure.
func GetKind(err error) Kind {
	var fail *Failure
	if errors.As(err, &fail) {
		return fail.Kind
	}

	return ""
}

// IsKind reports whether err is a Failure of the given kind.
func IsKind(err error, kind Kind) bool {
	return GetKind(err) == kind
}
